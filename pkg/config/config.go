package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Telegram Bot configuration
	BotToken string

	// OpenAI configuration
	OpenAIAPIBase string
	OpenAIAPIKey  string
	OpenAIModel   string

	// Storage
	DataDir string

	// Scheduling defaults
	BusinessHoursStart int
	BusinessHoursEnd   int
	StepMinutes        int
	TopK               int
	LeadTimeHours      int
	CalendarSeedDays   int

	// Scoring weights (tunable, see scheduler.Weights)
	WeightEarliness float64
	WeightCentering float64
	WeightDayOfWeek float64

	// Days the scorer deprioritizes, e.g. "Friday"
	LowPreferenceDays map[time.Weekday]bool
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg := &Config{}

	// Required configurations
	botToken := os.Getenv("BOT_TOKEN")
	if botToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN environment variable is required")
	}
	cfg.BotToken = botToken

	openAIAPIKey := os.Getenv("OPENAI_API_KEY")
	if openAIAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}
	cfg.OpenAIAPIKey = openAIAPIKey

	// Optional configurations with defaults
	cfg.OpenAIAPIBase = getEnvWithDefault("OPENAI_API_BASE", "https://api.openai.com/v1")
	cfg.OpenAIModel = getEnvWithDefault("OPENAI_MODEL", "gpt-3.5-turbo")
	cfg.DataDir = getEnvWithDefault("DATA_DIR", "./data")

	cfg.BusinessHoursStart, err = getEnvInt("BUSINESS_HOURS_START", 9)
	if err != nil {
		return nil, err
	}
	cfg.BusinessHoursEnd, err = getEnvInt("BUSINESS_HOURS_END", 18)
	if err != nil {
		return nil, err
	}
	if cfg.BusinessHoursStart < 0 || cfg.BusinessHoursEnd > 24 || cfg.BusinessHoursStart >= cfg.BusinessHoursEnd {
		return nil, fmt.Errorf("invalid business hours %d-%d", cfg.BusinessHoursStart, cfg.BusinessHoursEnd)
	}

	cfg.StepMinutes, err = getEnvInt("SLOT_STEP_MINUTES", 15)
	if err != nil {
		return nil, err
	}
	cfg.TopK, err = getEnvInt("TOP_K", 5)
	if err != nil {
		return nil, err
	}
	cfg.LeadTimeHours, err = getEnvInt("LEAD_TIME_HOURS", 24)
	if err != nil {
		return nil, err
	}
	cfg.CalendarSeedDays, err = getEnvInt("CALENDAR_SEED_DAYS", 30)
	if err != nil {
		return nil, err
	}

	cfg.WeightEarliness, err = getEnvFloat("WEIGHT_EARLINESS", 60)
	if err != nil {
		return nil, err
	}
	cfg.WeightCentering, err = getEnvFloat("WEIGHT_CENTERING", 30)
	if err != nil {
		return nil, err
	}
	cfg.WeightDayOfWeek, err = getEnvFloat("WEIGHT_DAY_OF_WEEK", 20)
	if err != nil {
		return nil, err
	}

	cfg.LowPreferenceDays, err = parseWeekdays(getEnvWithDefault("LOW_PREFERENCE_DAYS", "Friday"))
	if err != nil {
		return nil, err
	}

	// Log configuration with sensitive data redacted
	logCfg := *cfg
	if len(logCfg.BotToken) > 8 {
		logCfg.BotToken = logCfg.BotToken[:8] + "...REDACTED..."
	}
	if len(logCfg.OpenAIAPIKey) > 8 {
		logCfg.OpenAIAPIKey = logCfg.OpenAIAPIKey[:8] + "...REDACTED..."
	}
	log.Printf("Configuration loaded: %+v", logCfg)
	return cfg, nil
}

// getEnvWithDefault returns the value of the environment variable or the default value
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, value)
	}
	return n, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number, got %q", key, value)
	}
	return f, nil
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// parseWeekdays parses a comma-separated list of weekday names. An empty
// string yields an empty set.
func parseWeekdays(s string) (map[time.Weekday]bool, error) {
	out := make(map[time.Weekday]bool)
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		day, ok := weekdayNames[part]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q in LOW_PREFERENCE_DAYS", part)
		}
		out[day] = true
	}
	return out, nil
}
