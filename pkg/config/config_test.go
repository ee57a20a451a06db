package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnvDefaults(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123456:test-token")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "123456:test-token", cfg.BotToken)
	assert.Equal(t, "https://api.openai.com/v1", cfg.OpenAIAPIBase)
	assert.Equal(t, 9, cfg.BusinessHoursStart)
	assert.Equal(t, 18, cfg.BusinessHoursEnd)
	assert.Equal(t, 15, cfg.StepMinutes)
	assert.Equal(t, 5, cfg.TopK)
	assert.Equal(t, 24, cfg.LeadTimeHours)
	assert.Equal(t, 30, cfg.CalendarSeedDays)
	assert.Equal(t, 60.0, cfg.WeightEarliness)
	assert.True(t, cfg.LowPreferenceDays[time.Friday])
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123456:test-token")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("SLOT_STEP_MINUTES", "30")
	t.Setenv("TOP_K", "3")
	t.Setenv("WEIGHT_EARLINESS", "80.5")
	t.Setenv("LOW_PREFERENCE_DAYS", "Monday, Friday")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.StepMinutes)
	assert.Equal(t, 3, cfg.TopK)
	assert.Equal(t, 80.5, cfg.WeightEarliness)
	assert.True(t, cfg.LowPreferenceDays[time.Monday])
	assert.True(t, cfg.LowPreferenceDays[time.Friday])
	assert.False(t, cfg.LowPreferenceDays[time.Tuesday])
}

func TestLoadFromEnvMissingToken(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	_, err := LoadFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BOT_TOKEN")
}

func TestLoadFromEnvInvalidBusinessHours(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123456:test-token")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("BUSINESS_HOURS_START", "20")
	t.Setenv("BUSINESS_HOURS_END", "8")

	_, err := LoadFromEnv()
	require.Error(t, err)
}

func TestLoadFromEnvBadInteger(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123456:test-token")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("TOP_K", "five")

	_, err := LoadFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TOP_K")
}

func TestParseWeekdays(t *testing.T) {
	days, err := parseWeekdays("Friday")
	require.NoError(t, err)
	assert.Equal(t, map[time.Weekday]bool{time.Friday: true}, days)

	days, err = parseWeekdays("monday,WEDNESDAY , friday")
	require.NoError(t, err)
	assert.Len(t, days, 3)
	assert.True(t, days[time.Wednesday])

	days, err = parseWeekdays("")
	require.NoError(t, err)
	assert.Empty(t, days)

	_, err = parseWeekdays("someday")
	require.Error(t, err)
}
