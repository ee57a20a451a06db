package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/korjavin/introscheduler/pkg/logger"
	"github.com/sashabaranov/go-openai"
)

// Client represents an OpenAI API client
type Client struct {
	client *openai.Client
	model  string
	logger *logger.Logger
}

// New creates a new OpenAI client
func New(apiKey, apiBase, model string) *Client {
	config := openai.DefaultConfig(apiKey)
	if apiBase != "" {
		config.BaseURL = apiBase
	}

	client := openai.NewClientWithConfig(config)
	return &Client{
		client: client,
		model:  model,
		logger: logger.New("openai"),
	}
}

// Command is the structured intent extracted from a free-form chat message.
type Command struct {
	// Action is one of "schedule", "list_candidates", "confirm", "invites", "help".
	Action          string `json:"action"`
	CandidateName   string `json:"candidate_name,omitempty"`
	MeetingType     string `json:"meeting_type,omitempty"`
	DurationMinutes int    `json:"duration_minutes,omitempty"`
	DeadlineDays    int    `json:"deadline_days,omitempty"`
	ProposalNumber  int    `json:"proposal_number,omitempty"`
}

// ParseSchedulingCommand extracts a structured scheduling command from
// free-form text, e.g. "set up a 45 minute intro with Priya's hiring
// manager before Friday".
func (c *Client) ParseSchedulingCommand(text string, candidateNames []string) (*Command, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	prompt := fmt.Sprintf(`
You are the intent parser of a meeting scheduling assistant for new-hire onboarding.
Extract a structured command from the user's message.

Known candidates: %s

Return JSON in exactly this format:
{
  "action": "schedule" | "list_candidates" | "confirm" | "invites" | "help",
  "candidate_name": "matching known candidate name, or empty",
  "meeting_type": "Intro with Hiring Manager" | "Intro with Reporting Manager" | "Intro with HRBP" | "Intro with Buddy" | "",
  "duration_minutes": number or 0,
  "deadline_days": number of days from now or 0,
  "proposal_number": number or 0
}
Only return the JSON, no other text.

Message: %s
`, strings.Join(candidateNames, ", "), text)

	c.logger.Info("Parsing scheduling command")
	c.logger.Debug("Text to parse (first 100 chars): %s", truncateString(text, 100))

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.2,
		},
	)

	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI API")
	}

	content := resp.Choices[0].Message.Content
	c.logger.Debug("OpenAI response (first 100 chars): %s", truncateString(content, 100))

	// Clean up the response - sometimes the model returns markdown code blocks
	content = cleanJSONResponse(content)

	var cmd Command
	if err := json.Unmarshal([]byte(content), &cmd); err != nil {
		c.logger.Error("Failed to parse response: %v, Content: %s", err, content)
		return nil, fmt.Errorf("failed to parse OpenAI response: %w", err)
	}

	return &cmd, nil
}

// GenerateChatMessage generates a chat message for a specific intent
func (c *Client) GenerateChatMessage(intent string, contextData map[string]interface{}) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Convert context to JSON string
	contextJSON, err := json.Marshal(contextData)
	if err != nil {
		return "", fmt.Errorf("failed to marshal context: %w", err)
	}

	prompt := fmt.Sprintf(`
You are a friendly scheduling assistant bot that helps coordinate onboarding meetings for new hires. Generate a short, engaging message for the following intent: "%s".
Use the context provided below to personalize the message. Keep it concise and mobile-friendly.
Add appropriate emojis for readability.

Context:
%s

Return only the message text, no explanations or other text.
`, intent, string(contextJSON))

	c.logger.Info("Generating chat message for intent: %s", intent)

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.7,
		},
	)

	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI API")
	}

	return resp.Choices[0].Message.Content, nil
}

// Helper functions

// truncateString truncates a string to the specified length
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// cleanJSONResponse cleans up the JSON response from OpenAI
// Sometimes the model returns markdown code blocks with ```json and ``` delimiters
func cleanJSONResponse(s string) string {
	// Remove markdown code block delimiters if present
	s = strings.TrimSpace(s)

	// Check for markdown code blocks
	if strings.HasPrefix(s, "```") {
		// Find the end of the first line (which might contain "```json")
		firstLineEnd := strings.Index(s, "\n")
		if firstLineEnd != -1 {
			// Skip the first line
			s = s[firstLineEnd+1:]
		}

		// Remove trailing code block delimiter
		if strings.HasSuffix(s, "```") {
			s = s[:len(s)-3]
		}

		// Trim any remaining whitespace
		s = strings.TrimSpace(s)
	}

	return s
}
