package openai

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanJSONResponse(t *testing.T) {
	plain := `{"action":"schedule"}`
	assert.Equal(t, plain, cleanJSONResponse(plain))
	assert.Equal(t, plain, cleanJSONResponse("  "+plain+"\n"))
	assert.Equal(t, plain, cleanJSONResponse("```json\n"+plain+"\n```"))
	assert.Equal(t, plain, cleanJSONResponse("```\n"+plain+"\n```"))
}

func TestCommandDecoding(t *testing.T) {
	raw := cleanJSONResponse("```json\n" + `{
  "action": "schedule",
  "candidate_name": "Aisha Patel",
  "meeting_type": "Intro with Hiring Manager",
  "duration_minutes": 45,
  "deadline_days": 5,
  "proposal_number": 0
}` + "\n```")

	var cmd Command
	require.NoError(t, json.Unmarshal([]byte(raw), &cmd))
	assert.Equal(t, "schedule", cmd.Action)
	assert.Equal(t, "Aisha Patel", cmd.CandidateName)
	assert.Equal(t, 45, cmd.DurationMinutes)
	assert.Equal(t, 5, cmd.DeadlineDays)
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "abc...", truncateString("abcdef", 3))
}
