package agent

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markdave123-py/VectorVault/internal/models"
)

func parseLine(t *testing.T, line string) *cliEvent {
	t.Helper()
	var ev cliEvent
	require.NoError(t, json.Unmarshal([]byte(line), &ev))
	return &ev
}

func TestApplyEvent_AccumulatesAnswerAcrossEvents(t *testing.T) {
	lines := []string{
		`{"type":"system","subtype":"init","model":"gpt-large","session_id":"sess-1"}`,
		`{"type":"assistant","message":{"content":[{"type":"text","text":"Hello, "}]}}`,
		`{"type":"assistant","message":{"content":[{"type":"thinking","thinking":"pondering"},{"type":"text","text":"world."}]}}`,
		`{"type":"result","duration_ms":1234}`,
	}

	result := &Result{}
	var answer, thinking strings.Builder
	for _, line := range lines {
		applyEvent(parseLine(t, line), result, &answer, &thinking)
	}

	assert.Equal(t, "Hello, world.", answer.String())
	assert.Equal(t, "pondering", thinking.String())
	assert.Equal(t, "gpt-large", result.Model)
	assert.Equal(t, "sess-1", result.SessionID)
	assert.Equal(t, int64(1234), result.DurationMS)
}

func TestApplyEvent_ThinkingFallsBackToText(t *testing.T) {
	result := &Result{}
	var answer, thinking strings.Builder
	applyEvent(parseLine(t, `{"type":"assistant","message":{"content":[{"type":"thinking","text":"from text field"}]}}`),
		result, &answer, &thinking)

	assert.Equal(t, "from text field", thinking.String())
	assert.Empty(t, answer.String())
}

func TestApplyEvent_KeepsFirstSessionID(t *testing.T) {
	result := &Result{}
	var answer, thinking strings.Builder
	applyEvent(parseLine(t, `{"type":"assistant","session_id":"first"}`), result, &answer, &thinking)
	applyEvent(parseLine(t, `{"type":"assistant","session_id":"second"}`), result, &answer, &thinking)
	assert.Equal(t, "first", result.SessionID)
}

func TestBuildCommand(t *testing.T) {
	r := NewCLIRunner("agent", "fast-model", time.Minute)
	args := r.BuildCommand()
	assert.Equal(t, []string{"-p", "--output-format", "stream-json", "--model", "fast-model", "-"}, args)
}

func TestBuildCommand_NoModel(t *testing.T) {
	r := NewCLIRunner("agent", "", time.Minute)
	args := r.BuildCommand()
	assert.NotContains(t, args, "--model")
	assert.Equal(t, "-", args[len(args)-1])
}

func TestBuildPrompt_WithContexts(t *testing.T) {
	contexts := []models.SearchResult{
		{Score: 0.9123, Payload: models.Payload{Source: "guide.pdf", ChunkIndex: 4, Text: "chunk body"}},
	}

	system, user := BuildPrompt("what is this?", contexts)
	assert.Contains(t, system, "reference materials")
	assert.Contains(t, user, "[Source: guide.pdf, chunk #4, similarity: 0.9123]")
	assert.Contains(t, user, "chunk body")
	assert.Contains(t, user, "User question: what is this?")
}

func TestBuildPrompt_NoContexts(t *testing.T) {
	_, user := BuildPrompt("anything?", nil)
	assert.Contains(t, user, "(No relevant reference materials found)")
}
