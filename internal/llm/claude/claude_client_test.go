package claude_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pravaah/internal/config"
	"pravaah/internal/llm"
	"pravaah/internal/llm/claude"
	"pravaah/internal/port"
)

func newTestClient(serverURL string) *claude.Client {
	return claude.NewClientWithEndpoint(&config.LLMProviderConfig{
		Provider:    "claude",
		APIKey:      "test-claude-key",
		TimeoutSecs: 30,
	}, serverURL)
}

func TestClaudeClient_Complete_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-claude-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		var reqBody map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		assert.Equal(t, "claude-sonnet-4-20250514", reqBody["model"])
		assert.Equal(t, float64(0), reqBody["temperature"])
		msgs := reqBody["messages"].([]interface{})
		assert.Equal(t, "risk prompt", msgs[0].(map[string]interface{})["content"])

		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"✅ Reasonable - typical."}],"stop_reason":"end_turn"}`))
	}))
	defer server.Close()

	out, err := newTestClient(server.URL).Complete(context.Background(), port.CompletionRequest{Prompt: "risk prompt"})
	require.NoError(t, err)
	assert.Equal(t, "✅ Reasonable - typical.", out.Text)
	assert.Equal(t, "claude-sonnet-4-20250514", out.Model)
}

func TestClaudeClient_Complete_Truncated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"{\"a\":"}],"stop_reason":"max_tokens"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Complete(context.Background(), port.CompletionRequest{Prompt: "p"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_tokens")
}

func TestClaudeClient_Complete_RateLimitedDefaultRetry(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Complete(context.Background(), port.CompletionRequest{Prompt: "p"})
	var rlErr *llm.RateLimitError
	require.ErrorAs(t, err, &rlErr)
	assert.Equal(t, 60.0, rlErr.RetryAfter.Seconds())
}
