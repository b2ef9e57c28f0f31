package openai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pravaah/internal/config"
	"pravaah/internal/llm/openai"
	"pravaah/internal/port"
)

func newTestClient(serverURL string) *openai.Client {
	return openai.NewClientWithEndpoint(&config.LLMProviderConfig{
		Provider:     "openai",
		APIKey:       "test-openai-key",
		DefaultModel: "gpt-4o-mini",
	}, serverURL)
}

func TestOpenAIClient_Complete_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-openai-key", r.Header.Get("Authorization"))

		var reqBody map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		assert.Equal(t, "gpt-4o-mini", reqBody["model"])
		assert.Equal(t, float64(0), reqBody["temperature"])

		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{\"VIN\":\"X\"}"},"finish_reason":"stop"}]}`))
	}))
	defer server.Close()

	out, err := newTestClient(server.URL).Complete(context.Background(), port.CompletionRequest{Prompt: "p"})
	require.NoError(t, err)
	assert.Equal(t, `{"VIN":"X"}`, out.Text)
	assert.Equal(t, "gpt-4o-mini", out.Model)
}

func TestOpenAIClient_Complete_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Complete(context.Background(), port.CompletionRequest{Prompt: "p"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestOpenAIClient_Complete_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"bad key"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Complete(context.Background(), port.CompletionRequest{Prompt: "p"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}
