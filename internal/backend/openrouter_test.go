package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOpenRouterClient(serverURL string) *OpenRouterClient {
	client := NewOpenRouterClient("or-key", "deepseek/deepseek-chat", "system directive")
	client.baseURL = serverURL
	return client
}

func TestOpenRouterGenerateSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer or-key", r.Header.Get("Authorization"))
		assert.Equal(t, "BudgetBee", r.Header.Get("X-Title"))

		var req openRouterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "deepseek/deepseek-chat", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "system directive", req.Messages[0].Content)
		assert.Equal(t, "user", req.Messages[1].Role)
		assert.Equal(t, "the prompt", req.Messages[1].Content)

		w.Write([]byte(`{"choices": [{"message": {"content": "  the answer  "}}]}`))
	}))
	defer srv.Close()

	client := newTestOpenRouterClient(srv.URL)
	text, err := client.Generate(context.Background(), "the prompt")
	require.NoError(t, err)
	assert.Equal(t, "the answer", text)
}

func TestOpenRouterGenerateHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "bad key"}`))
	}))
	defer srv.Close()

	client := newTestOpenRouterClient(srv.URL)
	_, err := client.Generate(context.Background(), "prompt")

	var providerErr *ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, FailureHTTP, providerErr.Kind)
	assert.Equal(t, http.StatusUnauthorized, providerErr.Status)
	assert.Contains(t, providerErr.Message, "(AI error via OpenRouter) status 401")
}

func TestOpenRouterGenerateEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	client := newTestOpenRouterClient(srv.URL)
	_, err := client.Generate(context.Background(), "prompt")

	var providerErr *ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, FailureBadResponse, providerErr.Kind)
	assert.Contains(t, providerErr.Message, "empty response")
}

func TestOpenRouterGenerateNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := newTestOpenRouterClient(srv.URL)
	_, err := client.Generate(context.Background(), "prompt")

	var providerErr *ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, FailureNetwork, providerErr.Kind)
	assert.Contains(t, providerErr.Message, "(AI error via OpenRouter)")
}
