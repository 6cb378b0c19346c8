package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterClient is an HTTP client for the OpenRouter chat-completion API,
// the primary AI backend.
type OpenRouterClient struct {
	apiKey       string
	model        string
	systemPrompt string
	baseURL      string
	httpClient   *http.Client
}

// NewOpenRouterClient creates a new OpenRouter client with the fixed
// 60-second call timeout.
func NewOpenRouterClient(apiKey, model, systemPrompt string) *OpenRouterClient {
	return &OpenRouterClient{
		apiKey:       apiKey,
		model:        model,
		systemPrompt: systemPrompt,
		baseURL:      defaultOpenRouterBaseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type openRouterMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openRouterRequest struct {
	Model    string              `json:"model"`
	Messages []openRouterMessage `json:"messages"`
}

// openRouterResponse decodes the one response schema OpenRouter documents;
// an empty choice list is a decode failure, not a success with empty text.
type openRouterResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate sends the prompt as a chat completion and returns the model text.
// Any failure is a hard failure from the dispatcher's point of view; the
// returned *ProviderError carries the user-visible diagnostic.
func (c *OpenRouterClient) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(openRouterRequest{
		Model: c.model,
		Messages: []openRouterMessage{
			{Role: "system", Content: c.systemPrompt},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("HTTP-Referer", "https://budgetbee.local")
	req.Header.Set("X-Title", "BudgetBee")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &ProviderError{
			Provider: "openrouter",
			Kind:     FailureNetwork,
			Message:  fmt.Sprintf("(AI error via OpenRouter) %v", err),
			Cause:    err,
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ProviderError{
			Provider: "openrouter",
			Kind:     FailureNetwork,
			Message:  fmt.Sprintf("(AI error via OpenRouter) %v", err),
			Cause:    err,
		}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &ProviderError{
			Provider: "openrouter",
			Kind:     FailureHTTP,
			Status:   resp.StatusCode,
			Message:  fmt.Sprintf("(AI error via OpenRouter) status %d: %s", resp.StatusCode, truncate(string(respBody), 300)),
		}
	}

	var decoded openRouterResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return "", &ProviderError{
			Provider: "openrouter",
			Kind:     FailureBadResponse,
			Message:  fmt.Sprintf("(AI error via OpenRouter) unexpected response: %s", truncate(string(respBody), 300)),
			Cause:    err,
		}
	}
	if len(decoded.Choices) == 0 {
		return "", &ProviderError{
			Provider: "openrouter",
			Kind:     FailureBadResponse,
			Message:  fmt.Sprintf("(AI error via OpenRouter) empty response: %s", truncate(string(respBody), 300)),
		}
	}

	return strings.TrimSpace(decoded.Choices[0].Message.Content), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
