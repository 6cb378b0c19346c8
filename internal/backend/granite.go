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

const defaultGraniteBaseURL = "https://api-inference.huggingface.co"

// transientRetryPause is the fixed pause before the single retry on a
// 429/503 from the inference API.
const transientRetryPause = 2 * time.Second

// GraniteClient is an HTTP client for IBM Granite models served through the
// Hugging Face inference API, the fallback AI backend.
type GraniteClient struct {
	apiToken   string
	model      string
	baseURL    string
	httpClient *http.Client
	sleep      func(time.Duration)
}

// NewGraniteClient creates a new Granite client with the fixed 60-second
// call timeout.
func NewGraniteClient(apiToken, model string) *GraniteClient {
	return &GraniteClient{
		apiToken: apiToken,
		model:    model,
		baseURL:  defaultGraniteBaseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		sleep: time.Sleep,
	}
}

type graniteParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	TopP           float64 `json:"top_p"`
	ReturnFullText bool    `json:"return_full_text"`
}

type graniteRequest struct {
	Inputs     string            `json:"inputs"`
	Parameters graniteParameters `json:"parameters"`
}

// Generate sends the prompt to the inference API and returns the generated
// text. It retries exactly once on HTTP 429/503 after a fixed 2-second
// pause. A 404 and a 403 surface as distinct, user-actionable diagnostics;
// everything else maps to the generic HTTP or network message.
func (c *GraniteClient) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(graniteRequest{
		Inputs: prompt,
		Parameters: graniteParameters{
			MaxNewTokens:   400,
			Temperature:    0.5,
			TopP:           0.9,
			ReturnFullText: false,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s", c.baseURL, c.model)

	for attempt := 0; attempt < 2; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return "", fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return "", &ProviderError{
				Provider: "granite",
				Kind:     FailureNetwork,
				Message:  fmt.Sprintf("(Network error via Hugging Face) %v", err),
				Cause:    err,
			}
		}

		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return "", &ProviderError{
				Provider: "granite",
				Kind:     FailureNetwork,
				Message:  fmt.Sprintf("(Network error via Hugging Face) %v", readErr),
				Cause:    readErr,
			}
		}

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return "", &ProviderError{
				Provider: "granite",
				Kind:     FailureModelNotFound,
				Status:   resp.StatusCode,
				Message: fmt.Sprintf("(Granite) HF model not found: '%s'. Set HF_TEXT_MODEL to a valid repo id, "+
					"e.g. 'ibm-granite/granite-3.1-8b-instruct' or 'ibm-granite/granite-3.3-8b-instruct'.", c.model),
			}

		case resp.StatusCode == http.StatusForbidden:
			return "", &ProviderError{
				Provider: "granite",
				Kind:     FailureAccessDenied,
				Status:   resp.StatusCode,
				Message: "(Granite) Access denied. On Hugging Face, open the model page with the SAME account " +
					"as your token, click 'Agree and access', then retry.",
			}

		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusServiceUnavailable:
			if attempt == 0 {
				c.sleep(transientRetryPause)
				continue
			}
			return "", &ProviderError{
				Provider: "granite",
				Kind:     FailureTransient,
				Status:   resp.StatusCode,
				Message:  "(Transient error via Hugging Face) Please try again.",
			}

		case resp.StatusCode != http.StatusOK:
			return "", &ProviderError{
				Provider: "granite",
				Kind:     FailureHTTP,
				Status:   resp.StatusCode,
				Message:  fmt.Sprintf("(AI error via Hugging Face) status %d: %s", resp.StatusCode, truncate(string(respBody), 300)),
			}
		}

		return decodeGraniteResponse(respBody)
	}

	// Unreachable: the transient case either continues once or returns.
	return "", &ProviderError{
		Provider: "granite",
		Kind:     FailureTransient,
		Message:  "(Transient error via Hugging Face) Please try again.",
	}
}

// decodeGraniteResponse tries each known response schema in turn: the list
// form, the object form, and the choices form. Unknown payloads fall back to
// the raw body, truncated.
func decodeGraniteResponse(body []byte) (string, error) {
	var listForm []struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.Unmarshal(body, &listForm); err == nil && len(listForm) > 0 && listForm[0].GeneratedText != "" {
		return strings.TrimSpace(listForm[0].GeneratedText), nil
	}

	var objectForm struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.Unmarshal(body, &objectForm); err == nil && objectForm.GeneratedText != "" {
		return strings.TrimSpace(objectForm.GeneratedText), nil
	}

	var choicesForm struct {
		Choices []struct {
			Text string `json:"text"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &choicesForm); err == nil && len(choicesForm.Choices) > 0 {
		return strings.TrimSpace(choicesForm.Choices[0].Text), nil
	}

	return truncate(strings.TrimSpace(string(body)), 1200), nil
}
