package backend

import "fmt"

// FailureKind classifies provider failures into the user-visible error
// taxonomy. Each kind maps to a distinct diagnostic message; they are never
// collapsed into a single generic failure string.
type FailureKind string

const (
	// FailureModelNotFound is an HTTP 404 from the provider: the model
	// identifier does not exist.
	FailureModelNotFound FailureKind = "model_not_found"

	// FailureAccessDenied is an HTTP 403: the credential cannot use the model.
	FailureAccessDenied FailureKind = "access_denied"

	// FailureTransient is an HTTP 429/503 that persisted past the single retry.
	FailureTransient FailureKind = "transient"

	// FailureHTTP is any other non-2xx provider response.
	FailureHTTP FailureKind = "http"

	// FailureNetwork is a transport-level failure (timeout, connection error).
	FailureNetwork FailureKind = "network"

	// FailureBadResponse is a 2xx response whose payload could not be decoded.
	FailureBadResponse FailureKind = "bad_response"
)

// ProviderError is a structured error for backend failures. Message carries
// the user-visible diagnostic; Error renders the internal form for logs.
type ProviderError struct {
	Provider string
	Kind     FailureKind
	Status   int
	Message  string
	Cause    error
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s [%s]: %s: %v", e.Provider, e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s [%s]: %s", e.Provider, e.Kind, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// userMessage extracts the user-visible diagnostic from a backend error.
func userMessage(err error) string {
	if providerErr, ok := err.(*ProviderError); ok {
		return providerErr.Message
	}
	return fmt.Sprintf("(AI error) %v", err)
}
