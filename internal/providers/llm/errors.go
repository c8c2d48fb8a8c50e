package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/StackOverflowed512/flyer-agent/internal/core"
)

// Error types providers use when they refuse work for lack of capacity.
var capacitySignatures = []string{
	"service_tier_capacity_exceeded",
	"overloaded_error",
}

// APIError is a non-200 answer from a provider.
type APIError struct {
	StatusCode int
	Type       string
	Code       string
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	if e.Type != "" || e.Message != "" {
		return fmt.Sprintf("api error %d: %s: %s", e.StatusCode, e.Type, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Body)
}

// Is lets callers test for core.ErrCapacityExceeded with errors.Is.
func (e *APIError) Is(target error) bool {
	return target == core.ErrCapacityExceeded && e.CapacityExceeded()
}

func (e *APIError) CapacityExceeded() bool {
	for _, sig := range capacitySignatures {
		if e.Type == sig || e.Code == sig || strings.Contains(e.Body, sig) {
			return true
		}
	}
	return false
}

// errorBody covers the OpenAI, Mistral and Anthropic error envelopes.
type errorBody struct {
	Type    string          `json:"type"`
	Message string          `json:"message"`
	Code    json.RawMessage `json:"code"`
	Error   *struct {
		Type    string          `json:"type"`
		Message string          `json:"message"`
		Code    json.RawMessage `json:"code"`
	} `json:"error"`
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: status,
		Body:       string(body),
	}

	var eb errorBody
	if json.Unmarshal(body, &eb) != nil {
		return apiErr
	}

	if eb.Error != nil {
		apiErr.Type = eb.Error.Type
		apiErr.Message = eb.Error.Message
		apiErr.Code = rawCode(eb.Error.Code)
		return apiErr
	}

	apiErr.Type = eb.Type
	apiErr.Message = eb.Message
	apiErr.Code = rawCode(eb.Code)
	return apiErr
}

// rawCode normalises codes sent either as strings or numbers.
func rawCode(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return ""
	}
	return strings.Trim(s, `"`)
}
