package openai

import (
	"errors"
	"fmt"
	"net/http"
)

// Message is a chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ResponseFormat forces the model output format.
type ResponseFormat struct {
	Type string `json:"type"`
}

// JSONObject asks the model to reply with a JSON object.
var JSONObject = &ResponseFormat{Type: "json_object"}

// ChatRequest is the chat completions payload.
type ChatRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

// ChatResponse is the chat completions response.
type ChatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// SpeechRequest is the text-to-speech payload.
type SpeechRequest struct {
	Model          string  `json:"model"`
	Input          string  `json:"input"`
	Voice          string  `json:"voice"`
	Speed          float64 `json:"speed,omitempty"`
	ResponseFormat string  `json:"response_format,omitempty"`
}

// TranscriptionRequest describes an audio upload for speech-to-text.
type TranscriptionRequest struct {
	Model    string
	Audio    []byte
	MimeType string
	Language string
}

// TranscriptionResponse is the verbose_json transcription result.
type TranscriptionResponse struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// APIError is a non-2xx answer from the provider.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("provider returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("provider returned status %d: %s", e.StatusCode, e.Body)
}

// IsRateLimited reports whether err is a 429 from the provider.
func IsRateLimited(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests
}
