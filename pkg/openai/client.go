// Package openai is a small client for OpenAI compatible APIs. It talks to
// OpenAI itself and to Groq, which exposes the same endpoints.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// OpenAIBaseURL is the OpenAI API base URL.
	OpenAIBaseURL = "https://api.openai.com/v1"
	// GroqBaseURL is the Groq OpenAI compatible base URL.
	GroqBaseURL = "https://api.groq.com/openai/v1"
)

// Config configures a Client.
type Config struct {
	Name    string // used in logs, e.g. "groq"
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Retry   *RetryConfig
}

// Client is a minimal HTTP client for an OpenAI compatible API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	name       string
	retry      RetryConfig
	debug      bool
}

// NewClient constructs a new client with sane defaults.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = OpenAIBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	retry := DefaultRetryConfig()
	if cfg.Retry != nil {
		retry = *cfg.Retry
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		name:       cfg.Name,
		retry:      retry,
		debug:      os.Getenv("ENV") == "development",
	}
}

// ChatCompletion returns the content of the first choice.
func (c *Client) ChatCompletion(ctx context.Context, req ChatRequest) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	start := time.Now()
	body, err := c.doRequest(ctx, "/chat/completions", "application/json", payload)
	if err != nil {
		return "", err
	}
	log.Debug().Str("provider", c.name).Dur("latency", time.Since(start)).Msg("Chat completion done")

	var resp ChatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// Speech synthesizes req.Input and returns the raw audio bytes.
func (c *Client) Speech(ctx context.Context, req SpeechRequest) ([]byte, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	start := time.Now()
	audio, err := c.doRequest(ctx, "/audio/speech", "application/json", payload)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("provider", c.name).Dur("latency", time.Since(start)).Int("bytes", len(audio)).Msg("Speech synthesized")
	return audio, nil
}

// Transcribe uploads audio to the transcription endpoint.
func (c *Client) Transcribe(ctx context.Context, req TranscriptionRequest) (*TranscriptionResponse, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="audio.%s"`, AudioExtension(req.MimeType)))
	h.Set("Content-Type", req.MimeType)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(req.Audio); err != nil {
		return nil, fmt.Errorf("failed to write audio: %w", err)
	}
	_ = w.WriteField("model", req.Model)
	_ = w.WriteField("response_format", "verbose_json")
	if req.Language != "" {
		_ = w.WriteField("language", req.Language)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to close form: %w", err)
	}

	start := time.Now()
	body, err := c.doRequest(ctx, "/audio/transcriptions", w.FormDataContentType(), buf.Bytes())
	if err != nil {
		return nil, err
	}
	log.Debug().Str("provider", c.name).Dur("latency", time.Since(start)).Msg("Transcription done")

	var resp TranscriptionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &resp, nil
}

// AudioExtension maps a recorder mime type to the file extension Whisper expects.
func AudioExtension(mimeType string) string {
	switch {
	case strings.Contains(mimeType, "webm"):
		return "webm"
	case strings.Contains(mimeType, "mp3"), strings.Contains(mimeType, "mpeg"):
		return "mp3"
	case strings.Contains(mimeType, "ogg"):
		return "ogg"
	default:
		return "wav"
	}
}

// doRequest POSTs payload to endpoint with retries and returns the raw response body.
func (c *Client) doRequest(ctx context.Context, endpoint, contentType string, payload []byte) ([]byte, error) {
	if c.debug && contentType == "application/json" {
		log.Debug().
			Str("provider", c.name).
			Str("endpoint", c.baseURL+endpoint).
			RawJSON("request", payload).
			Msg("Outgoing provider request")
	}

	resp, err := c.retryWithBackoff(ctx, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		return c.httpClient.Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", c.name, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet := string(respBody)
		if len(snippet) > 500 {
			snippet = snippet[:500]
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Body: snippet}
	}
	return respBody, nil
}
