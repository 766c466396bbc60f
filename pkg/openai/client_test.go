package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(url string, retries int) *Client {
	return NewClient(Config{
		Name:    "test",
		BaseURL: url,
		APIKey:  "key",
		Retry:   &RetryConfig{MaxRetries: retries, InitialBackoff: time.Millisecond, MaxBackoff: 5 * time.Millisecond},
	})
}

func TestClient_ChatCompletion(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer key" {
			t.Errorf("missing bearer token")
		}
		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad body: %v", err)
			return
		}
		if req.ResponseFormat == nil || req.ResponseFormat.Type != "json_object" {
			t.Errorf("expected json_object response format")
		}
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"{\"response\":\"hi\"}"}}]}`)
	}))
	defer ts.Close()

	out, err := newTestClient(ts.URL, 0).ChatCompletion(context.Background(), ChatRequest{
		Model:          "m",
		Messages:       []Message{{Role: "user", Content: "hello"}},
		ResponseFormat: JSONObject,
	})
	if err != nil {
		t.Fatalf("ChatCompletion failed: %v", err)
	}
	if out != `{"response":"hi"}` {
		t.Errorf("unexpected content %q", out)
	}
}

func TestClient_RateLimited(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":{"message":"slow down"}}`)
	}))
	defer ts.Close()

	_, err := newTestClient(ts.URL, 1).ChatCompletion(context.Background(), ChatRequest{Model: "m"})
	if err == nil {
		t.Fatal("expected an error")
	}
	if !IsRateLimited(err) {
		t.Errorf("expected rate limit error, got %v", err)
	}
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"choices":[{"message":{"content":"ok"}}]}`)
	}))
	defer ts.Close()

	out, err := newTestClient(ts.URL, 3).ChatCompletion(context.Background(), ChatRequest{Model: "m"})
	if err != nil {
		t.Fatalf("ChatCompletion failed: %v", err)
	}
	if out != "ok" || calls.Load() != 3 {
		t.Errorf("expected ok after 3 calls, got %q after %d", out, calls.Load())
	}
}

func TestClient_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer ts.Close()

	if _, err := newTestClient(ts.URL, 3).Speech(context.Background(), SpeechRequest{Model: "tts-1"}); err == nil {
		t.Fatal("expected an error")
	}
	if calls.Load() != 1 {
		t.Errorf("expected a single call, got %d", calls.Load())
	}
}

func TestClient_Transcribe(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("bad multipart body: %v", err)
			return
		}
		if got := r.FormValue("model"); got != "whisper-1" {
			t.Errorf("expected model whisper-1, got %q", got)
		}
		if got := r.FormValue("response_format"); got != "verbose_json" {
			t.Errorf("expected verbose_json, got %q", got)
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Errorf("missing file: %v", err)
			return
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		if hdr.Filename != "audio.webm" || string(data) != "RIFF" {
			t.Errorf("unexpected upload %s (%q)", hdr.Filename, data)
		}
		fmt.Fprint(w, `{"text":"bir pizza istiyorum","language":"turkish"}`)
	}))
	defer ts.Close()

	resp, err := newTestClient(ts.URL, 0).Transcribe(context.Background(), TranscriptionRequest{
		Model:    "whisper-1",
		Audio:    []byte("RIFF"),
		MimeType: "audio/webm;codecs=opus",
	})
	if err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	if resp.Text != "bir pizza istiyorum" || resp.Language != "turkish" {
		t.Errorf("unexpected transcription %+v", resp)
	}
}

func TestAudioExtension(t *testing.T) {
	tests := map[string]string{
		"audio/webm":             "webm",
		"audio/webm;codecs=opus": "webm",
		"audio/mpeg":             "mp3",
		"audio/mp3":              "mp3",
		"audio/ogg":              "ogg",
		"audio/wav":              "wav",
		"":                       "wav",
	}
	for in, want := range tests {
		if got := AudioExtension(in); got != want {
			t.Errorf("AudioExtension(%q) = %q, want %q", in, got, want)
		}
	}
}
