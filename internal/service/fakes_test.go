package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/GTDGit/food_finder/internal/models"
)

type fakePlatform struct {
	code     models.PlatformCode
	products []models.Product
	err      error
	delay    time.Duration
	panics   bool
	// ignoreCtx makes delay run to completion past the deadline.
	ignoreCtx bool

	mu      sync.Mutex
	queries []string
}

func (f *fakePlatform) Code() models.PlatformCode { return f.code }

func (f *fakePlatform) Search(ctx context.Context, query string, _ models.Location) ([]models.Product, error) {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	f.mu.Unlock()

	if f.panics {
		panic("boom")
	}
	if f.delay > 0 && f.ignoreCtx {
		time.Sleep(f.delay)
	} else if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.products, f.err
}

func (f *fakePlatform) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

type fakeChat struct {
	mu      sync.Mutex
	replies []string
	err     error
	calls   [][]models.ChatMessage
	opts    []ChatOptions
}

func (f *fakeChat) Name() string { return "fake" }

func (f *fakeChat) Chat(_ context.Context, messages []models.ChatMessage, opts ChatOptions) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, messages)
	f.opts = append(f.opts, opts)
	if f.err != nil {
		return "", f.err
	}
	if len(f.replies) == 0 {
		return "", nil
	}
	reply := f.replies[0]
	if len(f.replies) > 1 {
		f.replies = f.replies[1:]
	}
	return reply, nil
}

type fakeTTS struct {
	err   error
	calls int
}

func (f *fakeTTS) Name() string { return "fake" }

func (f *fakeTTS) Synthesize(_ context.Context, text, _ string) (*models.Audio, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &models.Audio{Data: []byte(text), ContentType: "audio/mpeg"}, nil
}

func (f *fakeTTS) Voices(context.Context) ([]models.Voice, error) {
	return []models.Voice{{ID: "v1", Name: "Voice"}}, nil
}

type fakeTranscription struct {
	result *models.Transcription
	err    error
}

func (f *fakeTranscription) Name() string { return "fake" }

func (f *fakeTranscription) Transcribe(context.Context, []byte, string) (*models.Transcription, error) {
	return f.result, f.err
}

var errUpstream = errors.New("upstream down")
