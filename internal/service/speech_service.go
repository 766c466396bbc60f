package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/GTDGit/food_finder/internal/models"
	"github.com/GTDGit/food_finder/internal/utils"
)

// DefaultAudioMimeType is assumed when a client does not name the recording format.
const DefaultAudioMimeType = "audio/webm"

// SpeechService exposes the configured TTS and transcription providers directly.
type SpeechService struct {
	tts           TTSProvider
	transcription TranscriptionProvider
}

// NewSpeechService creates a new SpeechService
func NewSpeechService(tts TTSProvider, transcription TranscriptionProvider) *SpeechService {
	return &SpeechService{tts: tts, transcription: transcription}
}

// Transcribe converts a recording to text.
func (s *SpeechService) Transcribe(ctx context.Context, audio []byte, mimeType string) (*models.Transcription, error) {
	if len(audio) == 0 {
		return nil, utils.ErrAudioRequired
	}
	if mimeType == "" {
		mimeType = DefaultAudioMimeType
	}

	startTime := time.Now()
	tr, err := s.transcription.Transcribe(ctx, audio, mimeType)
	if err != nil {
		return nil, fmt.Errorf("transcription failed: %w", err)
	}
	log.Info().
		Str("provider", s.transcription.Name()).
		Str("language", tr.Language).
		Int("audio_bytes", len(audio)).
		Dur("latency", time.Since(startTime)).
		Msg("Audio transcribed")
	return tr, nil
}

// Synthesize speaks text with voice, the provider default when empty.
func (s *SpeechService) Synthesize(ctx context.Context, text, voice string) (*models.Audio, error) {
	if strings.TrimSpace(text) == "" {
		return nil, utils.ErrTextRequired
	}
	audio, err := s.tts.Synthesize(ctx, text, voice)
	if err != nil {
		return nil, fmt.Errorf("speech synthesis failed: %w", err)
	}
	return audio, nil
}

// Voices lists the voices of the TTS provider.
func (s *SpeechService) Voices(ctx context.Context) ([]models.Voice, error) {
	return s.tts.Voices(ctx)
}

// Providers names the active providers.
func (s *SpeechService) Providers() (tts, transcription string) {
	return s.tts.Name(), s.transcription.Name()
}
