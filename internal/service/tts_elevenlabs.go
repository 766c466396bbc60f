package service

import (
	"context"

	"github.com/GTDGit/food_finder/internal/models"
	"github.com/GTDGit/food_finder/pkg/elevenlabs"
)

// ElevenLabsTTS synthesizes speech with ElevenLabs eleven_multilingual_v2.
type ElevenLabsTTS struct {
	client       *elevenlabs.Client
	defaultVoice string
}

// NewElevenLabsTTS creates a new ElevenLabsTTS
func NewElevenLabsTTS(client *elevenlabs.Client, defaultVoice string) *ElevenLabsTTS {
	if defaultVoice == "" {
		defaultVoice = elevenLabsVoices[0].ID
	}
	return &ElevenLabsTTS{client: client, defaultVoice: defaultVoice}
}

var elevenLabsVoices = []models.Voice{
	{ID: "EXAVITQu4vr4xnSDxMaL", Name: "Bella", Category: "elevenlabs"},
	{ID: "21m00Tcm4TlvDq8ikWAM", Name: "Rachel", Category: "elevenlabs"},
	{ID: "AZnzlk1XvdvUeBnXmlld", Name: "Domi", Category: "elevenlabs"},
	{ID: "MF3mGyEYCl7XYWbV9V6O", Name: "Elli", Category: "elevenlabs"},
	{ID: "TxGEqnHWrfWFTfGW9XjX", Name: "Josh", Category: "elevenlabs"},
	{ID: "pNInz6obpgDQGcFmaJgB", Name: "Adam", Category: "elevenlabs"},
}

// Name returns the provider name
func (p *ElevenLabsTTS) Name() string { return ProviderElevenLabs }

// Synthesize implements TTSProvider.
func (p *ElevenLabsTTS) Synthesize(ctx context.Context, text, voice string) (*models.Audio, error) {
	if voice == "" {
		voice = p.defaultVoice
	}
	data, err := p.client.TextToSpeech(ctx, voice, text, elevenlabs.DefaultVoiceSettings())
	if err != nil {
		return nil, providerError(ProviderElevenLabs, err)
	}
	return &models.Audio{Data: data, ContentType: "audio/mpeg"}, nil
}

// Voices implements TTSProvider.
func (p *ElevenLabsTTS) Voices(context.Context) ([]models.Voice, error) {
	return elevenLabsVoices, nil
}
