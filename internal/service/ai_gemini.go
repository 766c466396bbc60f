package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/GTDGit/food_finder/internal/models"
	"github.com/GTDGit/food_finder/pkg/gemini"
)

// GeminiChat generates replies with a Gemini model.
type GeminiChat struct {
	client *gemini.Client
	model  string
}

// NewGeminiChat creates a new GeminiChat
func NewGeminiChat(client *gemini.Client, model string) *GeminiChat {
	return &GeminiChat{client: client, model: model}
}

// Name returns the provider name
func (p *GeminiChat) Name() string { return ProviderGemini }

// Chat implements ChatProvider. System messages become the system instruction
// and assistant turns use the "model" role.
func (p *GeminiChat) Chat(ctx context.Context, messages []models.ChatMessage, opts ChatOptions) (string, error) {
	temp := opts.Temperature
	req := gemini.GenerateRequest{
		GenerationConfig: &gemini.GenerationConfig{
			Temperature:     &temp,
			MaxOutputTokens: opts.MaxTokens,
		},
	}
	if opts.JSON {
		req.GenerationConfig.ResponseMimeType = "application/json"
	}

	var system []string
	for _, m := range messages {
		switch m.Role {
		case models.RoleSystem:
			system = append(system, m.Content)
		case models.RoleAssistant:
			req.Contents = append(req.Contents, gemini.Content{Role: "model", Parts: []gemini.Part{{Text: m.Content}}})
		default:
			req.Contents = append(req.Contents, gemini.Content{Role: "user", Parts: []gemini.Part{{Text: m.Content}}})
		}
	}
	if len(system) > 0 {
		req.SystemInstruction = &gemini.Content{Parts: []gemini.Part{{Text: strings.Join(system, "\n\n")}}}
	}

	resp, err := p.client.GenerateContent(ctx, p.model, req)
	if err != nil {
		return "", providerError(ProviderGemini, err)
	}
	return resp.Text(), nil
}

// GeminiTTS synthesizes speech with the Gemini TTS model. The model returns raw
// 16 bit mono PCM which is wrapped in a WAV container.
type GeminiTTS struct {
	client *gemini.Client
}

// NewGeminiTTS creates a new GeminiTTS
func NewGeminiTTS(client *gemini.Client) *GeminiTTS {
	return &GeminiTTS{client: client}
}

var geminiVoices = []models.Voice{
	{ID: "Kore", Name: "Kore", Category: "gemini"},
	{ID: "Puck", Name: "Puck", Category: "gemini"},
	{ID: "Charon", Name: "Charon", Category: "gemini"},
	{ID: "Fenrir", Name: "Fenrir", Category: "gemini"},
	{ID: "Aoede", Name: "Aoede", Category: "gemini"},
}

// Name returns the provider name
func (p *GeminiTTS) Name() string { return ProviderGemini }

// Synthesize implements TTSProvider.
func (p *GeminiTTS) Synthesize(ctx context.Context, text, voice string) (*models.Audio, error) {
	if voice == "" {
		voice = geminiVoices[0].ID
	}
	resp, err := p.client.GenerateContent(ctx, gemini.TTSModel, gemini.GenerateRequest{
		Contents: []gemini.Content{{Parts: []gemini.Part{{Text: "Read this aloud naturally: " + text}}}},
		GenerationConfig: &gemini.GenerationConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig:       gemini.NewSpeechConfig(voice),
		},
	})
	if err != nil {
		return nil, providerError(ProviderGemini, err)
	}

	pcm, mimeType, err := resp.Audio()
	if err != nil {
		return nil, providerError(ProviderGemini, err)
	}
	if strings.Contains(mimeType, "L16") || strings.Contains(mimeType, "pcm") {
		return &models.Audio{Data: gemini.PCMToWAV(pcm, gemini.SampleRate(mimeType), 1, 16), ContentType: "audio/wav"}, nil
	}
	return &models.Audio{Data: pcm, ContentType: mimeType}, nil
}

// Voices implements TTSProvider.
func (p *GeminiTTS) Voices(context.Context) ([]models.Voice, error) {
	return geminiVoices, nil
}

// GeminiTranscription transcribes by sending the audio inline to a Gemini model.
type GeminiTranscription struct {
	client *gemini.Client
	model  string
}

// NewGeminiTranscription creates a new GeminiTranscription
func NewGeminiTranscription(client *gemini.Client, model string) *GeminiTranscription {
	return &GeminiTranscription{client: client, model: model}
}

const geminiTranscribePrompt = `Transcribe this audio. Return JSON: {"text":"transcription","language":"ISO 639-1 code"}. Nothing else.`

// Name returns the provider name
func (p *GeminiTranscription) Name() string { return ProviderGemini }

// Transcribe implements TranscriptionProvider.
func (p *GeminiTranscription) Transcribe(ctx context.Context, audio []byte, mimeType string) (*models.Transcription, error) {
	resp, err := p.client.GenerateContent(ctx, p.model, gemini.GenerateRequest{
		Contents: []gemini.Content{{Parts: []gemini.Part{
			{Text: geminiTranscribePrompt},
			gemini.InlineAudio(mimeType, audio),
		}}},
	})
	if err != nil {
		return nil, providerError(ProviderGemini, err)
	}
	return parseGeminiTranscript(resp.Text()), nil
}

// parseGeminiTranscript accepts the requested JSON object, optionally wrapped in
// a markdown fence, and falls back to the raw text in English.
func parseGeminiTranscript(raw string) *models.Transcription {
	raw = strings.TrimSpace(raw)
	body := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(strings.TrimPrefix(raw, "```json"), "```"), "```"))

	var parsed struct {
		Text     string `json:"text"`
		Language string `json:"language"`
	}
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		return &models.Transcription{Text: raw, Language: "en"}
	}

	out := &models.Transcription{Text: parsed.Text, Language: parsed.Language}
	if out.Text == "" {
		out.Text = raw
	}
	if out.Language == "" {
		out.Language = "en"
	}
	return out
}
