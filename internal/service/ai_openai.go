package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/GTDGit/food_finder/internal/models"
	"github.com/GTDGit/food_finder/pkg/openai"
)

// OpenAIChat talks to an OpenAI compatible chat completions endpoint (OpenAI or Groq).
type OpenAIChat struct {
	name      string
	client    *openai.Client
	model     string
	fastModel string
}

// NewOpenAIChat creates a new OpenAIChat
func NewOpenAIChat(name string, client *openai.Client, model, fastModel string) *OpenAIChat {
	if fastModel == "" {
		fastModel = model
	}
	return &OpenAIChat{name: name, client: client, model: model, fastModel: fastModel}
}

// Name returns the provider name
func (p *OpenAIChat) Name() string { return p.name }

// Chat implements ChatProvider.
func (p *OpenAIChat) Chat(ctx context.Context, messages []models.ChatMessage, opts ChatOptions) (string, error) {
	req := openai.ChatRequest{
		Model:       p.model,
		Messages:    make([]openai.Message, len(messages)),
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}
	if opts.Fast {
		req.Model = p.fastModel
	}
	if opts.JSON {
		req.ResponseFormat = openai.JSONObject
	}
	for i, m := range messages {
		req.Messages[i] = openai.Message{Role: string(m.Role), Content: m.Content}
	}

	startTime := time.Now()
	content, err := p.client.ChatCompletion(ctx, req)
	if err != nil {
		return "", providerError(p.name, err)
	}

	log.Debug().
		Str("provider", p.name).
		Str("model", req.Model).
		Dur("latency", time.Since(startTime)).
		Msg("Chat completion")
	return content, nil
}

// OpenAITTS synthesizes speech with OpenAI tts-1.
type OpenAITTS struct {
	client *openai.Client
}

// NewOpenAITTS creates a new OpenAITTS
func NewOpenAITTS(client *openai.Client) *OpenAITTS {
	return &OpenAITTS{client: client}
}

var openAIVoices = []models.Voice{
	{ID: "nova", Name: "Nova", Category: "openai"},
	{ID: "alloy", Name: "Alloy", Category: "openai"},
	{ID: "ash", Name: "Ash", Category: "openai"},
	{ID: "coral", Name: "Coral", Category: "openai"},
	{ID: "echo", Name: "Echo", Category: "openai"},
	{ID: "fable", Name: "Fable", Category: "openai"},
	{ID: "onyx", Name: "Onyx", Category: "openai"},
	{ID: "sage", Name: "Sage", Category: "openai"},
	{ID: "shimmer", Name: "Shimmer", Category: "openai"},
}

// Name returns the provider name
func (p *OpenAITTS) Name() string { return ProviderOpenAI }

// Synthesize implements TTSProvider.
func (p *OpenAITTS) Synthesize(ctx context.Context, text, voice string) (*models.Audio, error) {
	if voice == "" {
		voice = openAIVoices[0].ID
	}
	data, err := p.client.Speech(ctx, openai.SpeechRequest{
		Model:          "tts-1",
		Input:          text,
		Voice:          voice,
		Speed:          1.0,
		ResponseFormat: "mp3",
	})
	if err != nil {
		return nil, providerError(ProviderOpenAI, err)
	}
	return &models.Audio{Data: data, ContentType: "audio/mpeg"}, nil
}

// Voices implements TTSProvider.
func (p *OpenAITTS) Voices(context.Context) ([]models.Voice, error) {
	return openAIVoices, nil
}

// GroqTTS synthesizes speech with Groq PlayAI.
type GroqTTS struct {
	client *openai.Client
}

// NewGroqTTS creates a new GroqTTS
func NewGroqTTS(client *openai.Client) *GroqTTS {
	return &GroqTTS{client: client}
}

var groqVoices = []models.Voice{
	{ID: "Arista-PlayAI", Name: "Arista", Category: "groq-playai"},
	{ID: "Atlas-PlayAI", Name: "Atlas", Category: "groq-playai"},
	{ID: "Celeste-PlayAI", Name: "Celeste", Category: "groq-playai"},
	{ID: "Cheyenne-PlayAI", Name: "Cheyenne", Category: "groq-playai"},
	{ID: "Fritz-PlayAI", Name: "Fritz", Category: "groq-playai"},
	{ID: "Gail-PlayAI", Name: "Gail", Category: "groq-playai"},
	{ID: "Indigo-PlayAI", Name: "Indigo", Category: "groq-playai"},
	{ID: "Jennifer-PlayAI", Name: "Jennifer", Category: "groq-playai"},
	{ID: "Nova-PlayAI", Name: "Nova", Category: "groq-playai"},
	{ID: "Quinn-PlayAI", Name: "Quinn", Category: "groq-playai"},
	{ID: "Ruby-PlayAI", Name: "Ruby", Category: "groq-playai"},
}

// Name returns the provider name
func (p *GroqTTS) Name() string { return ProviderGroq }

// Synthesize implements TTSProvider.
func (p *GroqTTS) Synthesize(ctx context.Context, text, voice string) (*models.Audio, error) {
	if voice == "" {
		voice = groqVoices[0].ID
	}
	data, err := p.client.Speech(ctx, openai.SpeechRequest{
		Model:          "playai-tts",
		Input:          text,
		Voice:          voice,
		ResponseFormat: "wav",
	})
	if err != nil {
		return nil, providerError(ProviderGroq, err)
	}
	return &models.Audio{Data: data, ContentType: "audio/wav"}, nil
}

// Voices implements TTSProvider.
func (p *GroqTTS) Voices(context.Context) ([]models.Voice, error) {
	return groqVoices, nil
}

// OpenAITranscription transcribes with OpenAI whisper-1.
type OpenAITranscription struct {
	client *openai.Client
}

// NewOpenAITranscription creates a new OpenAITranscription
func NewOpenAITranscription(client *openai.Client) *OpenAITranscription {
	return &OpenAITranscription{client: client}
}

// Name returns the provider name
func (p *OpenAITranscription) Name() string { return ProviderOpenAI }

// Transcribe implements TranscriptionProvider.
func (p *OpenAITranscription) Transcribe(ctx context.Context, audio []byte, mimeType string) (*models.Transcription, error) {
	resp, err := p.client.Transcribe(ctx, openai.TranscriptionRequest{
		Model:    "whisper-1",
		Audio:    audio,
		MimeType: mimeType,
	})
	if err != nil {
		return nil, providerError(ProviderOpenAI, err)
	}
	lang := resp.Language
	if lang == "" {
		lang = "en"
	}
	return &models.Transcription{Text: resp.Text, Language: lang}, nil
}

// GroqTranscription transcribes with Groq whisper-large-v3-turbo.
type GroqTranscription struct {
	client *openai.Client
}

// NewGroqTranscription creates a new GroqTranscription
func NewGroqTranscription(client *openai.Client) *GroqTranscription {
	return &GroqTranscription{client: client}
}

// whisperLanguages maps Whisper detections to the languages the assistant
// speaks. Whisper often reports Arabic speech as Persian, Urdu and friends.
var whisperLanguages = map[string]string{
	"ar": "ar", "fa": "ar", "ur": "ar", "ps": "ar", "sd": "ar", "ku": "ar",
	"en": "en", "fr": "fr", "es": "es", "de": "de", "it": "it", "pt": "pt",
	"ru": "ru", "zh": "zh", "ja": "ja", "ko": "ko", "tr": "tr", "nl": "nl",
	"hi": "hi", "id": "id", "ms": "ms", "th": "th",
}

// NormalizeWhisperLanguage returns the supported language for a Whisper
// detection, "en" when unknown.
func NormalizeWhisperLanguage(detected string) string {
	if lang, ok := whisperLanguages[detected]; ok {
		return lang
	}
	return "en"
}

// Name returns the provider name
func (p *GroqTranscription) Name() string { return ProviderGroq }

// Transcribe implements TranscriptionProvider.
func (p *GroqTranscription) Transcribe(ctx context.Context, audio []byte, mimeType string) (*models.Transcription, error) {
	resp, err := p.client.Transcribe(ctx, openai.TranscriptionRequest{
		Model:    "whisper-large-v3-turbo",
		Audio:    audio,
		MimeType: mimeType,
	})
	if err != nil {
		return nil, providerError(ProviderGroq, err)
	}

	lang := NormalizeWhisperLanguage(resp.Language)
	if resp.Language != lang {
		log.Debug().Str("detected", resp.Language).Str("language", lang).Msg("Corrected transcription language")
	}
	return &models.Transcription{Text: resp.Text, Language: lang}, nil
}
