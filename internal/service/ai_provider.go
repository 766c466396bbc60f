package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/GTDGit/food_finder/internal/config"
	"github.com/GTDGit/food_finder/internal/models"
	"github.com/GTDGit/food_finder/internal/utils"
	"github.com/GTDGit/food_finder/pkg/elevenlabs"
	"github.com/GTDGit/food_finder/pkg/gemini"
	"github.com/GTDGit/food_finder/pkg/openai"
)

// Provider names accepted by CHAT_PROVIDER, TTS_PROVIDER and TRANSCRIPTION_PROVIDER.
const (
	ProviderGroq       = "groq"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderElevenLabs = "elevenlabs"
	ProviderPolly      = "polly"
)

// ChatOptions tunes one chat completion.
type ChatOptions struct {
	Temperature float64
	MaxTokens   int
	JSON        bool // ask for a JSON object reply
	Fast        bool // use the small, low latency model
}

// ChatProvider generates assistant replies.
type ChatProvider interface {
	Name() string
	Chat(ctx context.Context, messages []models.ChatMessage, opts ChatOptions) (string, error)
}

// TTSProvider turns text into speech.
type TTSProvider interface {
	Name() string
	// Synthesize speaks text with voice; an empty voice means the provider default.
	Synthesize(ctx context.Context, text, voice string) (*models.Audio, error)
	Voices(ctx context.Context) ([]models.Voice, error)
}

// TranscriptionProvider turns speech into text and detects its language.
type TranscriptionProvider interface {
	Name() string
	Transcribe(ctx context.Context, audio []byte, mimeType string) (*models.Transcription, error)
}

// AIProviders is the set of providers selected by configuration.
type AIProviders struct {
	Chat          ChatProvider
	TTS           TTSProvider
	Transcription TranscriptionProvider
}

// NewAIProviders builds the providers named in cfg. Unknown names or missing
// credentials fail.
func NewAIProviders(ctx context.Context, cfg *config.Config) (*AIProviders, error) {
	ai := cfg.AI
	out := &AIProviders{}

	switch ai.ChatProvider {
	case ProviderGroq:
		if ai.GroqAPIKey == "" {
			return nil, notConfigured("chat", ai.ChatProvider, "GROQ_API_KEY")
		}
		out.Chat = NewOpenAIChat(ProviderGroq, groqClient(ai), ai.GroqChatModel, ai.GroqFastModel)
	case ProviderOpenAI:
		if ai.OpenAIAPIKey == "" {
			return nil, notConfigured("chat", ai.ChatProvider, "OPENAI_API_KEY")
		}
		out.Chat = NewOpenAIChat(ProviderOpenAI, openAIClient(ai), ai.OpenAIChatModel, ai.OpenAIChatModel)
	case ProviderGemini:
		if ai.GeminiAPIKey == "" {
			return nil, notConfigured("chat", ai.ChatProvider, "GEMINI_API_KEY")
		}
		out.Chat = NewGeminiChat(gemini.NewClient("", ai.GeminiAPIKey), ai.GeminiModel)
	default:
		return nil, fmt.Errorf("unknown CHAT_PROVIDER %q", ai.ChatProvider)
	}

	switch ai.TTSProvider {
	case ProviderElevenLabs:
		if ai.ElevenLabsAPIKey == "" {
			return nil, notConfigured("tts", ai.TTSProvider, "ELEVENLABS_API_KEY")
		}
		out.TTS = NewElevenLabsTTS(elevenlabs.NewClient("", ai.ElevenLabsAPIKey), ai.ElevenLabsVoice)
	case ProviderOpenAI:
		if ai.OpenAIAPIKey == "" {
			return nil, notConfigured("tts", ai.TTSProvider, "OPENAI_API_KEY")
		}
		out.TTS = NewOpenAITTS(openAIClient(ai))
	case ProviderGroq:
		if ai.GroqAPIKey == "" {
			return nil, notConfigured("tts", ai.TTSProvider, "GROQ_API_KEY")
		}
		out.TTS = NewGroqTTS(groqClient(ai))
	case ProviderGemini:
		if ai.GeminiAPIKey == "" {
			return nil, notConfigured("tts", ai.TTSProvider, "GEMINI_API_KEY")
		}
		out.TTS = NewGeminiTTS(gemini.NewClient("", ai.GeminiAPIKey))
	case ProviderPolly:
		tts, err := NewPollyTTS(ctx, &cfg.AWS)
		if err != nil {
			return nil, err
		}
		out.TTS = tts
	default:
		return nil, fmt.Errorf("unknown TTS_PROVIDER %q", ai.TTSProvider)
	}

	switch ai.TranscriptionProvider {
	case ProviderOpenAI:
		if ai.OpenAIAPIKey == "" {
			return nil, notConfigured("transcription", ai.TranscriptionProvider, "OPENAI_API_KEY")
		}
		out.Transcription = NewOpenAITranscription(openAIClient(ai))
	case ProviderGroq:
		if ai.GroqAPIKey == "" {
			return nil, notConfigured("transcription", ai.TranscriptionProvider, "GROQ_API_KEY")
		}
		out.Transcription = NewGroqTranscription(groqClient(ai))
	case ProviderGemini:
		if ai.GeminiAPIKey == "" {
			return nil, notConfigured("transcription", ai.TranscriptionProvider, "GEMINI_API_KEY")
		}
		out.Transcription = NewGeminiTranscription(gemini.NewClient("", ai.GeminiAPIKey), ai.GeminiModel)
	default:
		return nil, fmt.Errorf("unknown TRANSCRIPTION_PROVIDER %q", ai.TranscriptionProvider)
	}

	return out, nil
}

func groqClient(ai config.AIConfig) *openai.Client {
	return openai.NewClient(openai.Config{Name: ProviderGroq, BaseURL: openai.GroqBaseURL, APIKey: ai.GroqAPIKey})
}

func openAIClient(ai config.AIConfig) *openai.Client {
	return openai.NewClient(openai.Config{Name: ProviderOpenAI, BaseURL: openai.OpenAIBaseURL, APIKey: ai.OpenAIAPIKey})
}

func notConfigured(capability, provider, key string) error {
	return fmt.Errorf("%w: %s provider %s requires %s", utils.ErrProviderNotConfigured, capability, provider, key)
}

// providerError marks upstream 429s with utils.ErrProviderRateLimited so callers
// can branch without knowing the provider.
func providerError(name string, err error) error {
	if err == nil {
		return nil
	}
	var geminiErr *gemini.APIError
	if openai.IsRateLimited(err) || (errors.As(err, &geminiErr) && geminiErr.RateLimited()) {
		return fmt.Errorf("%s: %w: %v", name, utils.ErrProviderRateLimited, err)
	}
	return fmt.Errorf("%s: %w", name, err)
}
