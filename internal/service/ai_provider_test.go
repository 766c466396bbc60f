package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/polly"
	"github.com/aws/aws-sdk-go-v2/service/polly/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/food_finder/internal/config"
	"github.com/GTDGit/food_finder/internal/models"
	"github.com/GTDGit/food_finder/internal/utils"
	"github.com/GTDGit/food_finder/pkg/gemini"
	"github.com/GTDGit/food_finder/pkg/openai"
)

func aiConfig(chat, tts, transcription string) *config.Config {
	return &config.Config{AI: config.AIConfig{
		ChatProvider:          chat,
		TTSProvider:           tts,
		TranscriptionProvider: transcription,
		GroqAPIKey:            "groq-key",
		GroqChatModel:         "llama-3.3-70b-versatile",
		GroqFastModel:         "llama-3.1-8b-instant",
		OpenAIAPIKey:          "openai-key",
		OpenAIChatModel:       "gpt-4o-mini",
		GeminiAPIKey:          "gemini-key",
		GeminiModel:           "gemini-2.0-flash",
		ElevenLabsAPIKey:      "eleven-key",
	}}
}

func TestNewAIProviders(t *testing.T) {
	tests := []struct {
		chat, tts, transcription string
	}{
		{ProviderGroq, ProviderElevenLabs, ProviderGroq},
		{ProviderOpenAI, ProviderOpenAI, ProviderOpenAI},
		{ProviderGemini, ProviderGemini, ProviderGemini},
		{ProviderGroq, ProviderGroq, ProviderGemini},
	}

	for _, tt := range tests {
		t.Run(tt.chat+"/"+tt.tts+"/"+tt.transcription, func(t *testing.T) {
			p, err := NewAIProviders(context.Background(), aiConfig(tt.chat, tt.tts, tt.transcription))
			require.NoError(t, err)
			assert.Equal(t, tt.chat, p.Chat.Name())
			assert.Equal(t, tt.tts, p.TTS.Name())
			assert.Equal(t, tt.transcription, p.Transcription.Name())
		})
	}
}

func TestNewAIProviders_Errors(t *testing.T) {
	missingKey := aiConfig(ProviderGroq, ProviderElevenLabs, ProviderGroq)
	missingKey.AI.ElevenLabsAPIKey = ""
	_, err := NewAIProviders(context.Background(), missingKey)
	assert.ErrorIs(t, err, utils.ErrProviderNotConfigured)
	assert.Contains(t, err.Error(), "ELEVENLABS_API_KEY")

	_, err = NewAIProviders(context.Background(), aiConfig("claude", ProviderOpenAI, ProviderOpenAI))
	assert.ErrorContains(t, err, "unknown CHAT_PROVIDER")

	_, err = NewAIProviders(context.Background(), aiConfig(ProviderOpenAI, "espeak", ProviderOpenAI))
	assert.ErrorContains(t, err, "unknown TTS_PROVIDER")

	_, err = NewAIProviders(context.Background(), aiConfig(ProviderOpenAI, ProviderOpenAI, ProviderElevenLabs))
	assert.ErrorContains(t, err, "unknown TRANSCRIPTION_PROVIDER")
}

func TestProviderError(t *testing.T) {
	assert.NoError(t, providerError("groq", nil))

	limited := providerError("groq", &openai.APIError{StatusCode: http.StatusTooManyRequests})
	assert.ErrorIs(t, limited, utils.ErrProviderRateLimited)

	geminiLimited := providerError("gemini", fmt.Errorf("wrapped: %w", &gemini.APIError{StatusCode: http.StatusTooManyRequests}))
	assert.ErrorIs(t, geminiLimited, utils.ErrProviderRateLimited)

	other := providerError("groq", errUpstream)
	assert.ErrorIs(t, other, errUpstream)
	assert.NotErrorIs(t, other, utils.ErrProviderRateLimited)
}

func TestNormalizeWhisperLanguage(t *testing.T) {
	assert.Equal(t, "ar", NormalizeWhisperLanguage("fa"))
	assert.Equal(t, "ar", NormalizeWhisperLanguage("ur"))
	assert.Equal(t, "tr", NormalizeWhisperLanguage("tr"))
	assert.Equal(t, "en", NormalizeWhisperLanguage("xx"))
	assert.Equal(t, "en", NormalizeWhisperLanguage(""))
}

func TestParseGeminiTranscript(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want models.Transcription
	}{
		{"json", `{"text":"merhaba","language":"tr"}`, models.Transcription{Text: "merhaba", Language: "tr"}},
		{"fenced", "```json\n{\"text\":\"hola\",\"language\":\"es\"}\n```", models.Transcription{Text: "hola", Language: "es"}},
		{"no language", `{"text":"hi"}`, models.Transcription{Text: "hi", Language: "en"}},
		{"plain text", "just words", models.Transcription{Text: "just words", Language: "en"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, &tt.want, parseGeminiTranscript(tt.in))
		})
	}
}

func TestGeminiChat_Chat(t *testing.T) {
	var got gemini.GenerateRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/gemini-2.0-flash:generateContent", r.URL.Path)
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":"{\"response\":\"hi\"}"}]}}]}`)
	}))
	defer ts.Close()

	p := NewGeminiChat(gemini.NewClient(ts.URL, "k"), "gemini-2.0-flash")
	out, err := p.Chat(context.Background(), []models.ChatMessage{
		{Role: models.RoleSystem, Content: "be nice"},
		{Role: models.RoleAssistant, Content: "hello"},
		{Role: models.RoleUser, Content: "pizza"},
	}, ChatOptions{Temperature: 0.7, MaxTokens: 150, JSON: true})
	require.NoError(t, err)

	assert.Equal(t, `{"response":"hi"}`, out)
	require.NotNil(t, got.SystemInstruction)
	assert.Equal(t, "be nice", got.SystemInstruction.Parts[0].Text)
	require.Len(t, got.Contents, 2)
	assert.Equal(t, "model", got.Contents[0].Role)
	assert.Equal(t, "user", got.Contents[1].Role)
	assert.Equal(t, "application/json", got.GenerationConfig.ResponseMimeType)
	assert.Equal(t, 150, got.GenerationConfig.MaxOutputTokens)
}

func TestGeminiChat_RateLimited(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	p := NewGeminiChat(gemini.NewClient(ts.URL, "k"), "m")
	_, err := p.Chat(context.Background(), []models.ChatMessage{{Role: models.RoleUser, Content: "hi"}}, ChatOptions{})
	assert.ErrorIs(t, err, utils.ErrProviderRateLimited)
}

type fakePolly struct {
	input  *polly.SynthesizeSpeechInput
	pages  []*polly.DescribeVoicesOutput
	tokens []*string
}

func (f *fakePolly) SynthesizeSpeech(_ context.Context, params *polly.SynthesizeSpeechInput, _ ...func(*polly.Options)) (*polly.SynthesizeSpeechOutput, error) {
	f.input = params
	return &polly.SynthesizeSpeechOutput{
		AudioStream: io.NopCloser(bytes.NewReader([]byte("mp3"))),
		ContentType: aws.String("audio/mpeg"),
	}, nil
}

func (f *fakePolly) DescribeVoices(_ context.Context, params *polly.DescribeVoicesInput, _ ...func(*polly.Options)) (*polly.DescribeVoicesOutput, error) {
	f.tokens = append(f.tokens, params.NextToken)
	page := f.pages[0]
	f.pages = f.pages[1:]
	return page, nil
}

func TestPollyTTS_Synthesize(t *testing.T) {
	fake := &fakePolly{}
	p := NewPollyTTSWithClient(fake, "")

	audio, err := p.Synthesize(context.Background(), "merhaba", "")
	require.NoError(t, err)

	assert.Equal(t, []byte("mp3"), audio.Data)
	assert.Equal(t, "audio/mpeg", audio.ContentType)
	assert.Equal(t, types.VoiceIdJoanna, fake.input.VoiceId)
	assert.Equal(t, types.EngineNeural, fake.input.Engine)
	assert.Equal(t, "merhaba", aws.ToString(fake.input.Text))

	_, err = p.Synthesize(context.Background(), "hi", "Filiz")
	require.NoError(t, err)
	assert.Equal(t, types.VoiceId("Filiz"), fake.input.VoiceId)
}

func TestPollyTTS_VoicesFollowsPages(t *testing.T) {
	fake := &fakePolly{pages: []*polly.DescribeVoicesOutput{
		{
			Voices:    []types.Voice{{Id: types.VoiceIdJoanna, Name: aws.String("Joanna"), LanguageName: aws.String("US English")}},
			NextToken: aws.String("page-2"),
		},
		{
			Voices: []types.Voice{{Id: types.VoiceId("Filiz"), Name: aws.String("Filiz"), LanguageName: aws.String("Turkish")}},
		},
	}}
	p := NewPollyTTSWithClient(fake, "Joanna")

	voices, err := p.Voices(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []models.Voice{
		{ID: "Joanna", Name: "Joanna", Category: "polly:US English"},
		{ID: "Filiz", Name: "Filiz", Category: "polly:Turkish"},
	}, voices)
	require.Len(t, fake.tokens, 2)
	assert.Nil(t, fake.tokens[0])
	assert.Equal(t, "page-2", aws.ToString(fake.tokens[1]))
}
