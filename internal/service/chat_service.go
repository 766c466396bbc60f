package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/food_finder/internal/cache"
	"github.com/GTDGit/food_finder/internal/models"
	"github.com/GTDGit/food_finder/internal/utils"
)

const (
	maxHistoryMessages = 20
	contextMessages    = 10

	// DefaultSessionID is used when a client does not send one.
	DefaultSessionID = "default"

	emptyTranscriptReply = "I didn't catch that. Could you try again?"
)

// ConversationStore persists chat sessions. Get returns cache.ErrNotFound for
// unknown sessions.
type ConversationStore interface {
	Get(ctx context.Context, sessionID string) (*models.Conversation, error)
	Save(ctx context.Context, conv *models.Conversation) error
	Delete(ctx context.Context, sessionID string) error
}

// ChatService runs the food-aware voice assistant conversation.
type ChatService struct {
	store         ConversationStore
	chat          ChatProvider
	tts           TTSProvider
	transcription TranscriptionProvider

	now  func() time.Time
	pick func(n int) int
}

// NewChatService creates a new ChatService
func NewChatService(store ConversationStore, chat ChatProvider, tts TTSProvider, transcription TranscriptionProvider) *ChatService {
	return &ChatService{
		store:         store,
		chat:          chat,
		tts:           tts,
		transcription: transcription,
		now:           time.Now,
		pick:          rand.IntN,
	}
}

// Start opens a conversation with a greeting in language. An empty sessionID
// gets a fresh one.
func (s *ChatService) Start(ctx context.Context, sessionID, language string, generateAudio bool) (*models.ChatGreeting, error) {
	if sessionID == "" {
		sessionID = "session_" + uuid.New().String()
	}
	greeting := s.greeting(language)

	conv := &models.Conversation{
		SessionID:    sessionID,
		History:      []models.ChatMessage{{Role: models.RoleAssistant, Content: greeting}},
		LastActivity: s.now(),
		Language:     language,
	}
	if err := s.store.Save(ctx, conv); err != nil {
		return nil, fmt.Errorf("failed to save conversation: %w", err)
	}

	out := &models.ChatGreeting{Greeting: greeting, SessionID: sessionID}
	if generateAudio {
		out.Audio = s.speak(ctx, greeting)
	}
	return out, nil
}

// Chat answers a text message.
func (s *ChatService) Chat(ctx context.Context, sessionID, message, language string, generateAudio bool) (*models.ChatTurn, error) {
	if strings.TrimSpace(message) == "" {
		return nil, utils.ErrMessageRequired
	}
	if sessionID == "" {
		sessionID = DefaultSessionID
	}
	if language == "" {
		language = "en"
	}

	conv, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.turn(ctx, conv, message, language, generateAudio)
}

// AudioChat transcribes audio and answers it like a text message, in the
// detected language. Audio replies are always generated.
func (s *ChatService) AudioChat(ctx context.Context, sessionID string, audio []byte, mimeType string) (*models.ChatTurn, error) {
	if len(audio) == 0 {
		return nil, utils.ErrAudioRequired
	}
	if sessionID == "" {
		sessionID = DefaultSessionID
	}

	startTime := time.Now()
	tr, err := s.transcription.Transcribe(ctx, audio, mimeType)
	if err != nil {
		return nil, fmt.Errorf("transcription failed: %w", err)
	}
	log.Debug().
		Str("session_id", sessionID).
		Str("language", tr.Language).
		Dur("latency", time.Since(startTime)).
		Msg("Audio transcribed")

	transcript := strings.TrimSpace(tr.Text)
	if transcript == "" {
		return &models.ChatTurn{
			ChatReply: models.ChatReply{Response: emptyTranscriptReply, FoodItems: []string{}},
			SessionID: sessionID,
		}, nil
	}

	language := tr.Language
	if language == "" {
		language = "en"
	}

	conv, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	conv.Language = language

	turn, err := s.turn(ctx, conv, transcript, language, true)
	if err != nil {
		return nil, err
	}
	turn.Transcript = transcript
	return turn, nil
}

// History returns a stored conversation or utils.ErrSessionNotFound.
func (s *ChatService) History(ctx context.Context, sessionID string) (*models.Conversation, error) {
	conv, err := s.store.Get(ctx, sessionID)
	if errors.Is(err, cache.ErrNotFound) {
		return nil, utils.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}
	return conv, nil
}

// Clear forgets a conversation.
func (s *ChatService) Clear(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, sessionID)
}

func (s *ChatService) load(ctx context.Context, sessionID string) (*models.Conversation, error) {
	conv, err := s.store.Get(ctx, sessionID)
	if errors.Is(err, cache.ErrNotFound) {
		return &models.Conversation{SessionID: sessionID, LastActivity: s.now()}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}
	return conv, nil
}

func (s *ChatService) turn(ctx context.Context, conv *models.Conversation, message, language string, generateAudio bool) (*models.ChatTurn, error) {
	startTime := time.Now()
	reply, err := s.reply(ctx, conv.History, message, language)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Str("session_id", conv.SessionID).
		Bool("should_search", reply.ShouldSearch).
		Dur("latency", time.Since(startTime)).
		Msg("Chat reply generated")

	conv.History = append(conv.History,
		models.ChatMessage{Role: models.RoleUser, Content: message},
		models.ChatMessage{Role: models.RoleAssistant, Content: reply.Response},
	)
	if len(conv.History) > maxHistoryMessages {
		conv.History = conv.History[len(conv.History)-maxHistoryMessages:]
	}
	conv.LastActivity = s.now()

	if reply.FoodMentioned && len(reply.FoodItems) > 0 {
		conv.LastFoodItems = reply.FoodItems
	}
	if len(reply.FoodItems) == 0 && len(conv.LastFoodItems) > 0 {
		reply.FoodItems = append([]string(nil), conv.LastFoodItems...)
	}

	if err := s.store.Save(ctx, conv); err != nil {
		return nil, fmt.Errorf("failed to save conversation: %w", err)
	}

	turn := &models.ChatTurn{ChatReply: reply, SessionID: conv.SessionID}
	if generateAudio && reply.Response != "" {
		turn.Audio = s.speak(ctx, reply.Response)
	}
	return turn, nil
}

// reply asks the chat provider for the next assistant message. A rate limited
// provider yields a short "busy" answer instead of an error.
func (s *ChatService) reply(ctx context.Context, history []models.ChatMessage, message, language string) (models.ChatReply, error) {
	messages := make([]models.ChatMessage, 0, contextMessages+2)
	messages = append(messages, models.ChatMessage{Role: models.RoleSystem, Content: chatSystemPrompt(language)})

	recent := history
	if len(recent) > contextMessages {
		recent = recent[len(recent)-contextMessages:]
	}
	for _, m := range recent {
		role := models.RoleAssistant
		if m.Role == models.RoleUser {
			role = models.RoleUser
		}
		messages = append(messages, models.ChatMessage{Role: role, Content: m.Content})
	}
	messages = append(messages, models.ChatMessage{Role: models.RoleUser, Content: message})

	text, err := s.chat.Chat(ctx, messages, ChatOptions{Temperature: 0.7, MaxTokens: 150, JSON: true})
	if err != nil {
		if errors.Is(err, utils.ErrProviderRateLimited) {
			log.Warn().Err(err).Msg("Chat provider rate limited")
			return busyReply(language), nil
		}
		return models.ChatReply{}, fmt.Errorf("chat failed: %w", err)
	}
	return ParseChatReply(text), nil
}

// speak synthesizes text. Failures are logged and produce no audio.
func (s *ChatService) speak(ctx context.Context, text string) *models.Audio {
	startTime := time.Now()
	audio, err := s.tts.Synthesize(ctx, text, "")
	if err != nil {
		log.Warn().Err(err).Str("provider", s.tts.Name()).Msg("TTS failed, continuing without audio")
		return nil
	}
	log.Debug().Str("provider", s.tts.Name()).Dur("latency", time.Since(startTime)).Msg("Reply synthesized")
	return audio
}

func busyReply(language string) models.ChatReply {
	msg := "I'm a bit busy right now. Give me a moment and try again!"
	if language == "ar" {
		msg = "لحظة، جاري المحاولة..."
	}
	return models.ChatReply{Response: msg, FoodItems: []string{}}
}

var replyObjectRe = regexp.MustCompile(`(?s)\{.*"response".*\}`)

// ParseChatReply decodes the JSON reply of the model. It accepts a bare JSON
// object, an object embedded in surrounding text, and plain text (returned as
// the response with no food detected).
func ParseChatReply(text string) models.ChatReply {
	if reply, ok := decodeChatReply(text, text); ok {
		return reply
	}
	if m := replyObjectRe.FindString(text); m != "" {
		if reply, ok := decodeChatReply(m, text); ok {
			return reply
		}
	}
	return models.ChatReply{Response: text, FoodItems: []string{}}
}

func decodeChatReply(raw, fallback string) (models.ChatReply, bool) {
	var reply models.ChatReply
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &reply); err != nil {
		return models.ChatReply{}, false
	}
	if reply.Response == "" {
		reply.Response = fallback
	}
	if reply.FoodItems == nil {
		reply.FoodItems = []string{}
	}
	return reply, true
}

var greetings = map[string][]string{
	"en": {"Hey there! What's on your mind?", "Hi! How can I help you today?", "Hey! What can I do for you?"},
	"ar": {"أهلاً! شو عبالك اليوم؟", "مرحبا! كيف أقدر أساعدك؟", "هلا! شو تبي؟"},
	"fr": {"Salut ! Qu'est-ce qui te ferait plaisir ?", "Coucou ! Comment je peux t'aider ?", "Hey ! Quoi de neuf ?"},
	"es": {"¡Hola! ¿Qué tienes en mente?", "¡Hey! ¿En qué te puedo ayudar?", "¡Hola! ¿Qué se te antoja?"},
	"de": {"Hey! Was hast du auf dem Herzen?", "Hallo! Wie kann ich dir helfen?", "Hi! Was kann ich für dich tun?"},
	"zh": {"嘿！你在想什么？", "你好！我能帮你什么？", "嗨！有什么需要的吗？"},
	"hi": {"नमस्ते! क्या चल रहा है?", "हाय! मैं कैसे मदद कर सकता हूं?", "हेलो! क्या चाहिए?"},
	"pt": {"Oi! O que está pensando?", "E aí! Como posso ajudar?", "Olá! O que posso fazer por você?"},
	"ru": {"Привет! Что у тебя на уме?", "Хей! Чем могу помочь?", "Здравствуй! Что тебе нужно?"},
	"ja": {"やあ！何を考えてる？", "こんにちは！何かお手伝いできる？", "ハイ！何でも聞いてね！"},
	"ko": {"안녕! 무슨 생각 중이야?", "하이! 뭘 도와줄까?", "안녕하세요! 무엇이 필요하세요?"},
	"it": {"Ciao! Cosa hai in mente?", "Hey! Come posso aiutarti?", "Ciao! Che mi racconti?"},
	"tr": {"Selam! Aklında ne var?", "Merhaba! Nasıl yardımcı olabilirim?", "Hey! Ne yapabilirim senin için?"},
}

func (s *ChatService) greeting(language string) string {
	list, ok := greetings[language]
	if !ok {
		list = greetings["en"]
	}
	return list[s.pick(len(list))]
}

func chatSystemPrompt(language string) string {
	return fmt.Sprintf(`You are a fun, friendly and curious assistant who loves chatting and helps people find food to order.

Rules:
- Always reply in the language the user writes in. The detected language code %q is only a hint.
- Keep replies under 30 words.
- End with a follow-up question to keep the conversation going.
- Refer back to what the user said earlier when it helps.
- Be playful and casual, like talking to a friend.
- When the user mentions food, drinks or being hungry, extract the items.

Reply with JSON only, no extra text:
{"response":"your reply","foodMentioned":bool,"foodItems":["items in english"],"shouldSearch":bool,"shouldStop":bool}

- foodItems: always in English, whatever language the user speaks. List every food or drink item mentioned.
- foodMentioned: true whenever the user mentions any food or drink, or says they are hungry.
- shouldSearch: true whenever foodItems is not empty.
- shouldStop: true only when the user says bye, stop, done, quit or goodbye.

Examples:
User: "Hi"
{"response":"Hey there! How's your day going so far?","foodMentioned":false,"foodItems":[],"shouldSearch":false,"shouldStop":false}

User: "I'm starving"
{"response":"Oh no, we can't have that! What are you craving right now?","foodMentioned":true,"foodItems":[],"shouldSearch":false,"shouldStop":false}

User: "pizza"
{"response":"Great choice! Let me find some pizza for you. Any favourite style?","foodMentioned":true,"foodItems":["pizza"],"shouldSearch":true,"shouldStop":false}

User: "Bir lahmacun istiyorum"
{"response":"Harika seçim! Senin için lahmacun arıyorum. Acılı mı olsun?","foodMentioned":true,"foodItems":["lahmacun"],"shouldSearch":true,"shouldStop":false}

User: "bye"
{"response":"It was great chatting with you! Come back anytime!","foodMentioned":false,"foodItems":[],"shouldSearch":false,"shouldStop":true}`, language)
}
