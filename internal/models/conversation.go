package models

import "time"

// ChatRole is the author of a chat message.
type ChatRole string

const (
	RoleSystem    ChatRole = "system"
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatMessage is one turn of a conversation.
type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

// Conversation holds the state of one chat session.
type Conversation struct {
	SessionID     string        `json:"sessionId"`
	History       []ChatMessage `json:"history"`
	LastActivity  time.Time     `json:"lastActivity"`
	LastFoodItems []string      `json:"lastFoodItems,omitempty"`
	Language      string        `json:"language,omitempty"`
}

// ChatReply is the structured answer of the assistant for one user message.
type ChatReply struct {
	Response      string   `json:"response"`
	FoodMentioned bool     `json:"foodMentioned"`
	FoodItems     []string `json:"foodItems"`
	ShouldSearch  bool     `json:"shouldSearch"`
	ShouldStop    bool     `json:"shouldStop"`
}

// StartChatRequest is the body of POST /api/chat/start.
type StartChatRequest struct {
	SessionID     string `json:"sessionId"`
	GenerateAudio *bool  `json:"generateAudio,omitempty"` // default true
	Language      string `json:"language"`
}

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Message       string `json:"message"`
	SessionID     string `json:"sessionId"`
	GenerateAudio *bool  `json:"generateAudio,omitempty"` // default true
	Language      string `json:"language"`
}

// AudioChatRequest is the body of POST /api/chat/audio.
type AudioChatRequest struct {
	Audio     string `json:"audio"` // base64
	MimeType  string `json:"mimeType"`
	SessionID string `json:"sessionId"`
}

// ChatTurn is the outcome of one user message: the reply plus the items to search for.
type ChatTurn struct {
	ChatReply
	SessionID  string
	Transcript string
	Audio      *Audio
}

// ChatGreeting opens a new conversation.
type ChatGreeting struct {
	Greeting  string
	SessionID string
	Audio     *Audio
}
