package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/food_finder/internal/models"
	"github.com/GTDGit/food_finder/internal/service"
	"github.com/GTDGit/food_finder/internal/utils"
)

// ChatHandler serves the conversational assistant.
type ChatHandler struct {
	chatService *service.ChatService
}

// NewChatHandler constructs a ChatHandler.
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// Start opens a conversation with a spoken greeting.
// POST /api/chat/start
func (h *ChatHandler) Start(c *gin.Context) {
	var req models.StartChatRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	if req.Language == "" {
		req.Language = "en"
	}

	greeting, err := h.chatService.Start(c.Request.Context(), req.SessionID, req.Language, boolOr(req.GenerateAudio, true))
	if err != nil {
		respondError(c, err, "CHAT_START_FAILED", "Failed to start chat")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"greeting":  greeting.Greeting,
		"sessionId": greeting.SessionID,
		"audio":     audioJSON(greeting.Audio),
	})
}

// Chat answers a text message.
// POST /api/chat
func (h *ChatHandler) Chat(c *gin.Context) {
	var req models.ChatRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	turn, err := h.chatService.Chat(c.Request.Context(), req.SessionID, req.Message, req.Language, boolOr(req.GenerateAudio, true))
	if err != nil {
		respondError(c, err, "CHAT_FAILED", "Chat failed")
		return
	}
	c.JSON(http.StatusOK, chatTurnJSON(turn))
}

// Audio transcribes a recording and answers it.
// POST /api/chat/audio
func (h *ChatHandler) Audio(c *gin.Context) {
	var req models.AudioChatRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	audio, err := decodeAudio(req.Audio)
	if err != nil {
		respondError(c, err, "INVALID_REQUEST", "Invalid audio")
		return
	}
	if req.MimeType == "" {
		req.MimeType = service.DefaultAudioMimeType
	}

	turn, err := h.chatService.AudioChat(c.Request.Context(), req.SessionID, audio, req.MimeType)
	if err != nil {
		respondError(c, err, "AUDIO_CHAT_FAILED", "Audio chat failed")
		return
	}

	body := chatTurnJSON(turn)
	body["transcript"] = turn.Transcript
	c.JSON(http.StatusOK, body)
}

// History returns the stored messages of a conversation.
// GET /api/chat/history/:sessionId
func (h *ChatHandler) History(c *gin.Context) {
	conv, err := h.chatService.History(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		respondError(c, err, "INTERNAL_ERROR", "Failed to load conversation")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionId":    conv.SessionID,
		"history":      conv.History,
		"lastActivity": conv.LastActivity.UnixMilli(),
	})
}

// Clear forgets a conversation.
// DELETE /api/chat/:sessionId
func (h *ChatHandler) Clear(c *gin.Context) {
	if err := h.chatService.Clear(c.Request.Context(), c.Param("sessionId")); err != nil {
		respondError(c, err, "INTERNAL_ERROR", "Failed to clear conversation")
		return
	}
	utils.Success(c, http.StatusOK, "Conversation cleared", nil)
}

func chatTurnJSON(t *models.ChatTurn) gin.H {
	return gin.H{
		"response":      t.Response,
		"foodMentioned": t.FoodMentioned,
		"foodItems":     t.FoodItems,
		"shouldSearch":  t.ShouldSearch,
		"shouldStop":    t.ShouldStop,
		"sessionId":     t.SessionID,
		"audio":         audioJSON(t.Audio),
	}
}
