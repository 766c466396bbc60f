package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/food_finder/internal/models"
	"github.com/GTDGit/food_finder/internal/service"
)

// VoiceHandler turns spoken sentences into search queries.
type VoiceHandler struct {
	voiceService *service.VoiceService
}

// NewVoiceHandler constructs a VoiceHandler.
func NewVoiceHandler(voiceService *service.VoiceService) *VoiceHandler {
	return &VoiceHandler{voiceService: voiceService}
}

// ProcessVoice extracts the food keywords of a transcript.
// POST /api/process-voice
func (h *VoiceHandler) ProcessVoice(c *gin.Context) {
	var req models.ProcessVoiceRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	out, err := h.voiceService.Process(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "VOICE_PROCESSING_FAILED", "Voice processing failed")
		return
	}
	c.JSON(http.StatusOK, out)
}
