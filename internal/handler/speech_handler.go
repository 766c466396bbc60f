package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/food_finder/internal/models"
	"github.com/GTDGit/food_finder/internal/service"
)

// SpeechHandler exposes transcription and text-to-speech.
type SpeechHandler struct {
	speechService *service.SpeechService
}

// NewSpeechHandler constructs a SpeechHandler.
func NewSpeechHandler(speechService *service.SpeechService) *SpeechHandler {
	return &SpeechHandler{speechService: speechService}
}

// Transcribe converts base64 audio to text and a language code.
// POST /api/transcribe
func (h *SpeechHandler) Transcribe(c *gin.Context) {
	var req models.TranscribeRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	audio, err := decodeAudio(req.Audio)
	if err != nil {
		respondError(c, err, "INVALID_REQUEST", "Invalid audio")
		return
	}

	tr, err := h.speechService.Transcribe(c.Request.Context(), audio, req.MimeType)
	if err != nil {
		respondError(c, err, "TRANSCRIPTION_FAILED", "Transcription failed")
		return
	}
	c.JSON(http.StatusOK, tr)
}

// Synthesize speaks text and returns base64 audio.
// POST /api/tts
func (h *SpeechHandler) Synthesize(c *gin.Context) {
	var req models.TTSRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	audio, err := h.speechService.Synthesize(c.Request.Context(), req.Text, req.VoiceID)
	if err != nil {
		respondError(c, err, "TTS_FAILED", "Text-to-speech failed")
		return
	}
	c.JSON(http.StatusOK, audioJSON(audio))
}

// Voices lists the voices of the active TTS provider.
// GET /api/tts/voices
func (h *SpeechHandler) Voices(c *gin.Context) {
	voices, err := h.speechService.Voices(c.Request.Context())
	if err != nil {
		respondError(c, err, "VOICES_FAILED", "Failed to fetch voices")
		return
	}
	if voices == nil {
		voices = []models.Voice{}
	}
	c.JSON(http.StatusOK, voices)
}
