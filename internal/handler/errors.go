package handler

import (
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/food_finder/internal/models"
	"github.com/GTDGit/food_finder/internal/utils"
)

// statusBySentinel maps service errors to HTTP statuses. The sentinel text is the API error code.
var statusBySentinel = []struct {
	err    error
	status int
	msg    string
}{
	{utils.ErrSearchTermRequired, http.StatusBadRequest, "Search term is required"},
	{utils.ErrMessageRequired, http.StatusBadRequest, "Message is required"},
	{utils.ErrAudioRequired, http.StatusBadRequest, "Audio data is required"},
	{utils.ErrTextRequired, http.StatusBadRequest, "Text or type is required"},
	{utils.ErrInvalidAudio, http.StatusBadRequest, "Audio must be base64 encoded"},
	{utils.ErrSessionNotFound, http.StatusNotFound, "Conversation not found"},
	{utils.ErrProviderRateLimited, http.StatusTooManyRequests, "AI provider is busy, try again shortly"},
	{utils.ErrProviderNotConfigured, http.StatusServiceUnavailable, "AI provider is not configured"},
}

// respondError writes err with the status of its sentinel, or 500 with
// fallbackCode and fallbackMsg.
func respondError(c *gin.Context, err error, fallbackCode, fallbackMsg string) {
	for _, s := range statusBySentinel {
		if errors.Is(err, s.err) {
			utils.Error(c, s.status, s.err.Error(), s.msg)
			return
		}
	}
	log.Error().Err(err).Str("request_id", c.GetString("request_id")).Str("path", c.FullPath()).Msg(fallbackMsg)
	utils.Error(c, http.StatusInternalServerError, fallbackCode, fallbackMsg)
}

// bindOptionalJSON binds the body when there is one. Empty bodies leave req untouched.
func bindOptionalJSON(c *gin.Context, req any) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		utils.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return false
	}
	return true
}

// decodeAudio decodes a base64 payload, accepting data URLs.
func decodeAudio(encoded string) ([]byte, error) {
	if encoded == "" {
		return nil, utils.ErrAudioRequired
	}
	if strings.HasPrefix(encoded, "data:") {
		if _, data, ok := strings.Cut(encoded, "base64,"); ok {
			encoded = data
		}
	}
	audio, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, utils.ErrInvalidAudio
	}
	return audio, nil
}

// audioJSON is the wire form of synthesized speech, null when absent.
func audioJSON(a *models.Audio) gin.H {
	if a == nil {
		return nil
	}
	return gin.H{
		"audio":       base64.StdEncoding.EncodeToString(a.Data),
		"contentType": a.ContentType,
	}
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
