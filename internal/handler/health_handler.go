package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/food_finder/internal/service"
)

var startTime = time.Now()

// Pinger is a dependency whose reachability is reported by the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler provides health endpoint.
type HealthHandler struct {
	providers *service.AIProviders
	redis     Pinger
}

// NewHealthHandler creates a new HealthHandler. redis may be nil when Redis is disabled.
func NewHealthHandler(providers *service.AIProviders, redis Pinger) *HealthHandler {
	return &HealthHandler{providers: providers, redis: redis}
}

// GetHealth responds with service, provider and Redis status.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	redisStatus := "disabled"
	if h.redis != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		redisStatus = "connected"
		if err := h.redis.Ping(ctx); err != nil {
			redisStatus = "disconnected"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "food-finder",
		"uptime":  int(time.Since(startTime).Seconds()),
		"providers": gin.H{
			"chat":          h.providers.Chat.Name(),
			"tts":           h.providers.TTS.Name(),
			"transcription": h.providers.Transcription.Name(),
		},
		"redis": redisStatus,
	})
}
