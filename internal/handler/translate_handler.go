package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/food_finder/internal/models"
	"github.com/GTDGit/food_finder/internal/service"
)

// TranslateHandler serves UI phrase translation.
type TranslateHandler struct {
	translateService *service.TranslateService
}

// NewTranslateHandler constructs a TranslateHandler.
func NewTranslateHandler(translateService *service.TranslateService) *TranslateHandler {
	return &TranslateHandler{translateService: translateService}
}

// Translate translates free text or a known phrase type.
// POST /api/translate
func (h *TranslateHandler) Translate(c *gin.Context) {
	var req models.TranslateRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	if req.Language == "" {
		req.Language = "en"
	}

	translated, err := h.translateService.TranslateRequest(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "TRANSLATION_FAILED", "Translation failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"translated": translated, "language": req.Language})
}

// Phrases returns every pre-translated phrase for a language.
// GET /api/translate/phrases/:language
func (h *TranslateHandler) Phrases(c *gin.Context) {
	language := c.Param("language")
	c.JSON(http.StatusOK, gin.H{"language": language, "phrases": h.translateService.Phrases(language)})
}

// Languages lists the supported languages.
// GET /api/translate/languages
func (h *TranslateHandler) Languages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"languages": h.translateService.Languages()})
}
