package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recuerdalab/memoryprompts-backend/internal/apierr"
	"github.com/recuerdalab/memoryprompts-backend/internal/services"
)

type PromptHandler struct {
	promptService     services.PromptService
	generationService services.GenerationService
}

func NewPromptHandler(promptService services.PromptService, generationService services.GenerationService) *PromptHandler {
	return &PromptHandler{promptService: promptService, generationService: generationService}
}

// GetRandom handles GET /api/prompts with an optional ?category= filter.
func (h *PromptHandler) GetRandom(c *gin.Context) {
	prompt, err := h.promptService.SelectRandom(c.Request.Context(), c.Query("category"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, prompt)
}

// Search handles GET /api/prompts/search?keyword= with exact keyword match.
func (h *PromptHandler) Search(c *gin.Context) {
	prompts, err := h.promptService.SearchByKeyword(c.Request.Context(), c.Query("keyword"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"prompts": prompts})
}

type generateRequestBody struct {
	Category      string   `json:"category"`
	Language      string   `json:"language"`
	Amount        int      `json:"amount"`
	Subcategories []string `json:"subcategories"`
}

// Generate handles POST /api/prompts/generate.
func (h *PromptHandler) Generate(c *gin.Context) {
	var body generateRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, err)
		return
	}

	result, err := h.generationService.Generate(c.Request.Context(), services.GenerateRequest{
		Category:      body.Category,
		Language:      body.Language,
		Amount:        body.Amount,
		Subcategories: body.Subcategories,
		Mode:          services.WriteModePerItem,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}

	RespondCreated(c, gin.H{
		"message": "Prompts generated",
		"prompts": result.Prompts,
	})
}
