package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/recuerdalab/memoryprompts-backend/internal/services"
)

type AdminHandler struct {
	adminService services.AdminService
}

func NewAdminHandler(adminService services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// ListAll handles GET /api/admin/prompts: the full prompt dump with category
// labels and events.
func (h *AdminHandler) ListAll(c *gin.Context) {
	prompts, err := h.adminService.ListAll(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{
		"success":       true,
		"total_prompts": len(prompts),
		"prompts":       prompts,
	})
}

// Summary handles GET /api/admin/prompts/summary.
func (h *AdminHandler) Summary(c *gin.Context) {
	summary, err := h.adminService.Summary(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{
		"success":            true,
		"total_prompts":      summary.TotalPrompts,
		"total_categories":   summary.TotalCategories,
		"summary":            summary.Summary,
		"category_breakdown": summary.Breakdown,
	})
}
