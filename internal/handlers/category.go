package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/recuerdalab/memoryprompts-backend/internal/services"
)

type CategoryHandler struct {
	categoryService services.CategoryService
}

func NewCategoryHandler(categoryService services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

type categoryChild struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type categoryNode struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Children []categoryChild `json:"children"`
}

// List handles GET /api/categories: root categories with their immediate
// children.
func (h *CategoryHandler) List(c *gin.Context) {
	roots, err := h.categoryService.ListRoots(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}

	out := make([]categoryNode, 0, len(roots))
	for _, root := range roots {
		node := categoryNode{ID: root.ID, Name: root.Name, Children: []categoryChild{}}
		for _, child := range root.Children {
			node.Children = append(node.Children, categoryChild{ID: child.ID, Name: child.Name})
		}
		out = append(out, node)
	}
	RespondOK(c, out)
}
