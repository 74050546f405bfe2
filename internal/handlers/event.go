package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/recuerdalab/memoryprompts-backend/internal/apierr"
	"github.com/recuerdalab/memoryprompts-backend/internal/services"
)

type EventHandler struct {
	eventService services.EventService
}

func NewEventHandler(eventService services.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

type recordEventBody struct {
	Type     string                 `json:"type"`
	Metadata map[string]interface{} `json:"metadata"`
}

// Record handles POST /api/prompts/:id/event.
func (h *EventHandler) Record(c *gin.Context) {
	promptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, fmt.Errorf("invalid prompt id"))
		return
	}

	var body recordEventBody
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, err)
		return
	}

	event, err := h.eventService.Record(c.Request.Context(), promptID, body.Type, body.Metadata)
	if err != nil {
		RespondServiceError(c, err)
		return
	}

	RespondCreated(c, gin.H{
		"message": "Event recorded",
		"event":   event,
	})
}
