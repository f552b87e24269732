package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"sports-scheduler/internal/dto"
	"sports-scheduler/internal/service"
	"sports-scheduler/pkg/response"
)

// AssistantHandler the in-app help assistant.
type AssistantHandler struct {
	assistantSvc service.AssistantService
}

// NewAssistantHandler creates an AssistantHandler.
func NewAssistantHandler(assistantSvc service.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistantSvc: assistantSvc}
}

// Chat POST /api/v1/assistant/chat
func (h *AssistantHandler) Chat(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	reply, err := h.assistantSvc.Chat(c.Request.Context(), id, &req)
	if err != nil {
		handleKind(c, err)
		return
	}
	response.OK(c, reply)
}

// Help GET /api/v1/assistant/help/:topic
func (h *AssistantHandler) Help(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	reply, err := h.assistantSvc.Help(c.Request.Context(), id, c.Param("topic"))
	if err != nil {
		if errors.Is(err, service.ErrHelpTopicNotFound) {
			response.NotFound(c, 18201, err.Error())
			return
		}
		handleKind(c, err)
		return
	}
	response.OK(c, reply)
}
