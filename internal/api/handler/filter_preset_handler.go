package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"sports-scheduler/internal/dto"
	"sports-scheduler/internal/service"
	"sports-scheduler/pkg/response"
)

// FilterPresetHandler saved list filters of a user.
type FilterPresetHandler struct {
	presetSvc service.FilterPresetService
}

// NewFilterPresetHandler creates a FilterPresetHandler.
func NewFilterPresetHandler(presetSvc service.FilterPresetService) *FilterPresetHandler {
	return &FilterPresetHandler{presetSvc: presetSvc}
}

// ListPresets GET /api/v1/users/:id/filter-presets
func (h *FilterPresetHandler) ListPresets(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	userID, err := uuidParam(c, "id", service.ErrUserNotFound)
	if err != nil {
		h.handlePresetError(c, err)
		return
	}
	presets, err := h.presetSvc.List(c.Request.Context(), id, userID)
	if err != nil {
		h.handlePresetError(c, err)
		return
	}
	response.OK(c, gin.H{"list": presets})
}

// CreatePreset POST /api/v1/users/:id/filter-presets
func (h *FilterPresetHandler) CreatePreset(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateFilterPresetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	userID, err := uuidParam(c, "id", service.ErrUserNotFound)
	if err != nil {
		h.handlePresetError(c, err)
		return
	}
	preset, err := h.presetSvc.Create(c.Request.Context(), id, userID, &req)
	if err != nil {
		h.handlePresetError(c, err)
		return
	}
	response.Created(c, preset)
}

// DeletePreset DELETE /api/v1/users/:id/filter-presets/:preset_id
func (h *FilterPresetHandler) DeletePreset(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	userID, err := uuidParam(c, "id", service.ErrUserNotFound)
	if err != nil {
		h.handlePresetError(c, err)
		return
	}
	presetID, err := uuidParam(c, "preset_id", service.ErrPresetNotFound)
	if err != nil {
		h.handlePresetError(c, err)
		return
	}
	if err := h.presetSvc.Delete(c.Request.Context(), id, userID, presetID); err != nil {
		h.handlePresetError(c, err)
		return
	}
	response.OKMessage(c, "filter preset deleted", nil)
}

func (h *FilterPresetHandler) handlePresetError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 12001, err.Error())
	case errors.Is(err, service.ErrPresetNotFound):
		response.NotFound(c, 12011, err.Error())
	default:
		handleKind(c, err)
	}
}
