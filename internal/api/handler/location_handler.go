package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"sports-scheduler/internal/dto"
	"sports-scheduler/internal/service"
	"sports-scheduler/pkg/response"
)

// LocationHandler venues games are played at.
type LocationHandler struct {
	locationSvc service.LocationService
}

// NewLocationHandler creates a LocationHandler.
func NewLocationHandler(locationSvc service.LocationService) *LocationHandler {
	return &LocationHandler{locationSvc: locationSvc}
}

// ListLocations GET /api/v1/locations
func (h *LocationHandler) ListLocations(c *gin.Context) {
	var req dto.LocationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	locations, err := h.locationSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleLocationError(c, err)
		return
	}
	response.OK(c, gin.H{"list": locations})
}

// GetLocation GET /api/v1/locations/:id
func (h *LocationHandler) GetLocation(c *gin.Context) {
	locationID, err := uuidParam(c, "id", service.ErrLocationNotFound)
	if err != nil {
		h.handleLocationError(c, err)
		return
	}
	loc, err := h.locationSvc.Get(c.Request.Context(), locationID)
	if err != nil {
		h.handleLocationError(c, err)
		return
	}
	response.OK(c, loc)
}

// CreateLocation POST /api/v1/locations
func (h *LocationHandler) CreateLocation(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	loc, err := h.locationSvc.Create(c.Request.Context(), id, &req)
	if err != nil {
		h.handleLocationError(c, err)
		return
	}
	response.Created(c, loc)
}

// UpdateLocation PUT /api/v1/locations/:id
func (h *LocationHandler) UpdateLocation(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	locationID, err := uuidParam(c, "id", service.ErrLocationNotFound)
	if err != nil {
		h.handleLocationError(c, err)
		return
	}
	loc, err := h.locationSvc.Update(c.Request.Context(), id, locationID, &req)
	if err != nil {
		h.handleLocationError(c, err)
		return
	}
	response.OK(c, loc)
}

// DeleteLocation deactivates the venue.
// DELETE /api/v1/locations/:id
func (h *LocationHandler) DeleteLocation(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	locationID, err := uuidParam(c, "id", service.ErrLocationNotFound)
	if err != nil {
		h.handleLocationError(c, err)
		return
	}
	if err := h.locationSvc.Delete(c.Request.Context(), id, locationID); err != nil {
		h.handleLocationError(c, err)
		return
	}
	response.OKMessage(c, "location deactivated", nil)
}

func (h *LocationHandler) handleLocationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLocationNotFound):
		response.NotFound(c, 19001, err.Error())
	case errors.Is(err, service.ErrLocationExists):
		response.Conflict(c, 19002, err.Error())
	default:
		handleKind(c, err)
	}
}
