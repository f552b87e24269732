package handler

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"sports-scheduler/internal/dto"
	"sports-scheduler/internal/service"
	"sports-scheduler/pkg/response"
)

// LevelHandler league levels and the predetermined level catalog.
type LevelHandler struct {
	levelSvc service.LevelService
}

// NewLevelHandler creates a LevelHandler.
func NewLevelHandler(levelSvc service.LevelService) *LevelHandler {
	return &LevelHandler{levelSvc: levelSvc}
}

// ListLevels GET /api/v1/leagues/:id/levels
func (h *LevelHandler) ListLevels(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	leagueID, err := uuidParam(c, "id", service.ErrLeagueNotFound)
	if err != nil {
		h.handleLevelError(c, err)
		return
	}
	levels, err := h.levelSvc.List(c.Request.Context(), id, leagueID)
	if err != nil {
		h.handleLevelError(c, err)
		return
	}
	response.OK(c, gin.H{"list": levels})
}

// AddLevel POST /api/v1/leagues/:id/levels
func (h *LevelHandler) AddLevel(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateLeagueLevelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	leagueID, err := uuidParam(c, "id", service.ErrLeagueNotFound)
	if err != nil {
		h.handleLevelError(c, err)
		return
	}
	level, err := h.levelSvc.Add(c.Request.Context(), id, leagueID, &req)
	if err != nil {
		h.handleLevelError(c, err)
		return
	}
	response.Created(c, level)
}

// RemoveLevel DELETE /api/v1/leagues/:id/levels/:level_id
func (h *LevelHandler) RemoveLevel(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	leagueID, err := uuidParam(c, "id", service.ErrLeagueNotFound)
	if err != nil {
		h.handleLevelError(c, err)
		return
	}
	levelID, err := uuidParam(c, "level_id", service.ErrLevelNotFound)
	if err != nil {
		h.handleLevelError(c, err)
		return
	}
	if err := h.levelSvc.Remove(c.Request.Context(), id, leagueID, levelID); err != nil {
		h.handleLevelError(c, err)
		return
	}
	response.OKMessage(c, "level removed", nil)
}

// ────────────────────── Catalog ──────────────────────

// Catalog GET /api/v1/predetermined-levels
func (h *LevelHandler) Catalog(c *gin.Context) {
	var q dto.CatalogQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	levels, err := h.levelSvc.Catalog(c.Request.Context(), &q)
	if err != nil {
		h.handleLevelError(c, err)
		return
	}
	response.OK(c, gin.H{"list": levels})
}

// CatalogBySport GET /api/v1/predetermined-levels/sport/:sport
func (h *LevelHandler) CatalogBySport(c *gin.Context) {
	sport := strings.TrimSpace(c.Param("sport"))
	if sport == "" {
		response.BadRequest(c, 10001, "sport is required")
		return
	}
	catalog, err := h.levelSvc.CatalogBySport(c.Request.Context(), sport)
	if err != nil {
		h.handleLevelError(c, err)
		return
	}
	response.OK(c, catalog)
}

// Sports GET /api/v1/sports-list
func (h *LevelHandler) Sports(c *gin.Context) {
	sports, err := h.levelSvc.Sports(c.Request.Context())
	if err != nil {
		h.handleLevelError(c, err)
		return
	}
	response.OK(c, gin.H{"list": sports})
}

// Categories GET /api/v1/categories-list?sport=
func (h *LevelHandler) Categories(c *gin.Context) {
	categories, err := h.levelSvc.Categories(c.Request.Context(), c.Query("sport"))
	if err != nil {
		h.handleLevelError(c, err)
		return
	}
	response.OK(c, gin.H{"list": categories})
}

func (h *LevelHandler) handleLevelError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLeagueNotFound):
		response.NotFound(c, 13001, err.Error())
	case errors.Is(err, service.ErrLevelNotFound):
		response.NotFound(c, 13011, err.Error())
	case errors.Is(err, service.ErrLevelExists):
		response.Conflict(c, 13012, err.Error())
	default:
		handleKind(c, err)
	}
}
