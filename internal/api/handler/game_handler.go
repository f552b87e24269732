package handler

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"sports-scheduler/internal/dto"
	"sports-scheduler/internal/model"
	"sports-scheduler/internal/service"
	pkgerrors "sports-scheduler/pkg/errors"
	"sports-scheduler/pkg/response"
)

const (
	csvContentType  = "text/csv; charset=utf-8"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// GameHandler games, link groups and the games CSV/Excel transfers.
type GameHandler struct {
	gameSvc     service.GameService
	transferSvc service.TransferService
	exportSvc   service.ExportService
}

// NewGameHandler creates a GameHandler.
func NewGameHandler(gameSvc service.GameService, transferSvc service.TransferService, exportSvc service.ExportService) *GameHandler {
	return &GameHandler{gameSvc: gameSvc, transferSvc: transferSvc, exportSvc: exportSvc}
}

// ────────────────────── CRUD ──────────────────────

// ListGames GET /api/v1/games
func (h *GameHandler) ListGames(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.GameListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	games, total, err := h.gameSvc.List(c.Request.Context(), id, &req)
	if err != nil {
		h.handleGameError(c, err)
		return
	}
	response.OKPage(c, games, total, req.GetPage(), req.GetPageSize())
}

// GetGame GET /api/v1/games/:id
func (h *GameHandler) GetGame(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	gameID, err := uuidParam(c, "id", service.ErrGameNotFound)
	if err != nil {
		h.handleGameError(c, err)
		return
	}
	game, err := h.gameSvc.Get(c.Request.Context(), id, gameID)
	if err != nil {
		h.handleGameError(c, err)
		return
	}
	response.OK(c, game)
}

// CreateGame POST /api/v1/games
func (h *GameHandler) CreateGame(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	game, err := h.gameSvc.Create(c.Request.Context(), id, &req)
	if err != nil {
		h.handleGameError(c, err)
		return
	}
	response.Created(c, game)
}

// UpdateGame PUT /api/v1/games/:id
func (h *GameHandler) UpdateGame(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.UpdateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	gameID, err := uuidParam(c, "id", service.ErrGameNotFound)
	if err != nil {
		h.handleGameError(c, err)
		return
	}
	game, err := h.gameSvc.Update(c.Request.Context(), id, gameID, &req)
	if err != nil {
		h.handleGameError(c, err)
		return
	}
	response.OK(c, game)
}

// DeleteGame also removes the game's assignments.
// DELETE /api/v1/games/:id
func (h *GameHandler) DeleteGame(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	gameID, err := uuidParam(c, "id", service.ErrGameNotFound)
	if err != nil {
		h.handleGameError(c, err)
		return
	}
	if err := h.gameSvc.Delete(c.Request.Context(), id, gameID); err != nil {
		h.handleGameError(c, err)
		return
	}
	response.OKMessage(c, "game deleted", nil)
}

// ────────────────────── Bulk & link groups ──────────────────────

// BulkLink POST /api/v1/games/bulk-link
func (h *GameHandler) BulkLink(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.BulkLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	n, err := h.gameSvc.BulkLink(c.Request.Context(), id, &req)
	if err != nil {
		h.handleGameError(c, err)
		return
	}
	response.OK(c, dto.BulkResult{Affected: n})
}

// BulkUnlink POST /api/v1/games/bulk-unlink
func (h *GameHandler) BulkUnlink(c *gin.Context) {
	h.bulkIDs(c, h.gameSvc.BulkUnlink)
}

// BulkDelete POST /api/v1/games/bulk-delete
func (h *GameHandler) BulkDelete(c *gin.Context) {
	h.bulkIDs(c, h.gameSvc.BulkDelete)
}

func (h *GameHandler) bulkIDs(c *gin.Context, op func(context.Context, model.Identity, []string) (int64, error)) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.IDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	n, err := op(c.Request.Context(), id, req.IDs)
	if err != nil {
		h.handleGameError(c, err)
		return
	}
	response.OK(c, dto.BulkResult{Affected: n})
}

// NextLinkGroup GET /api/v1/games/next-link-group
func (h *GameHandler) NextLinkGroup(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	name, err := h.gameSvc.NextLinkGroup(c.Request.Context(), id)
	if err != nil {
		h.handleGameError(c, err)
		return
	}
	response.OK(c, dto.NextLinkGroupResponse{LinkGroup: name})
}

// ────────────────────── Transfer ──────────────────────

// Template GET /api/v1/games/template.csv
func (h *GameHandler) Template(c *gin.Context) {
	body, err := h.transferSvc.GamesTemplate()
	if err != nil {
		h.handleGameError(c, err)
		return
	}
	attachment(c, "games_template.csv", csvContentType, body)
}

// ImportGames takes a multipart "file" field.
// POST /api/v1/games/import
func (h *GameHandler) ImportGames(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, 16001, "file is required")
		return
	}
	if !strings.HasSuffix(strings.ToLower(fh.Filename), ".csv") {
		response.BadRequest(c, 16002, "file must be a .csv file")
		return
	}
	f, err := fh.Open()
	if err != nil {
		_ = c.Error(err)
		response.InternalError(c)
		return
	}
	defer f.Close()

	result, err := h.transferSvc.ImportGames(c.Request.Context(), id, f)
	if err != nil {
		h.handleGameError(c, err)
		return
	}
	response.OK(c, result)
}

// ExportCSV exports the selected games, or the whole scope when none are.
// POST /api/v1/games/export
func (h *GameHandler) ExportCSV(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.ExportGamesRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
	}

	body, err := h.transferSvc.ExportGamesCSV(c.Request.Context(), id, req.GameIDs)
	if err != nil {
		h.handleGameError(c, err)
		return
	}
	attachment(c, "games_export.csv", csvContentType, body)
}

// ExportExcel GET /api/v1/games/export.xlsx?ids=a,b
func (h *GameHandler) ExportExcel(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	ids := splitIDs(c.Query("ids"))
	for _, gid := range ids {
		if _, err := uuid.Parse(gid); err != nil {
			response.BadRequest(c, 10001, "ids must be UUIDs")
			return
		}
	}

	buf, filename, err := h.exportSvc.ExportGames(c.Request.Context(), id, ids)
	if err != nil {
		h.handleGameError(c, err)
		return
	}
	attachment(c, filename, xlsxContentType, buf.Bytes())
}

func (h *GameHandler) handleGameError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		response.NotFound(c, 14001, err.Error())
	case errors.Is(err, service.ErrOutOfScope):
		response.Forbidden(c, 14002, err.Error())
	case errors.Is(err, service.ErrLinkGroupTooSmall):
		response.BadRequest(c, 14003, err.Error())
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 14004, err.Error())
	case errors.Is(err, service.ErrTimeConflict):
		response.Conflict(c, 14005, err.Error())
	case errors.Is(err, service.ErrEmptyFile),
		errors.Is(err, service.ErrMissingColumns),
		errors.Is(err, service.ErrTooManyRows):
		response.BadRequest(c, 16003, err.Error())
	case errors.Is(err, service.ErrNothingToExport):
		response.NotFound(c, 16004, err.Error())
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		handleKind(c, err)
	}
}

// splitIDs parses a comma separated id list; blanks are dropped.
func splitIDs(raw string) []string {
	var ids []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			ids = append(ids, s)
		}
	}
	return ids
}
