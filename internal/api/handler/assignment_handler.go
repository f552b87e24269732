package handler

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"sports-scheduler/internal/dto"
	"sports-scheduler/internal/service"
	"sports-scheduler/pkg/response"
)

// AssignmentHandler officials on games.
type AssignmentHandler struct {
	assignmentSvc service.AssignmentService
	transferSvc   service.TransferService
	exportSvc     service.ExportService
}

// NewAssignmentHandler creates an AssignmentHandler.
func NewAssignmentHandler(assignmentSvc service.AssignmentService, transferSvc service.TransferService, exportSvc service.ExportService) *AssignmentHandler {
	return &AssignmentHandler{assignmentSvc: assignmentSvc, transferSvc: transferSvc, exportSvc: exportSvc}
}

// ListAssignments GET /api/v1/assignments
func (h *AssignmentHandler) ListAssignments(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.AssignmentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	list, total, err := h.assignmentSvc.List(c.Request.Context(), id, &req)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}
	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// GetAssignment GET /api/v1/assignments/:id
func (h *AssignmentHandler) GetAssignment(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	assignmentID, err := uuidParam(c, "id", service.ErrAssignmentNotFound)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}
	a, err := h.assignmentSvc.Get(c.Request.Context(), id, assignmentID)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}
	response.OK(c, a)
}

// CreateAssignment POST /api/v1/assignments
func (h *AssignmentHandler) CreateAssignment(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	a, err := h.assignmentSvc.Create(c.Request.Context(), id, &req)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}
	response.Created(c, a)
}

// BulkCreate reports per-item failures with 200; only a request that
// cannot be processed at all fails as a whole.
// POST /api/v1/assignments/bulk
func (h *AssignmentHandler) BulkCreate(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	// items are validated one by one in the service
	var req dto.BulkAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.assignmentSvc.BulkCreate(c.Request.Context(), id, req.Assignments)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}
	response.OK(c, result)
}

// UpdateAssignment PUT /api/v1/assignments/:id
func (h *AssignmentHandler) UpdateAssignment(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.UpdateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	assignmentID, err := uuidParam(c, "id", service.ErrAssignmentNotFound)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}
	a, err := h.assignmentSvc.Update(c.Request.Context(), id, assignmentID, &req)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}
	response.OK(c, a)
}

// DeleteAssignment DELETE /api/v1/assignments/:id
func (h *AssignmentHandler) DeleteAssignment(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	assignmentID, err := uuidParam(c, "id", service.ErrAssignmentNotFound)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}
	if err := h.assignmentSvc.Delete(c.Request.Context(), id, assignmentID); err != nil {
		h.handleAssignmentError(c, err)
		return
	}
	response.OKMessage(c, "assignment removed", nil)
}

// Respond POST /api/v1/assignments/:id/respond
func (h *AssignmentHandler) Respond(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	assignmentID, err := uuidParam(c, "id", service.ErrAssignmentNotFound)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}
	a, err := h.assignmentSvc.Respond(c.Request.Context(), id, assignmentID, &req)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}
	response.OK(c, a)
}

// ImportAssignments takes a multipart "file" field.
// POST /api/v1/assignments/import
func (h *AssignmentHandler) ImportAssignments(c *gin.Context) {
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

	result, err := h.transferSvc.ImportAssignments(c.Request.Context(), id, f)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}
	response.OK(c, result)
}

// ExportExcel GET /api/v1/assignments/export.xlsx
func (h *AssignmentHandler) ExportExcel(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.AssignmentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	buf, filename, err := h.exportSvc.ExportAssignments(c.Request.Context(), id, &req)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}
	attachment(c, filename, xlsxContentType, buf.Bytes())
}

func (h *AssignmentHandler) handleAssignmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAssignmentNotFound):
		response.NotFound(c, 15001, err.Error())
	case errors.Is(err, service.ErrGameNotFound):
		response.NotFound(c, 15002, err.Error())
	case errors.Is(err, service.ErrOfficialNotFound):
		response.NotFound(c, 15003, err.Error())
	case errors.Is(err, service.ErrOfficialInactive):
		response.BadRequest(c, 15004, err.Error())
	case errors.Is(err, service.ErrDuplicateAssignment):
		response.Conflict(c, 15005, err.Error())
	case errors.Is(err, service.ErrTimeConflict):
		response.Conflict(c, 15006, err.Error())
	case errors.Is(err, service.ErrOutOfScope):
		response.Forbidden(c, 15007, err.Error())
	case errors.Is(err, service.ErrNotAssignedOfficial):
		response.Forbidden(c, 15008, err.Error())
	case errors.Is(err, service.ErrInvalidTransition):
		response.Conflict(c, 15009, err.Error())
	case errors.Is(err, service.ErrEmptyFile),
		errors.Is(err, service.ErrMissingColumns),
		errors.Is(err, service.ErrTooManyRows):
		response.BadRequest(c, 16003, err.Error())
	case errors.Is(err, service.ErrNothingToExport):
		response.NotFound(c, 16004, err.Error())
	default:
		handleKind(c, err)
	}
}
