package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"sports-scheduler/internal/dto"
	"sports-scheduler/internal/service"
	"sports-scheduler/pkg/response"
)

// BillToHandler the entities league fees are billed to.
type BillToHandler struct {
	billingSvc service.BillingService
}

// NewBillToHandler creates a BillToHandler.
func NewBillToHandler(billingSvc service.BillingService) *BillToHandler {
	return &BillToHandler{billingSvc: billingSvc}
}

// ListBillTo GET /api/v1/bill-to-entities?include_inactive=true
func (h *BillToHandler) ListBillTo(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	list, err := h.billingSvc.ListBillTo(c.Request.Context(), id, c.Query("include_inactive") == "true")
	if err != nil {
		h.handleBillToError(c, err)
		return
	}
	response.OK(c, gin.H{"list": list})
}

// GetBillTo GET /api/v1/bill-to-entities/:id
func (h *BillToHandler) GetBillTo(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	billToID, err := uuidParam(c, "id", service.ErrBillToNotFound)
	if err != nil {
		h.handleBillToError(c, err)
		return
	}
	e, err := h.billingSvc.GetBillTo(c.Request.Context(), id, billToID)
	if err != nil {
		h.handleBillToError(c, err)
		return
	}
	response.OK(c, e)
}

// CreateBillTo POST /api/v1/bill-to-entities
func (h *BillToHandler) CreateBillTo(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.BillToRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	e, err := h.billingSvc.CreateBillTo(c.Request.Context(), id, &req)
	if err != nil {
		h.handleBillToError(c, err)
		return
	}
	response.Created(c, e)
}

// UpdateBillTo PUT /api/v1/bill-to-entities/:id
func (h *BillToHandler) UpdateBillTo(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.BillToRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	billToID, err := uuidParam(c, "id", service.ErrBillToNotFound)
	if err != nil {
		h.handleBillToError(c, err)
		return
	}
	e, err := h.billingSvc.UpdateBillTo(c.Request.Context(), id, billToID, &req)
	if err != nil {
		h.handleBillToError(c, err)
		return
	}
	response.OK(c, e)
}

// DeleteBillTo deactivates the entity.
// DELETE /api/v1/bill-to-entities/:id
func (h *BillToHandler) DeleteBillTo(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	billToID, err := uuidParam(c, "id", service.ErrBillToNotFound)
	if err != nil {
		h.handleBillToError(c, err)
		return
	}
	if err := h.billingSvc.DeleteBillTo(c.Request.Context(), id, billToID); err != nil {
		h.handleBillToError(c, err)
		return
	}
	response.OKMessage(c, "bill-to entity deactivated", nil)
}

func (h *BillToHandler) handleBillToError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBillToNotFound):
		response.NotFound(c, 17013, err.Error())
	case errors.Is(err, service.ErrInvalidBillToEmail):
		response.BadRequest(c, 17015, err.Error())
	default:
		handleKind(c, err)
	}
}
