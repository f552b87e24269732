package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"sports-scheduler/internal/dto"
	"sports-scheduler/internal/service"
	"sports-scheduler/pkg/response"
)

// LeagueHandler leagues, their members, fee schedules and billing.
type LeagueHandler struct {
	leagueSvc  service.LeagueService
	feeSvc     service.FeeService
	billingSvc service.BillingService
}

// NewLeagueHandler creates a LeagueHandler.
func NewLeagueHandler(leagueSvc service.LeagueService, feeSvc service.FeeService, billingSvc service.BillingService) *LeagueHandler {
	return &LeagueHandler{leagueSvc: leagueSvc, feeSvc: feeSvc, billingSvc: billingSvc}
}

// ────────────────────── Leagues ──────────────────────

// ListLeagues GET /api/v1/leagues
func (h *LeagueHandler) ListLeagues(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.LeagueListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	leagues, total, err := h.leagueSvc.List(c.Request.Context(), id, &req)
	if err != nil {
		h.handleLeagueError(c, err)
		return
	}
	response.OKPage(c, leagues, total, req.GetPage(), req.GetPageSize())
}

// GetLeague GET /api/v1/leagues/:id
func (h *LeagueHandler) GetLeague(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	leagueID, err := uuidParam(c, "id", service.ErrLeagueNotFound)
	if err != nil {
		h.handleLeagueError(c, err)
		return
	}
	league, err := h.leagueSvc.Get(c.Request.Context(), id, leagueID)
	if err != nil {
		h.handleLeagueError(c, err)
		return
	}
	response.OK(c, league)
}

// CreateLeague POST /api/v1/leagues
func (h *LeagueHandler) CreateLeague(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateLeagueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	league, err := h.leagueSvc.Create(c.Request.Context(), id, &req)
	if err != nil {
		h.handleLeagueError(c, err)
		return
	}
	response.Created(c, league)
}

// UpdateLeague PUT /api/v1/leagues/:id
func (h *LeagueHandler) UpdateLeague(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.UpdateLeagueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	leagueID, err := uuidParam(c, "id", service.ErrLeagueNotFound)
	if err != nil {
		h.handleLeagueError(c, err)
		return
	}
	league, err := h.leagueSvc.Update(c.Request.Context(), id, leagueID, &req)
	if err != nil {
		h.handleLeagueError(c, err)
		return
	}
	response.OK(c, league)
}

// DeleteLeague deactivates the league.
// DELETE /api/v1/leagues/:id
func (h *LeagueHandler) DeleteLeague(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	leagueID, err := uuidParam(c, "id", service.ErrLeagueNotFound)
	if err != nil {
		h.handleLeagueError(c, err)
		return
	}
	if err := h.leagueSvc.Delete(c.Request.Context(), id, leagueID); err != nil {
		h.handleLeagueError(c, err)
		return
	}
	response.OKMessage(c, "league deactivated", nil)
}

// ListMembers GET /api/v1/leagues/:id/members
func (h *LeagueHandler) ListMembers(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	leagueID, err := uuidParam(c, "id", service.ErrLeagueNotFound)
	if err != nil {
		h.handleLeagueError(c, err)
		return
	}
	members, err := h.leagueSvc.ListMembers(c.Request.Context(), id, leagueID)
	if err != nil {
		h.handleLeagueError(c, err)
		return
	}
	response.OK(c, gin.H{"list": members})
}

// AddMember POST /api/v1/leagues/:id/members
func (h *LeagueHandler) AddMember(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.AddLeagueMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	leagueID, err := uuidParam(c, "id", service.ErrLeagueNotFound)
	if err != nil {
		h.handleLeagueError(c, err)
		return
	}
	if err := h.leagueSvc.AddMember(c.Request.Context(), id, leagueID, &req); err != nil {
		h.handleLeagueError(c, err)
		return
	}
	response.OKMessage(c, "member added", nil)
}

// FilterOptions GET /api/v1/leagues/filter-options
func (h *LeagueHandler) FilterOptions(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	options, err := h.leagueSvc.FilterOptions(c.Request.Context(), id)
	if err != nil {
		h.handleLeagueError(c, err)
		return
	}
	response.OK(c, options)
}

// AdvancedSearch POST /api/v1/leagues/advanced-search
func (h *LeagueHandler) AdvancedSearch(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.LeagueSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	leagues, total, err := h.leagueSvc.AdvancedSearch(c.Request.Context(), id, &req)
	if err != nil {
		h.handleLeagueError(c, err)
		return
	}
	response.OKPage(c, leagues, total, req.GetPage(), req.GetPageSize())
}

// ────────────────────── Fees ──────────────────────

// ListFees GET /api/v1/leagues/:id/fees
func (h *LeagueHandler) ListFees(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	leagueID, err := uuidParam(c, "id", service.ErrLeagueNotFound)
	if err != nil {
		h.handleLeagueError(c, err)
		return
	}
	fees, err := h.feeSvc.List(c.Request.Context(), id, leagueID)
	if err != nil {
		h.handleLeagueError(c, err)
		return
	}
	response.OK(c, gin.H{"list": fees})
}

// CreateFee POST /api/v1/leagues/:id/fees
func (h *LeagueHandler) CreateFee(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.LeagueFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	leagueID, err := uuidParam(c, "id", service.ErrLeagueNotFound)
	if err != nil {
		h.handleLeagueError(c, err)
		return
	}
	fee, err := h.feeSvc.Create(c.Request.Context(), id, leagueID, &req)
	if err != nil {
		h.handleLeagueError(c, err)
		return
	}
	response.Created(c, fee)
}

// UpdateFee PUT /api/v1/leagues/:id/fees/:fee_id
func (h *LeagueHandler) UpdateFee(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.LeagueFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	leagueID, err := uuidParam(c, "id", service.ErrLeagueNotFound)
	if err != nil {
		h.handleLeagueError(c, err)
		return
	}
	feeID, err := uuidParam(c, "fee_id", service.ErrFeeNotFound)
	if err != nil {
		h.handleLeagueError(c, err)
		return
	}
	fee, err := h.feeSvc.Update(c.Request.Context(), id, leagueID, feeID, &req)
	if err != nil {
		h.handleLeagueError(c, err)
		return
	}
	response.OK(c, fee)
}

// DeleteFee DELETE /api/v1/leagues/:id/fees/:fee_id
func (h *LeagueHandler) DeleteFee(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	leagueID, err := uuidParam(c, "id", service.ErrLeagueNotFound)
	if err != nil {
		h.handleLeagueError(c, err)
		return
	}
	feeID, err := uuidParam(c, "fee_id", service.ErrFeeNotFound)
	if err != nil {
		h.handleLeagueError(c, err)
		return
	}
	if err := h.feeSvc.Delete(c.Request.Context(), id, leagueID, feeID); err != nil {
		h.handleLeagueError(c, err)
		return
	}
	response.OKMessage(c, "fee removed", nil)
}

// ────────────────────── Billing ──────────────────────

// ListBilling GET /api/v1/leagues/:id/billing
func (h *LeagueHandler) ListBilling(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	leagueID, err := uuidParam(c, "id", service.ErrLeagueNotFound)
	if err != nil {
		h.handleLeagueError(c, err)
		return
	}
	list, err := h.billingSvc.ListBilling(c.Request.Context(), id, leagueID)
	if err != nil {
		h.handleLeagueError(c, err)
		return
	}
	response.OK(c, gin.H{"list": list})
}

// CreateBilling POST /api/v1/leagues/:id/billing
func (h *LeagueHandler) CreateBilling(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.LeagueBillingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	leagueID, err := uuidParam(c, "id", service.ErrLeagueNotFound)
	if err != nil {
		h.handleLeagueError(c, err)
		return
	}
	b, err := h.billingSvc.CreateBilling(c.Request.Context(), id, leagueID, &req)
	if err != nil {
		h.handleLeagueError(c, err)
		return
	}
	response.Created(c, b)
}

// UpdateBilling PUT /api/v1/leagues/:id/billing/:billing_id
func (h *LeagueHandler) UpdateBilling(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.LeagueBillingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	leagueID, err := uuidParam(c, "id", service.ErrLeagueNotFound)
	if err != nil {
		h.handleLeagueError(c, err)
		return
	}
	billingID, err := uuidParam(c, "billing_id", service.ErrBillingNotFound)
	if err != nil {
		h.handleLeagueError(c, err)
		return
	}
	b, err := h.billingSvc.UpdateBilling(c.Request.Context(), id, leagueID, billingID, &req)
	if err != nil {
		h.handleLeagueError(c, err)
		return
	}
	response.OK(c, b)
}

// DeleteBilling DELETE /api/v1/leagues/:id/billing/:billing_id
func (h *LeagueHandler) DeleteBilling(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	leagueID, err := uuidParam(c, "id", service.ErrLeagueNotFound)
	if err != nil {
		h.handleLeagueError(c, err)
		return
	}
	billingID, err := uuidParam(c, "billing_id", service.ErrBillingNotFound)
	if err != nil {
		h.handleLeagueError(c, err)
		return
	}
	if err := h.billingSvc.DeleteBilling(c.Request.Context(), id, leagueID, billingID); err != nil {
		h.handleLeagueError(c, err)
		return
	}
	response.OKMessage(c, "billing structure removed", nil)
}

func (h *LeagueHandler) handleLeagueError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLeagueNotFound):
		response.NotFound(c, 13001, err.Error())
	case errors.Is(err, service.ErrLeagueExists):
		response.Conflict(c, 13002, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 13003, err.Error())
	case errors.Is(err, service.ErrRoleNotAllowed):
		response.BadRequest(c, 13004, err.Error())
	case errors.Is(err, service.ErrInvalidDateRange):
		response.BadRequest(c, 13013, err.Error())
	case errors.Is(err, service.ErrFeeNotFound):
		response.NotFound(c, 17001, err.Error())
	case errors.Is(err, service.ErrFeeLevelExists):
		response.Conflict(c, 17002, err.Error())
	case errors.Is(err, service.ErrBillingNotFound):
		response.NotFound(c, 17011, err.Error())
	case errors.Is(err, service.ErrBillingLevelExists):
		response.Conflict(c, 17012, err.Error())
	case errors.Is(err, service.ErrBillToNotFound):
		response.NotFound(c, 17013, err.Error())
	case errors.Is(err, service.ErrBillAmountTooSmall),
		errors.Is(err, service.ErrBillAmountTooLarge):
		response.BadRequest(c, 17014, err.Error())
	default:
		handleKind(c, err)
	}
}
