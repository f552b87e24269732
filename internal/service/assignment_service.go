package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sports-scheduler/internal/dto"
	"sports-scheduler/internal/model"
	"sports-scheduler/internal/repository"
	pkgerrors "sports-scheduler/pkg/errors"
	"sports-scheduler/pkg/money"
	"sports-scheduler/pkg/validate"
)

// AssignmentService manages officials on games.
type AssignmentService interface {
	Create(ctx context.Context, id model.Identity, req *dto.CreateAssignmentRequest) (*model.Assignment, error)
	Update(ctx context.Context, id model.Identity, assignmentID string, req *dto.UpdateAssignmentRequest) (*model.Assignment, error)
	Delete(ctx context.Context, id model.Identity, assignmentID string) error
	// BulkCreate processes every item on its own; failures are reported per
	// item and never abort the rest.
	BulkCreate(ctx context.Context, id model.Identity, items []dto.CreateAssignmentRequest) (*dto.BulkAssignmentResponse, error)
	Get(ctx context.Context, id model.Identity, assignmentID string) (*model.Assignment, error)
	List(ctx context.Context, id model.Identity, req *dto.AssignmentListRequest) ([]model.Assignment, int64, error)
	// Respond lets the assigned official accept or decline.
	Respond(ctx context.Context, id model.Identity, assignmentID string, req *dto.RespondRequest) (*model.Assignment, error)
}

type assignmentService struct {
	repo     *repository.Repository
	access   AccessService
	fees     FeeService
	checker  *AssignmentChecker
	validate *validator.Validate
	logger   *zap.Logger
	now      func() time.Time
}

// NewAssignmentService creates an AssignmentService.
func NewAssignmentService(repo *repository.Repository, access AccessService, fees FeeService, logger *zap.Logger) AssignmentService {
	return &assignmentService{
		repo:     repo,
		access:   access,
		fees:     fees,
		checker:  NewAssignmentChecker(),
		validate: validate.NewForTag("binding"),
		logger:   logger,
		now:      time.Now,
	}
}

// ────────────────────── Create ──────────────────────

func (s *assignmentService) Create(ctx context.Context, id model.Identity, req *dto.CreateAssignmentRequest) (*model.Assignment, error) {
	if !id.Role.Can(model.CapManageAssignments) {
		return nil, ErrForbidden
	}
	scope := s.access.ResolveScope(ctx, id)

	var created *model.Assignment
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		a, err := s.createInTx(ctx, tx, scope, id, req)
		created = a
		return err
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("create assignment failed",
				zap.String("game_id", req.GameID),
				zap.String("official_id", req.OfficialID),
				zap.Error(err),
			)
		}
		return nil, err
	}
	return created, nil
}

func (s *assignmentService) createInTx(ctx context.Context, tx *repository.Repository, scope model.AccessScope, id model.Identity, req *dto.CreateAssignmentRequest) (*model.Assignment, error) {
	res, err := s.checker.Check(ctx, tx, scope, req.GameID, req.OfficialID, "")
	if err != nil {
		return nil, err
	}

	fee, source, err := s.assignmentFee(ctx, res.Game, req.Fee)
	if err != nil {
		return nil, err
	}

	position := strings.TrimSpace(req.Position)
	if position == "" {
		position = model.DefaultPosition
	}
	status := req.Status
	if status == "" {
		status = model.AssignmentPending
	}

	a := &model.Assignment{
		GameID:     req.GameID,
		OfficialID: req.OfficialID,
		Position:   position,
		Status:     status,
		Fee:        fee,
		FeeSource:  source,
		AssignedBy: id.UserID,
		AssignedAt: s.now(),
		BaseModel:  model.BaseModel{CreatedBy: model.StringPtr(id.UserID)},
	}
	if err := tx.Assignment.Create(ctx, a); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateAssignment
		}
		return nil, err
	}
	a.Game = res.Game
	a.Official = res.Official

	details := fmt.Sprintf("Assigned %s to %s on %s %s as %s",
		displayName(res.Official), res.Game.Matchup(), res.Game.GameDate, res.Game.GameTime, position)
	if err := recordActivity(ctx, tx, id.UserID, ActionAssign, "assignment", a.AssignmentID, details,
		map[string]interface{}{
			"game_id":     a.GameID,
			"official_id": a.OfficialID,
			"position":    position,
			"fee_source":  string(source),
		}); err != nil {
		return nil, err
	}
	return a, nil
}

// assignmentFee: request override, else the game's stored fee, else the
// league schedule.
func (s *assignmentService) assignmentFee(ctx context.Context, game *model.Game, override *money.Cents) (*money.Cents, model.FeeSource, error) {
	if override == nil && game.AssignedFee != nil {
		source := game.FeeSource
		if source == "" || source == model.FeeSourceNone {
			source = model.FeeSourceAutomatic
		}
		return money.Ptr(*game.AssignedFee), source, nil
	}
	return s.fees.DecideFee(ctx, game.League, game.Level, override)
}

// ────────────────────── Update ──────────────────────

func (s *assignmentService) Update(ctx context.Context, id model.Identity, assignmentID string, req *dto.UpdateAssignmentRequest) (*model.Assignment, error) {
	if !id.Role.Can(model.CapManageAssignments) {
		return nil, ErrForbidden
	}
	scope := s.access.ResolveScope(ctx, id)

	var updated *model.Assignment
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		a, err := loadAssignment(ctx, tx, assignmentID)
		if err != nil {
			return err
		}
		if !scope.AllowsAssignment(a) {
			return ErrOutOfScope
		}

		var changes []string
		if req.OfficialID != nil && *req.OfficialID != a.OfficialID {
			res, err := s.checker.Check(ctx, tx, scope, a.GameID, *req.OfficialID, a.AssignmentID)
			if err != nil {
				return err
			}
			changes = append(changes, fmt.Sprintf("official %s -> %s", displayName(a.Official), displayName(res.Official)))
			a.OfficialID = *req.OfficialID
			a.Official = res.Official
			// a new official has not answered yet
			a.RespondedAt = nil
			if req.Status == nil && (a.Status == model.AssignmentAccepted || a.Status == model.AssignmentDeclined) {
				a.Status = model.AssignmentPending
			}
		}
		if req.Position != nil {
			position := strings.TrimSpace(*req.Position)
			if position == "" {
				position = model.DefaultPosition
			}
			if position != a.Position {
				changes = append(changes, fmt.Sprintf("position %s -> %s", a.Position, position))
				a.Position = position
			}
		}
		if req.Status != nil && *req.Status != a.Status {
			changes = append(changes, fmt.Sprintf("status %s -> %s", a.Status, *req.Status))
			a.Status = *req.Status
			if a.Status == model.AssignmentAccepted || a.Status == model.AssignmentDeclined {
				now := s.now()
				a.RespondedAt = &now
			} else {
				a.RespondedAt = nil
			}
		}
		if req.Fee != nil {
			changes = append(changes, "fee "+formatFee(a.Fee)+" -> "+req.Fee.String())
			a.Fee = money.Ptr(*req.Fee)
			a.FeeSource = model.FeeSourceOverride
		}

		a.UpdatedBy = model.StringPtr(id.UserID)
		if err := tx.Assignment.Update(ctx, a); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateAssignment
			}
			return err
		}
		updated = a

		details := "Updated assignment"
		if a.Game != nil {
			details += " for " + a.Game.Matchup()
		}
		if len(changes) > 0 {
			details += ": " + strings.Join(changes, ", ")
		}
		return recordActivity(ctx, tx, id.UserID, ActionUpdate, "assignment", a.AssignmentID, details,
			map[string]interface{}{"changes": changes})
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("update assignment failed", zap.String("assignment_id", assignmentID), zap.Error(err))
		}
		return nil, err
	}
	return updated, nil
}

// ────────────────────── Delete ──────────────────────

func (s *assignmentService) Delete(ctx context.Context, id model.Identity, assignmentID string) error {
	if !id.Role.Can(model.CapManageAssignments) {
		return ErrForbidden
	}
	scope := s.access.ResolveScope(ctx, id)

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		a, err := loadAssignment(ctx, tx, assignmentID)
		if err != nil {
			return err
		}
		if !scope.AllowsAssignment(a) {
			return ErrOutOfScope
		}

		// the row is gone after the delete, so describe it first
		details := "Removed " + displayName(a.Official) + " from "
		if a.Game != nil {
			details += a.Game.Matchup() + " on " + a.Game.GameDate + " " + a.Game.GameTime
		} else {
			details += "game " + a.GameID
		}
		details += " (" + a.Position + ")"

		n, err := tx.Assignment.Delete(ctx, a.AssignmentID)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrAssignmentNotFound
		}
		return recordActivity(ctx, tx, id.UserID, ActionUnassign, "assignment", a.AssignmentID, details,
			map[string]interface{}{"game_id": a.GameID, "official_id": a.OfficialID})
	})
	if err != nil && !isBusinessError(err) {
		s.logger.Error("delete assignment failed", zap.String("assignment_id", assignmentID), zap.Error(err))
	}
	return err
}

// ────────────────────── BulkCreate ──────────────────────

func (s *assignmentService) BulkCreate(ctx context.Context, id model.Identity, items []dto.CreateAssignmentRequest) (*dto.BulkAssignmentResponse, error) {
	if !id.Role.Can(model.CapManageAssignments) {
		return nil, ErrForbidden
	}
	scope := s.access.ResolveScope(ctx, id)

	resp := &dto.BulkAssignmentResponse{
		Created: make([]string, 0, len(items)),
		Errors:  make([]dto.BulkItemError, 0),
	}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		for i := range items {
			item := &items[i]
			fail := func(err error) {
				if !isBusinessError(err) {
					s.logger.Error("bulk assignment item failed",
						zap.Int("index", i),
						zap.String("game_id", item.GameID),
						zap.String("official_id", item.OfficialID),
						zap.Error(err),
					)
				}
				resp.Errors = append(resp.Errors, dto.BulkItemError{
					Index:      i,
					GameID:     item.GameID,
					OfficialID: item.OfficialID,
					Message:    itemMessage(err),
				})
			}

			if err := s.validate.Struct(item); err != nil {
				fail(pkgerrors.Validationf("%s", validate.Message(err)))
				continue
			}

			// each item gets its own savepoint so a failure only undoes itself
			var created *model.Assignment
			err := tx.Transaction(ctx, func(sp *repository.Repository) error {
				a, err := s.createInTx(ctx, sp, scope, id, item)
				created = a
				return err
			})
			if err != nil {
				fail(err)
				continue
			}
			resp.Created = append(resp.Created, created.AssignmentID)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("bulk assignment create failed", zap.Error(err))
		return nil, err
	}

	resp.CreatedCount = len(resp.Created)
	return resp, nil
}

func itemMessage(err error) string {
	return pkgerrors.Message(err)
}

// ────────────────────── Get / List ──────────────────────

func (s *assignmentService) Get(ctx context.Context, id model.Identity, assignmentID string) (*model.Assignment, error) {
	if !id.Role.Can(model.CapViewAssignments) {
		return nil, ErrForbidden
	}
	a, err := loadAssignment(ctx, s.repo, assignmentID)
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("get assignment failed", zap.String("assignment_id", assignmentID), zap.Error(err))
		}
		return nil, err
	}
	if !s.access.ResolveScope(ctx, id).AllowsAssignment(a) {
		return nil, ErrAssignmentNotFound
	}
	return a, nil
}

func (s *assignmentService) List(ctx context.Context, id model.Identity, req *dto.AssignmentListRequest) ([]model.Assignment, int64, error) {
	if !id.Role.Can(model.CapViewAssignments) {
		return nil, 0, ErrForbidden
	}
	scope := s.access.ResolveScope(ctx, id)

	filter := repository.AssignmentFilter{
		GameID:     req.GameID,
		OfficialID: req.OfficialID,
		Status:     req.Status,
		DateFrom:   req.DateFrom,
		DateTo:     req.DateTo,
	}
	rows, total, err := s.repo.Assignment.List(ctx, scope, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list assignments failed", zap.Error(err))
		return nil, 0, err
	}
	return rows, total, nil
}

// ────────────────────── Respond ──────────────────────

func (s *assignmentService) Respond(ctx context.Context, id model.Identity, assignmentID string, req *dto.RespondRequest) (*model.Assignment, error) {
	if !id.Role.Can(model.CapRespondAssignments) {
		return nil, ErrForbidden
	}

	var updated *model.Assignment
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		a, err := loadAssignment(ctx, tx, assignmentID)
		if err != nil {
			return err
		}
		if a.OfficialID != id.UserID {
			return ErrNotAssignedOfficial
		}
		if a.Status != model.AssignmentPending && a.Status != model.AssignmentAssigned {
			return ErrInvalidTransition
		}

		now := s.now()
		a.Status = req.Status
		a.RespondedAt = &now
		a.UpdatedBy = model.StringPtr(id.UserID)
		if err := tx.Assignment.Update(ctx, a); err != nil {
			return err
		}
		updated = a

		details := displayName(a.Official) + " " + req.Status + " assignment"
		if a.Game != nil {
			details += " for " + a.Game.Matchup() + " on " + a.Game.GameDate
		}
		return recordActivity(ctx, tx, id.UserID, ActionRespond, "assignment", a.AssignmentID, details,
			map[string]interface{}{"status": req.Status})
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("respond to assignment failed", zap.String("assignment_id", assignmentID), zap.Error(err))
		}
		return nil, err
	}
	return updated, nil
}

// ── helpers ──

func loadAssignment(ctx context.Context, repo *repository.Repository, assignmentID string) (*model.Assignment, error) {
	a, err := repo.Assignment.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}
	return a, nil
}

func displayName(u *model.User) string {
	if u == nil {
		return "official"
	}
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

func formatFee(c *money.Cents) string {
	if c == nil {
		return "none"
	}
	return c.String()
}
