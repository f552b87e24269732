package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"sports-scheduler/internal/dto"
	"sports-scheduler/internal/model"
	"sports-scheduler/internal/repository"
	"sports-scheduler/pkg/money"
)

// FeeService resolves officiating fees and manages the per-league fee
// schedule.
type FeeService interface {
	// ResolveFee returns the active fee for (league name, level), or nil
	// when none is configured. A nil fee is not the same as a zero fee.
	ResolveFee(ctx context.Context, leagueName, level string) (*money.Cents, error)
	// DecideFee picks the fee to store: the override when present, else the
	// resolved schedule fee, else none.
	DecideFee(ctx context.Context, leagueName, level string, override *money.Cents) (*money.Cents, model.FeeSource, error)

	List(ctx context.Context, id model.Identity, leagueID string) ([]model.LeagueFee, error)
	Create(ctx context.Context, id model.Identity, leagueID string, req *dto.LeagueFeeRequest) (*model.LeagueFee, error)
	Update(ctx context.Context, id model.Identity, leagueID, feeID string, req *dto.LeagueFeeRequest) (*model.LeagueFee, error)
	Delete(ctx context.Context, id model.Identity, leagueID, feeID string) error
}

type feeService struct {
	repo   *repository.Repository
	access AccessService
	logger *zap.Logger
}

// NewFeeService creates a FeeService.
func NewFeeService(repo *repository.Repository, access AccessService, logger *zap.Logger) FeeService {
	return &feeService{repo: repo, access: access, logger: logger}
}

// ────────────────────── Resolve ──────────────────────

func (s *feeService) ResolveFee(ctx context.Context, leagueName, level string) (*money.Cents, error) {
	leagueName = strings.TrimSpace(leagueName)
	level = strings.TrimSpace(level)
	if leagueName == "" || level == "" {
		return nil, nil
	}

	fee, err := s.repo.LeagueFee.FindActive(ctx, leagueName, level)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		s.logger.Error("resolve league fee failed",
			zap.String("league", leagueName),
			zap.String("level", level),
			zap.Error(err),
		)
		return nil, err
	}
	return money.Ptr(fee.OfficialFee), nil
}

func (s *feeService) DecideFee(ctx context.Context, leagueName, level string, override *money.Cents) (*money.Cents, model.FeeSource, error) {
	if override != nil {
		return money.Ptr(*override), model.FeeSourceOverride, nil
	}
	fee, err := s.ResolveFee(ctx, leagueName, level)
	if err != nil {
		return nil, model.FeeSourceNone, err
	}
	if fee == nil {
		return nil, model.FeeSourceNone, nil
	}
	return fee, model.FeeSourceAutomatic, nil
}

// ────────────────────── Schedule CRUD ──────────────────────

func (s *feeService) loadLeague(ctx context.Context, id model.Identity, leagueID string) (*model.League, error) {
	if !id.Role.Can(model.CapManageFees) {
		return nil, ErrForbidden
	}
	league, err := s.repo.League.GetByID(ctx, leagueID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeagueNotFound
		}
		s.logger.Error("load league failed", zap.String("league_id", leagueID), zap.Error(err))
		return nil, err
	}
	if !s.access.CanAccessLeague(ctx, id, leagueID) {
		return nil, ErrOutOfScope
	}
	return league, nil
}

func (s *feeService) List(ctx context.Context, id model.Identity, leagueID string) ([]model.LeagueFee, error) {
	if _, err := s.loadLeague(ctx, id, leagueID); err != nil {
		return nil, err
	}
	fees, err := s.repo.LeagueFee.ListByLeague(ctx, leagueID)
	if err != nil {
		s.logger.Error("list league fees failed", zap.String("league_id", leagueID), zap.Error(err))
		return nil, err
	}
	return fees, nil
}

func (s *feeService) Create(ctx context.Context, id model.Identity, leagueID string, req *dto.LeagueFeeRequest) (*model.LeagueFee, error) {
	league, err := s.loadLeague(ctx, id, leagueID)
	if err != nil {
		return nil, err
	}
	level := strings.TrimSpace(req.LevelName)

	fee := &model.LeagueFee{
		LeagueID:    leagueID,
		LevelName:   level,
		OfficialFee: *req.OfficialFee,
		Notes:       strings.TrimSpace(req.Notes),
		IsActive:    true,
		BaseModel:   model.BaseModel{CreatedBy: model.StringPtr(id.UserID)},
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		exists, err := tx.LeagueFee.ExistsLevel(ctx, leagueID, level, "")
		if err != nil {
			return err
		}
		if exists {
			return ErrFeeLevelExists
		}
		if err := tx.LeagueFee.Create(ctx, fee); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrFeeLevelExists
			}
			return err
		}
		return recordActivity(ctx, tx, id.UserID, ActionCreate, "league_fee", fee.LeagueFeeID,
			"Set "+league.Name+" "+level+" official fee to "+fee.OfficialFee.String(),
			map[string]interface{}{"league_id": leagueID, "level": level, "fee": fee.OfficialFee.String()})
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("create league fee failed", zap.String("league_id", leagueID), zap.Error(err))
		}
		return nil, err
	}
	return fee, nil
}

func (s *feeService) Update(ctx context.Context, id model.Identity, leagueID, feeID string, req *dto.LeagueFeeRequest) (*model.LeagueFee, error) {
	league, err := s.loadLeague(ctx, id, leagueID)
	if err != nil {
		return nil, err
	}

	var fee *model.LeagueFee
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		existing, err := tx.LeagueFee.GetByID(ctx, leagueID, feeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrFeeNotFound
			}
			return err
		}

		level := strings.TrimSpace(req.LevelName)
		exists, err := tx.LeagueFee.ExistsLevel(ctx, leagueID, level, feeID)
		if err != nil {
			return err
		}
		if exists {
			return ErrFeeLevelExists
		}

		old := existing.OfficialFee
		existing.LevelName = level
		existing.OfficialFee = *req.OfficialFee
		existing.Notes = strings.TrimSpace(req.Notes)
		existing.UpdatedBy = model.StringPtr(id.UserID)
		if err := tx.LeagueFee.Update(ctx, existing); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrFeeLevelExists
			}
			return err
		}
		fee = existing
		return recordActivity(ctx, tx, id.UserID, ActionUpdate, "league_fee", feeID,
			"Changed "+league.Name+" "+level+" official fee from "+old.String()+" to "+existing.OfficialFee.String(),
			map[string]interface{}{"league_id": leagueID, "old_fee": old.String(), "new_fee": existing.OfficialFee.String()})
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("update league fee failed", zap.String("fee_id", feeID), zap.Error(err))
		}
		return nil, err
	}
	return fee, nil
}

func (s *feeService) Delete(ctx context.Context, id model.Identity, leagueID, feeID string) error {
	league, err := s.loadLeague(ctx, id, leagueID)
	if err != nil {
		return err
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		n, err := tx.LeagueFee.Deactivate(ctx, leagueID, feeID, id.UserID)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrFeeNotFound
		}
		return recordActivity(ctx, tx, id.UserID, ActionDelete, "league_fee", feeID,
			"Removed an official fee from "+league.Name, nil)
	})
	if err != nil && !isBusinessError(err) {
		s.logger.Error("delete league fee failed", zap.String("fee_id", feeID), zap.Error(err))
	}
	return err
}
