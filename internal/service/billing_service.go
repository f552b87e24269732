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

// BillingService manages bill-to entities and per-league billing structures.
type BillingService interface {
	ListBillTo(ctx context.Context, id model.Identity, includeInactive bool) ([]model.BillToEntity, error)
	GetBillTo(ctx context.Context, id model.Identity, billToID string) (*model.BillToEntity, error)
	CreateBillTo(ctx context.Context, id model.Identity, req *dto.BillToRequest) (*model.BillToEntity, error)
	UpdateBillTo(ctx context.Context, id model.Identity, billToID string, req *dto.BillToRequest) (*model.BillToEntity, error)
	DeleteBillTo(ctx context.Context, id model.Identity, billToID string) error

	ListBilling(ctx context.Context, id model.Identity, leagueID string) ([]model.LeagueBilling, error)
	CreateBilling(ctx context.Context, id model.Identity, leagueID string, req *dto.LeagueBillingRequest) (*model.LeagueBilling, error)
	UpdateBilling(ctx context.Context, id model.Identity, leagueID, billingID string, req *dto.LeagueBillingRequest) (*model.LeagueBilling, error)
	DeleteBilling(ctx context.Context, id model.Identity, leagueID, billingID string) error
}

type billingService struct {
	repo   *repository.Repository
	access AccessService
	logger *zap.Logger
}

// NewBillingService creates a BillingService.
func NewBillingService(repo *repository.Repository, access AccessService, logger *zap.Logger) BillingService {
	return &billingService{repo: repo, access: access, logger: logger}
}

// ────────────────────── Bill-to entities ──────────────────────

func (s *billingService) ListBillTo(ctx context.Context, id model.Identity, includeInactive bool) ([]model.BillToEntity, error) {
	if !id.Role.Can(model.CapManageBilling) {
		return nil, ErrForbidden
	}
	rows, err := s.repo.BillTo.List(ctx, includeInactive)
	if err != nil {
		s.logger.Error("list bill-to entities failed", zap.Error(err))
		return nil, err
	}
	return rows, nil
}

func (s *billingService) GetBillTo(ctx context.Context, id model.Identity, billToID string) (*model.BillToEntity, error) {
	if !id.Role.Can(model.CapManageBilling) {
		return nil, ErrForbidden
	}
	return s.loadBillTo(ctx, s.repo, billToID)
}

func (s *billingService) CreateBillTo(ctx context.Context, id model.Identity, req *dto.BillToRequest) (*model.BillToEntity, error) {
	if !id.Role.Can(model.CapManageBilling) {
		return nil, ErrForbidden
	}
	entity := &model.BillToEntity{IsActive: true, BaseModel: model.BaseModel{CreatedBy: model.StringPtr(id.UserID)}}
	if err := applyBillTo(entity, req); err != nil {
		return nil, err
	}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.BillTo.Create(ctx, entity); err != nil {
			return err
		}
		return recordActivity(ctx, tx, id.UserID, ActionCreate, "bill_to", entity.BillToID,
			"Created bill-to entity "+entity.Name, nil)
	})
	if err != nil {
		s.logger.Error("create bill-to entity failed", zap.Error(err))
		return nil, err
	}
	return entity, nil
}

func (s *billingService) UpdateBillTo(ctx context.Context, id model.Identity, billToID string, req *dto.BillToRequest) (*model.BillToEntity, error) {
	if !id.Role.Can(model.CapManageBilling) {
		return nil, ErrForbidden
	}

	var entity *model.BillToEntity
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		existing, err := s.loadBillTo(ctx, tx, billToID)
		if err != nil {
			return err
		}
		if err := applyBillTo(existing, req); err != nil {
			return err
		}
		existing.UpdatedBy = model.StringPtr(id.UserID)
		if err := tx.BillTo.Update(ctx, existing); err != nil {
			return err
		}
		entity = existing
		return recordActivity(ctx, tx, id.UserID, ActionUpdate, "bill_to", billToID,
			"Updated bill-to entity "+existing.Name, nil)
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("update bill-to entity failed", zap.String("bill_to_id", billToID), zap.Error(err))
		}
		return nil, err
	}
	return entity, nil
}

func (s *billingService) DeleteBillTo(ctx context.Context, id model.Identity, billToID string) error {
	if !id.Role.Can(model.CapManageBilling) {
		return ErrForbidden
	}
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		n, err := tx.BillTo.Deactivate(ctx, billToID, id.UserID)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrBillToNotFound
		}
		return recordActivity(ctx, tx, id.UserID, ActionDeactivate, "bill_to", billToID,
			"Deactivated a bill-to entity", nil)
	})
	if err != nil && !isBusinessError(err) {
		s.logger.Error("delete bill-to entity failed", zap.String("bill_to_id", billToID), zap.Error(err))
	}
	return err
}

func applyBillTo(e *model.BillToEntity, req *dto.BillToRequest) error {
	email := strings.TrimSpace(req.Email)
	if email != "" && !strings.Contains(email, "@") {
		return ErrInvalidBillToEmail
	}
	e.Name = strings.TrimSpace(req.Name)
	e.ContactPerson = strings.TrimSpace(req.ContactPerson)
	e.Email = email
	e.Phone = strings.TrimSpace(req.Phone)
	e.Address = strings.TrimSpace(req.Address)
	e.City = strings.TrimSpace(req.City)
	e.State = strings.TrimSpace(req.State)
	e.ZipCode = strings.TrimSpace(req.ZipCode)
	e.TaxID = strings.TrimSpace(req.TaxID)
	return nil
}

func (s *billingService) loadBillTo(ctx context.Context, repo *repository.Repository, billToID string) (*model.BillToEntity, error) {
	e, err := repo.BillTo.GetByID(ctx, billToID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBillToNotFound
		}
		s.logger.Error("load bill-to entity failed", zap.String("bill_to_id", billToID), zap.Error(err))
		return nil, err
	}
	return e, nil
}

// ────────────────────── League billing ──────────────────────

func (s *billingService) loadLeague(ctx context.Context, id model.Identity, leagueID string) (*model.League, error) {
	if !id.Role.Can(model.CapManageBilling) {
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

func checkBillAmount(amount *money.Cents) error {
	if amount == nil || *amount < 1 {
		return ErrBillAmountTooSmall
	}
	if *amount > money.MaxFee {
		return ErrBillAmountTooLarge
	}
	return nil
}

func (s *billingService) ListBilling(ctx context.Context, id model.Identity, leagueID string) ([]model.LeagueBilling, error) {
	if _, err := s.loadLeague(ctx, id, leagueID); err != nil {
		return nil, err
	}
	rows, err := s.repo.LeagueBilling.ListByLeague(ctx, leagueID)
	if err != nil {
		s.logger.Error("list league billing failed", zap.String("league_id", leagueID), zap.Error(err))
		return nil, err
	}
	return rows, nil
}

func (s *billingService) CreateBilling(ctx context.Context, id model.Identity, leagueID string, req *dto.LeagueBillingRequest) (*model.LeagueBilling, error) {
	league, err := s.loadLeague(ctx, id, leagueID)
	if err != nil {
		return nil, err
	}
	if err := checkBillAmount(req.BillAmount); err != nil {
		return nil, err
	}
	level := strings.TrimSpace(req.LevelName)

	billing := &model.LeagueBilling{
		LeagueID:   leagueID,
		LevelName:  level,
		BillAmount: *req.BillAmount,
		BillToID:   req.BillToID,
		Notes:      strings.TrimSpace(req.Notes),
		IsActive:   true,
		BaseModel:  model.BaseModel{CreatedBy: model.StringPtr(id.UserID)},
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		billTo, err := s.loadBillTo(ctx, tx, req.BillToID)
		if err != nil {
			return err
		}
		exists, err := tx.LeagueBilling.ExistsLevel(ctx, leagueID, level, "")
		if err != nil {
			return err
		}
		if exists {
			return ErrBillingLevelExists
		}
		if err := tx.LeagueBilling.Create(ctx, billing); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrBillingLevelExists
			}
			return err
		}
		billing.BillTo = billTo
		return recordActivity(ctx, tx, id.UserID, ActionCreate, "league_billing", billing.LeagueBillingID,
			"Bill "+billTo.Name+" "+billing.BillAmount.String()+" per "+league.Name+" "+level+" game",
			map[string]interface{}{"league_id": leagueID, "level": level, "amount": billing.BillAmount.String()})
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("create league billing failed", zap.String("league_id", leagueID), zap.Error(err))
		}
		return nil, err
	}
	return billing, nil
}

func (s *billingService) UpdateBilling(ctx context.Context, id model.Identity, leagueID, billingID string, req *dto.LeagueBillingRequest) (*model.LeagueBilling, error) {
	league, err := s.loadLeague(ctx, id, leagueID)
	if err != nil {
		return nil, err
	}
	if err := checkBillAmount(req.BillAmount); err != nil {
		return nil, err
	}

	var billing *model.LeagueBilling
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		existing, err := tx.LeagueBilling.GetByID(ctx, leagueID, billingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBillingNotFound
			}
			return err
		}
		billTo, err := s.loadBillTo(ctx, tx, req.BillToID)
		if err != nil {
			return err
		}
		level := strings.TrimSpace(req.LevelName)
		exists, err := tx.LeagueBilling.ExistsLevel(ctx, leagueID, level, billingID)
		if err != nil {
			return err
		}
		if exists {
			return ErrBillingLevelExists
		}

		existing.LevelName = level
		existing.BillAmount = *req.BillAmount
		existing.BillToID = billTo.BillToID
		existing.BillTo = billTo
		existing.Notes = strings.TrimSpace(req.Notes)
		existing.UpdatedBy = model.StringPtr(id.UserID)
		if err := tx.LeagueBilling.Update(ctx, existing); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrBillingLevelExists
			}
			return err
		}
		billing = existing
		return recordActivity(ctx, tx, id.UserID, ActionUpdate, "league_billing", billingID,
			"Updated "+league.Name+" "+level+" billing to "+existing.BillAmount.String(), nil)
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("update league billing failed", zap.String("billing_id", billingID), zap.Error(err))
		}
		return nil, err
	}
	return billing, nil
}

func (s *billingService) DeleteBilling(ctx context.Context, id model.Identity, leagueID, billingID string) error {
	league, err := s.loadLeague(ctx, id, leagueID)
	if err != nil {
		return err
	}
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		n, err := tx.LeagueBilling.Deactivate(ctx, leagueID, billingID, id.UserID)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrBillingNotFound
		}
		return recordActivity(ctx, tx, id.UserID, ActionDelete, "league_billing", billingID,
			"Removed a billing structure from "+league.Name, nil)
	})
	if err != nil && !isBusinessError(err) {
		s.logger.Error("delete league billing failed", zap.String("billing_id", billingID), zap.Error(err))
	}
	return err
}
