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
)

// LocationService manages the venue list. Every signed-in user can read it;
// changes need league management rights.
type LocationService interface {
	List(ctx context.Context, req *dto.LocationListRequest) ([]model.Location, error)
	Get(ctx context.Context, locationID string) (*model.Location, error)
	Create(ctx context.Context, id model.Identity, req *dto.CreateLocationRequest) (*model.Location, error)
	Update(ctx context.Context, id model.Identity, locationID string, req *dto.UpdateLocationRequest) (*model.Location, error)
	Delete(ctx context.Context, id model.Identity, locationID string) error
}

type locationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewLocationService creates a LocationService.
func NewLocationService(repo *repository.Repository, logger *zap.Logger) LocationService {
	return &locationService{repo: repo, logger: logger}
}

func (s *locationService) List(ctx context.Context, req *dto.LocationListRequest) ([]model.Location, error) {
	locations, err := s.repo.Location.List(ctx, repository.LocationFilter{
		Search:          strings.TrimSpace(req.Search),
		City:            strings.TrimSpace(req.City),
		IncludeInactive: req.IncludeInactive,
	})
	if err != nil {
		s.logger.Error("list locations failed", zap.Error(err))
		return nil, err
	}
	return locations, nil
}

func (s *locationService) Get(ctx context.Context, locationID string) (*model.Location, error) {
	return s.load(ctx, s.repo, locationID)
}

func (s *locationService) Create(ctx context.Context, id model.Identity, req *dto.CreateLocationRequest) (*model.Location, error) {
	if !id.Role.Can(model.CapManageLeagues) {
		return nil, ErrForbidden
	}

	loc := &model.Location{
		Name:          strings.TrimSpace(req.Name),
		Address:       strings.TrimSpace(req.Address),
		City:          strings.TrimSpace(req.City),
		State:         strings.TrimSpace(req.State),
		ZipCode:       strings.TrimSpace(req.ZipCode),
		ContactPerson: strings.TrimSpace(req.ContactPerson),
		ContactPhone:  strings.TrimSpace(req.ContactPhone),
		ContactEmail:  strings.TrimSpace(req.ContactEmail),
		Capacity:      req.Capacity,
		Notes:         strings.TrimSpace(req.Notes),
		IsActive:      true,
		BaseModel:     model.BaseModel{CreatedBy: model.StringPtr(id.UserID)},
	}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		exists, err := tx.Location.ExistsName(ctx, loc.Name, "")
		if err != nil {
			return err
		}
		if exists {
			return ErrLocationExists
		}
		if err := tx.Location.Create(ctx, loc); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrLocationExists
			}
			return err
		}
		return recordActivity(ctx, tx, id.UserID, ActionCreate, "location", loc.LocationID,
			"Created location "+loc.Name, map[string]interface{}{"city": loc.City})
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("create location failed", zap.String("name", loc.Name), zap.Error(err))
		}
		return nil, err
	}
	return loc, nil
}

func (s *locationService) Update(ctx context.Context, id model.Identity, locationID string, req *dto.UpdateLocationRequest) (*model.Location, error) {
	if !id.Role.Can(model.CapManageLeagues) {
		return nil, ErrForbidden
	}

	var loc *model.Location
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		existing, err := s.load(ctx, tx, locationID)
		if err != nil {
			return err
		}
		applyLocationUpdate(existing, req)

		if existing.IsActive {
			exists, err := tx.Location.ExistsName(ctx, existing.Name, locationID)
			if err != nil {
				return err
			}
			if exists {
				return ErrLocationExists
			}
		}

		existing.UpdatedBy = model.StringPtr(id.UserID)
		if err := tx.Location.Update(ctx, existing); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrLocationExists
			}
			return err
		}
		loc = existing
		return recordActivity(ctx, tx, id.UserID, ActionUpdate, "location", locationID,
			"Updated location "+existing.Name, nil)
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("update location failed", zap.String("location_id", locationID), zap.Error(err))
		}
		return nil, err
	}
	return loc, nil
}

func applyLocationUpdate(loc *model.Location, req *dto.UpdateLocationRequest) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&loc.Name, req.Name)
	set(&loc.Address, req.Address)
	set(&loc.City, req.City)
	set(&loc.State, req.State)
	set(&loc.ZipCode, req.ZipCode)
	set(&loc.ContactPerson, req.ContactPerson)
	set(&loc.ContactPhone, req.ContactPhone)
	set(&loc.ContactEmail, req.ContactEmail)
	set(&loc.Notes, req.Notes)
	if req.Capacity != nil {
		loc.Capacity = req.Capacity
	}
	if req.IsActive != nil {
		loc.IsActive = *req.IsActive
	}
}

// Delete deactivates the venue. Games keep their location text.
func (s *locationService) Delete(ctx context.Context, id model.Identity, locationID string) error {
	if !id.Role.Can(model.CapManageLeagues) {
		return ErrForbidden
	}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		loc, err := s.load(ctx, tx, locationID)
		if err != nil {
			return err
		}
		n, err := tx.Location.Deactivate(ctx, locationID, id.UserID)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrLocationNotFound
		}
		return recordActivity(ctx, tx, id.UserID, ActionDeactivate, "location", locationID,
			"Deactivated location "+loc.Name, nil)
	})
	if err != nil && !isBusinessError(err) {
		s.logger.Error("delete location failed", zap.String("location_id", locationID), zap.Error(err))
	}
	return err
}

func (s *locationService) load(ctx context.Context, repo *repository.Repository, locationID string) (*model.Location, error) {
	loc, err := repo.Location.GetByID(ctx, locationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		s.logger.Error("load location failed", zap.String("location_id", locationID), zap.Error(err))
		return nil, err
	}
	return loc, nil
}
