package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"sports-scheduler/internal/model"
)

// LocationFilter narrows location listings.
type LocationFilter struct {
	Search          string
	City            string
	IncludeInactive bool
}

// LocationRepository venue data access.
type LocationRepository interface {
	Create(ctx context.Context, loc *model.Location) error
	GetByID(ctx context.Context, id string) (*model.Location, error)
	List(ctx context.Context, filter LocationFilter) ([]model.Location, error)
	Update(ctx context.Context, loc *model.Location) error
	Deactivate(ctx context.Context, id, updatedBy string) (int64, error)
	ExistsName(ctx context.Context, name, excludeID string) (bool, error)
}

type locationRepo struct {
	db *gorm.DB
}

// NewLocationRepo creates a LocationRepository.
func NewLocationRepo(db *gorm.DB) LocationRepository {
	return &locationRepo{db: db}
}

func (r *locationRepo) Create(ctx context.Context, loc *model.Location) error {
	return r.db.WithContext(ctx).Create(loc).Error
}

func (r *locationRepo) GetByID(ctx context.Context, id string) (*model.Location, error) {
	var loc model.Location
	err := r.db.WithContext(ctx).
		Where("location_id = ?", id).
		First(&loc).Error
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

func (r *locationRepo) List(ctx context.Context, filter LocationFilter) ([]model.Location, error) {
	var locations []model.Location
	db := r.db.WithContext(ctx)

	if !filter.IncludeInactive {
		db = db.Where("is_active")
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		db = db.Where("(name ILIKE ? OR address ILIKE ? OR city ILIKE ?)", like, like, like)
	}
	if filter.City != "" {
		db = db.Where("LOWER(city) = LOWER(?)", filter.City)
	}

	err := db.Order("name ASC").Find(&locations).Error
	return locations, err
}

func (r *locationRepo) Update(ctx context.Context, loc *model.Location) error {
	return r.db.WithContext(ctx).
		Model(&model.Location{}).
		Where("location_id = ?", loc.LocationID).
		Updates(map[string]interface{}{
			"name":           loc.Name,
			"address":        loc.Address,
			"city":           loc.City,
			"state":          loc.State,
			"zip_code":       loc.ZipCode,
			"contact_person": loc.ContactPerson,
			"contact_phone":  loc.ContactPhone,
			"contact_email":  loc.ContactEmail,
			"capacity":       loc.Capacity,
			"notes":          loc.Notes,
			"is_active":      loc.IsActive,
			"updated_by":     loc.UpdatedBy,
			"updated_at":     time.Now(),
		}).Error
}

func (r *locationRepo) Deactivate(ctx context.Context, id, updatedBy string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Location{}).
		Where("location_id = ? AND is_active", id).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_by": model.StringPtr(updatedBy),
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

func (r *locationRepo) ExistsName(ctx context.Context, name, excludeID string) (bool, error) {
	var count int64
	db := r.db.WithContext(ctx).
		Model(&model.Location{}).
		Where("LOWER(name) = LOWER(?) AND is_active", name)
	if excludeID != "" {
		db = db.Where("location_id <> ?", excludeID)
	}
	if err := db.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
