package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"sports-scheduler/internal/model"
)

// LeagueBillingRepository bill-to amounts per (league, level).
type LeagueBillingRepository interface {
	Create(ctx context.Context, b *model.LeagueBilling) error
	GetByID(ctx context.Context, leagueID, id string) (*model.LeagueBilling, error)
	Update(ctx context.Context, b *model.LeagueBilling) error
	Deactivate(ctx context.Context, leagueID, id, updatedBy string) (int64, error)
	ListByLeague(ctx context.Context, leagueID string) ([]model.LeagueBilling, error)
	ExistsLevel(ctx context.Context, leagueID, level, excludeID string) (bool, error)
}

// BillToRepository billing counterpart data access.
type BillToRepository interface {
	Create(ctx context.Context, e *model.BillToEntity) error
	GetByID(ctx context.Context, id string) (*model.BillToEntity, error)
	Update(ctx context.Context, e *model.BillToEntity) error
	Deactivate(ctx context.Context, id, updatedBy string) (int64, error)
	List(ctx context.Context, includeInactive bool) ([]model.BillToEntity, error)
}

// ── LeagueBilling ──

type leagueBillingRepo struct {
	db *gorm.DB
}

// NewLeagueBillingRepo creates a LeagueBillingRepository.
func NewLeagueBillingRepo(db *gorm.DB) LeagueBillingRepository {
	return &leagueBillingRepo{db: db}
}

func (r *leagueBillingRepo) Create(ctx context.Context, b *model.LeagueBilling) error {
	return r.db.WithContext(ctx).Omit("BillTo").Create(b).Error
}

func (r *leagueBillingRepo) GetByID(ctx context.Context, leagueID, id string) (*model.LeagueBilling, error) {
	var b model.LeagueBilling
	err := r.db.WithContext(ctx).
		Preload("BillTo").
		Where("league_billing_id = ? AND league_id = ? AND is_active", id, leagueID).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *leagueBillingRepo) Update(ctx context.Context, b *model.LeagueBilling) error {
	return r.db.WithContext(ctx).
		Model(&model.LeagueBilling{}).
		Where("league_billing_id = ?", b.LeagueBillingID).
		Updates(map[string]interface{}{
			"level_name":  b.LevelName,
			"bill_amount": b.BillAmount,
			"bill_to_id":  b.BillToID,
			"notes":       b.Notes,
			"updated_by":  b.UpdatedBy,
			"updated_at":  time.Now(),
		}).Error
}

func (r *leagueBillingRepo) Deactivate(ctx context.Context, leagueID, id, updatedBy string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.LeagueBilling{}).
		Where("league_billing_id = ? AND league_id = ? AND is_active", id, leagueID).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_by": model.StringPtr(updatedBy),
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

func (r *leagueBillingRepo) ListByLeague(ctx context.Context, leagueID string) ([]model.LeagueBilling, error) {
	var rows []model.LeagueBilling
	err := r.db.WithContext(ctx).
		Preload("BillTo").
		Where("league_id = ? AND is_active", leagueID).
		Order("level_name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *leagueBillingRepo) ExistsLevel(ctx context.Context, leagueID, level, excludeID string) (bool, error) {
	var count int64
	db := r.db.WithContext(ctx).
		Model(&model.LeagueBilling{}).
		Where("league_id = ? AND LOWER(level_name) = LOWER(?) AND is_active", leagueID, level)
	if excludeID != "" {
		db = db.Where("league_billing_id <> ?", excludeID)
	}
	if err := db.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ── BillToEntity ──

type billToRepo struct {
	db *gorm.DB
}

// NewBillToRepo creates a BillToRepository.
func NewBillToRepo(db *gorm.DB) BillToRepository {
	return &billToRepo{db: db}
}

func (r *billToRepo) Create(ctx context.Context, e *model.BillToEntity) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *billToRepo) GetByID(ctx context.Context, id string) (*model.BillToEntity, error) {
	var e model.BillToEntity
	err := r.db.WithContext(ctx).
		Where("bill_to_id = ?", id).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *billToRepo) Update(ctx context.Context, e *model.BillToEntity) error {
	return r.db.WithContext(ctx).
		Model(&model.BillToEntity{}).
		Where("bill_to_id = ?", e.BillToID).
		Updates(map[string]interface{}{
			"name":           e.Name,
			"contact_person": e.ContactPerson,
			"email":          e.Email,
			"phone":          e.Phone,
			"address":        e.Address,
			"city":           e.City,
			"state":          e.State,
			"zip_code":       e.ZipCode,
			"tax_id":         e.TaxID,
			"updated_by":     e.UpdatedBy,
			"updated_at":     time.Now(),
		}).Error
}

func (r *billToRepo) Deactivate(ctx context.Context, id, updatedBy string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.BillToEntity{}).
		Where("bill_to_id = ? AND is_active", id).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_by": model.StringPtr(updatedBy),
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

func (r *billToRepo) List(ctx context.Context, includeInactive bool) ([]model.BillToEntity, error) {
	var rows []model.BillToEntity
	db := r.db.WithContext(ctx)
	if !includeInactive {
		db = db.Where("is_active")
	}
	err := db.Order("name ASC").Find(&rows).Error
	return rows, err
}
