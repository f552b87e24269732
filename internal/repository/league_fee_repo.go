package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"sports-scheduler/internal/model"
)

// LeagueFeeRepository officiating fee data access.
type LeagueFeeRepository interface {
	Create(ctx context.Context, fee *model.LeagueFee) error
	GetByID(ctx context.Context, leagueID, id string) (*model.LeagueFee, error)
	Update(ctx context.Context, fee *model.LeagueFee) error
	Deactivate(ctx context.Context, leagueID, id, updatedBy string) (int64, error)
	ListByLeague(ctx context.Context, leagueID string) ([]model.LeagueFee, error)
	ExistsLevel(ctx context.Context, leagueID, level, excludeID string) (bool, error)
	// FindActive looks up the active fee for a league name and level; the
	// level comparison ignores case.
	FindActive(ctx context.Context, leagueName, level string) (*model.LeagueFee, error)
}

type leagueFeeRepo struct {
	db *gorm.DB
}

// NewLeagueFeeRepo creates a LeagueFeeRepository.
func NewLeagueFeeRepo(db *gorm.DB) LeagueFeeRepository {
	return &leagueFeeRepo{db: db}
}

func (r *leagueFeeRepo) Create(ctx context.Context, fee *model.LeagueFee) error {
	return r.db.WithContext(ctx).Omit("League").Create(fee).Error
}

func (r *leagueFeeRepo) GetByID(ctx context.Context, leagueID, id string) (*model.LeagueFee, error) {
	var fee model.LeagueFee
	err := r.db.WithContext(ctx).
		Where("league_fee_id = ? AND league_id = ? AND is_active", id, leagueID).
		First(&fee).Error
	if err != nil {
		return nil, err
	}
	return &fee, nil
}

func (r *leagueFeeRepo) Update(ctx context.Context, fee *model.LeagueFee) error {
	return r.db.WithContext(ctx).
		Model(&model.LeagueFee{}).
		Where("league_fee_id = ?", fee.LeagueFeeID).
		Updates(map[string]interface{}{
			"level_name":   fee.LevelName,
			"official_fee": fee.OfficialFee,
			"notes":        fee.Notes,
			"updated_by":   fee.UpdatedBy,
			"updated_at":   time.Now(),
		}).Error
}

func (r *leagueFeeRepo) Deactivate(ctx context.Context, leagueID, id, updatedBy string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.LeagueFee{}).
		Where("league_fee_id = ? AND league_id = ? AND is_active", id, leagueID).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_by": model.StringPtr(updatedBy),
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

func (r *leagueFeeRepo) ListByLeague(ctx context.Context, leagueID string) ([]model.LeagueFee, error) {
	var fees []model.LeagueFee
	err := r.db.WithContext(ctx).
		Where("league_id = ? AND is_active", leagueID).
		Order("level_name ASC").
		Find(&fees).Error
	return fees, err
}

func (r *leagueFeeRepo) ExistsLevel(ctx context.Context, leagueID, level, excludeID string) (bool, error) {
	var count int64
	db := r.db.WithContext(ctx).
		Model(&model.LeagueFee{}).
		Where("league_id = ? AND LOWER(level_name) = LOWER(?) AND is_active", leagueID, level)
	if excludeID != "" {
		db = db.Where("league_fee_id <> ?", excludeID)
	}
	if err := db.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *leagueFeeRepo) FindActive(ctx context.Context, leagueName, level string) (*model.LeagueFee, error) {
	var fee model.LeagueFee
	err := r.db.WithContext(ctx).
		Joins("JOIN leagues l ON l.league_id = league_fees.league_id").
		Where("l.name = ? AND l.is_active", leagueName).
		Where("LOWER(league_fees.level_name) = LOWER(?) AND league_fees.is_active", level).
		Order("league_fees.created_at DESC").
		First(&fee).Error
	if err != nil {
		return nil, err
	}
	return &fee, nil
}
