package repository

import (
	"context"

	"gorm.io/gorm"

	"sports-scheduler/internal/model"
)

// FilterPresetRepository saved filter data access.
type FilterPresetRepository interface {
	Create(ctx context.Context, preset *model.FilterPreset) error
	ListByUser(ctx context.Context, userID string) ([]model.FilterPreset, error)
	// ClearDefault unsets the default flag on every preset of userID.
	ClearDefault(ctx context.Context, userID string) error
	Delete(ctx context.Context, userID, id string) (int64, error)
}

type filterPresetRepo struct {
	db *gorm.DB
}

// NewFilterPresetRepo creates a FilterPresetRepository.
func NewFilterPresetRepo(db *gorm.DB) FilterPresetRepository {
	return &filterPresetRepo{db: db}
}

func (r *filterPresetRepo) Create(ctx context.Context, preset *model.FilterPreset) error {
	return r.db.WithContext(ctx).Create(preset).Error
}

func (r *filterPresetRepo) ListByUser(ctx context.Context, userID string) ([]model.FilterPreset, error) {
	var presets []model.FilterPreset
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC, preset_name ASC").
		Find(&presets).Error
	return presets, err
}

func (r *filterPresetRepo) ClearDefault(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Model(&model.FilterPreset{}).
		Where("user_id = ? AND is_default", userID).
		Update("is_default", false).Error
}

func (r *filterPresetRepo) Delete(ctx context.Context, userID, id string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("filter_preset_id = ? AND user_id = ?", id, userID).
		Delete(&model.FilterPreset{})
	return result.RowsAffected, result.Error
}
