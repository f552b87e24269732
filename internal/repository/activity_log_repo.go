package repository

import (
	"context"

	"gorm.io/gorm"

	"sports-scheduler/internal/model"
)

// ActivityLogRepository append-only audit trail.
type ActivityLogRepository interface {
	Create(ctx context.Context, log *model.ActivityLog) error
	ListRecent(ctx context.Context, entityType string, limit int) ([]model.ActivityLog, error)
}

type activityLogRepo struct {
	db *gorm.DB
}

// NewActivityLogRepo creates an ActivityLogRepository.
func NewActivityLogRepo(db *gorm.DB) ActivityLogRepository {
	return &activityLogRepo{db: db}
}

func (r *activityLogRepo) Create(ctx context.Context, log *model.ActivityLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *activityLogRepo) ListRecent(ctx context.Context, entityType string, limit int) ([]model.ActivityLog, error) {
	var logs []model.ActivityLog
	db := r.db.WithContext(ctx)
	if entityType != "" {
		db = db.Where("entity_type = ?", entityType)
	}
	err := db.Order("created_at DESC").Limit(limit).Find(&logs).Error
	return logs, err
}
