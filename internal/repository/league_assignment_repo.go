package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sports-scheduler/internal/model"
)

// LeagueAssignmentRepository league membership data access.
type LeagueAssignmentRepository interface {
	// ListActiveByUser returns the active memberships of a user whose
	// league is itself active, with League preloaded.
	ListActiveByUser(ctx context.Context, userID string) ([]model.LeagueAssignment, error)
	ListByLeague(ctx context.Context, leagueID string) ([]model.LeagueAssignment, error)
	// Grant inserts or reactivates the (user, league) membership.
	Grant(ctx context.Context, la *model.LeagueAssignment) error
	Revoke(ctx context.Context, userID, leagueID string) error
	// IsMemberOfAny reports whether userID holds an active membership in
	// any of leagueIDs.
	IsMemberOfAny(ctx context.Context, userID string, leagueIDs []string) (bool, error)
}

type leagueAssignmentRepo struct {
	db *gorm.DB
}

// NewLeagueAssignmentRepo creates a LeagueAssignmentRepository.
func NewLeagueAssignmentRepo(db *gorm.DB) LeagueAssignmentRepository {
	return &leagueAssignmentRepo{db: db}
}

func (r *leagueAssignmentRepo) ListActiveByUser(ctx context.Context, userID string) ([]model.LeagueAssignment, error) {
	var rows []model.LeagueAssignment
	err := r.db.WithContext(ctx).
		Joins("League").
		Where("league_assignments.user_id = ? AND league_assignments.is_active", userID).
		Where(`"League".is_active`).
		Find(&rows).Error
	return rows, err
}

func (r *leagueAssignmentRepo) ListByLeague(ctx context.Context, leagueID string) ([]model.LeagueAssignment, error) {
	var rows []model.LeagueAssignment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("league_id = ? AND is_active", leagueID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *leagueAssignmentRepo) Grant(ctx context.Context, la *model.LeagueAssignment) error {
	la.IsActive = true
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "league_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"is_active":   true,
				"assigned_by": la.AssignedBy,
				"updated_at":  time.Now(),
			}),
		}).
		Create(la).Error
}

func (r *leagueAssignmentRepo) Revoke(ctx context.Context, userID, leagueID string) error {
	return r.db.WithContext(ctx).
		Model(&model.LeagueAssignment{}).
		Where("user_id = ? AND league_id = ?", userID, leagueID).
		Updates(map[string]interface{}{"is_active": false, "updated_at": time.Now()}).Error
}

func (r *leagueAssignmentRepo) IsMemberOfAny(ctx context.Context, userID string, leagueIDs []string) (bool, error) {
	if len(leagueIDs) == 0 {
		return false, nil
	}
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.LeagueAssignment{}).
		Where("user_id = ? AND league_id IN ? AND is_active", userID, leagueIDs).
		Count(&count).Error
	return count > 0, err
}
