package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"sports-scheduler/internal/model"
)

// AssignmentFilter narrows assignment listings. Dates refer to the game.
type AssignmentFilter struct {
	GameID     string
	OfficialID string
	Status     string
	DateFrom   string
	DateTo     string
}

// OfficialStats counts one official's assignments.
type OfficialStats struct {
	Total     int64 `json:"total"`
	Upcoming  int64 `json:"upcoming"`
	Completed int64 `json:"completed"`
	ThisMonth int64 `json:"this_month"`
}

// AssignmentRepository assignment data access.
type AssignmentRepository interface {
	Create(ctx context.Context, a *model.Assignment) error
	GetByID(ctx context.Context, id string) (*model.Assignment, error)
	Update(ctx context.Context, a *model.Assignment) error
	Delete(ctx context.Context, id string) (int64, error)
	// ExistsPair reports whether (game, official) is already assigned,
	// ignoring excludeID.
	ExistsPair(ctx context.Context, gameID, officialID, excludeID string) (bool, error)
	// FindByOfficialAndSlot returns the official's assignments on other games
	// at exactly date and time, with Game loaded.
	FindByOfficialAndSlot(ctx context.Context, officialID, date, clock, excludeGameID, excludeID string) ([]model.Assignment, error)
	// ListByGame returns every assignment on gameID, unscoped.
	ListByGame(ctx context.Context, gameID string) ([]model.Assignment, error)
	List(ctx context.Context, scope model.AccessScope, filter AssignmentFilter, offset, limit int) ([]model.Assignment, int64, error)
	Count(ctx context.Context, scope model.AccessScope) (int64, error)
	CountByGames(ctx context.Context, gameIDs []string) (map[string]int64, error)
	StatsForOfficial(ctx context.Context, officialID, today string) (*OfficialStats, error)
}

type assignmentRepo struct {
	db *gorm.DB
}

// NewAssignmentRepo creates an AssignmentRepository.
func NewAssignmentRepo(db *gorm.DB) AssignmentRepository {
	return &assignmentRepo{db: db}
}

func (r *assignmentRepo) Create(ctx context.Context, a *model.Assignment) error {
	return r.db.WithContext(ctx).Omit("Game", "Official").Create(a).Error
}

func (r *assignmentRepo) GetByID(ctx context.Context, id string) (*model.Assignment, error) {
	var a model.Assignment
	err := r.db.WithContext(ctx).
		Preload("Game").
		Preload("Official").
		Where("assignment_id = ?", id).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *assignmentRepo) Update(ctx context.Context, a *model.Assignment) error {
	return r.db.WithContext(ctx).
		Model(&model.Assignment{}).
		Where("assignment_id = ?", a.AssignmentID).
		Updates(map[string]interface{}{
			"game_id":      a.GameID,
			"official_id":  a.OfficialID,
			"position":     a.Position,
			"status":       a.Status,
			"fee":          a.Fee,
			"fee_source":   a.FeeSource,
			"responded_at": a.RespondedAt,
			"updated_by":   a.UpdatedBy,
			"updated_at":   time.Now(),
		}).Error
}

func (r *assignmentRepo) Delete(ctx context.Context, id string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("assignment_id = ?", id).
		Delete(&model.Assignment{})
	return result.RowsAffected, result.Error
}

func (r *assignmentRepo) ExistsPair(ctx context.Context, gameID, officialID, excludeID string) (bool, error) {
	var count int64
	db := r.db.WithContext(ctx).
		Model(&model.Assignment{}).
		Where("game_id = ? AND official_id = ?", gameID, officialID)
	if excludeID != "" {
		db = db.Where("assignment_id <> ?", excludeID)
	}
	if err := db.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *assignmentRepo) FindByOfficialAndSlot(ctx context.Context, officialID, date, clock, excludeGameID, excludeID string) ([]model.Assignment, error) {
	var rows []model.Assignment
	db := r.db.WithContext(ctx).
		Joins("Game").
		Where("assignments.official_id = ?", officialID).
		Where(`"Game".game_date = ? AND "Game".game_time = ?`, date, clock).
		Where("assignments.game_id <> ?", excludeGameID)
	if excludeID != "" {
		db = db.Where("assignments.assignment_id <> ?", excludeID)
	}
	err := db.Find(&rows).Error
	return rows, err
}

func (r *assignmentRepo) ListByGame(ctx context.Context, gameID string) ([]model.Assignment, error) {
	var rows []model.Assignment
	err := r.db.WithContext(ctx).
		Where("game_id = ?", gameID).
		Order("assigned_at").
		Find(&rows).Error
	return rows, err
}

func (r *assignmentRepo) List(ctx context.Context, scope model.AccessScope, filter AssignmentFilter, offset, limit int) ([]model.Assignment, int64, error) {
	var rows []model.Assignment
	var total int64

	db := r.db.WithContext(ctx).
		Model(&model.Assignment{}).
		Joins("Game").
		Scopes(ScopeAssignments(scope))
	if filter.GameID != "" {
		db = db.Where("assignments.game_id = ?", filter.GameID)
	}
	if filter.OfficialID != "" {
		db = db.Where("assignments.official_id = ?", filter.OfficialID)
	}
	if filter.Status != "" {
		db = db.Where("assignments.status = ?", filter.Status)
	}
	if filter.DateFrom != "" {
		db = db.Where(`"Game".game_date >= ?`, filter.DateFrom)
	}
	if filter.DateTo != "" {
		db = db.Where(`"Game".game_date <= ?`, filter.DateTo)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Official").
		Order(`"Game".game_date ASC, "Game".game_time ASC, assignments.position ASC`).
		Offset(offset).Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

func (r *assignmentRepo) Count(ctx context.Context, scope model.AccessScope) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Assignment{}).
		Scopes(ScopeAssignments(scope)).
		Count(&count).Error
	return count, err
}

func (r *assignmentRepo) CountByGames(ctx context.Context, gameIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(gameIDs))
	if len(gameIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		GameID string
		N      int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.Assignment{}).
		Select("game_id, COUNT(*) AS n").
		Where("game_id IN ?", gameIDs).
		Group("game_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.GameID] = row.N
	}
	return counts, nil
}

func (r *assignmentRepo) StatsForOfficial(ctx context.Context, officialID, today string) (*OfficialStats, error) {
	var stats OfficialStats
	month := today[:7] + "%"
	err := r.db.WithContext(ctx).
		Model(&model.Assignment{}).
		Joins("JOIN games g ON g.game_id = assignments.game_id").
		Where("assignments.official_id = ?", officialID).
		Select(`COUNT(*) AS total,
			COUNT(*) FILTER (WHERE g.game_date >= ?) AS upcoming,
			COUNT(*) FILTER (WHERE g.game_date < ?) AS completed,
			COUNT(*) FILTER (WHERE g.game_date LIKE ?) AS this_month`, today, today, month).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
