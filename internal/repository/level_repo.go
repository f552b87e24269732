package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"sports-scheduler/internal/model"
)

// LeagueLevelRepository per-league level data access.
type LeagueLevelRepository interface {
	Create(ctx context.Context, level *model.LeagueLevel) error
	ListByLeague(ctx context.Context, leagueID string) ([]model.LeagueLevel, error)
	// FindByName matches case-insensitively and includes inactive rows.
	FindByName(ctx context.Context, leagueID, name string) (*model.LeagueLevel, error)
	Reactivate(ctx context.Context, id, notes, updatedBy string) error
	Deactivate(ctx context.Context, leagueID, id, updatedBy string) (int64, error)
	// DistinctNames lists active level names across the leagues in scope.
	DistinctNames(ctx context.Context, scope model.AccessScope) ([]string, error)
}

type leagueLevelRepo struct {
	db *gorm.DB
}

// NewLeagueLevelRepo creates a LeagueLevelRepository.
func NewLeagueLevelRepo(db *gorm.DB) LeagueLevelRepository {
	return &leagueLevelRepo{db: db}
}

func (r *leagueLevelRepo) Create(ctx context.Context, level *model.LeagueLevel) error {
	return r.db.WithContext(ctx).Create(level).Error
}

func (r *leagueLevelRepo) ListByLeague(ctx context.Context, leagueID string) ([]model.LeagueLevel, error) {
	var levels []model.LeagueLevel
	err := r.db.WithContext(ctx).
		Where("league_id = ? AND is_active", leagueID).
		Order("level_name ASC").
		Find(&levels).Error
	return levels, err
}

func (r *leagueLevelRepo) FindByName(ctx context.Context, leagueID, name string) (*model.LeagueLevel, error) {
	var level model.LeagueLevel
	err := r.db.WithContext(ctx).
		Where("league_id = ? AND LOWER(level_name) = LOWER(?)", leagueID, name).
		First(&level).Error
	if err != nil {
		return nil, err
	}
	return &level, nil
}

func (r *leagueLevelRepo) Reactivate(ctx context.Context, id, notes, updatedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.LeagueLevel{}).
		Where("league_level_id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  true,
			"notes":      notes,
			"updated_by": model.StringPtr(updatedBy),
			"updated_at": time.Now(),
		}).Error
}

func (r *leagueLevelRepo) Deactivate(ctx context.Context, leagueID, id, updatedBy string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.LeagueLevel{}).
		Where("league_level_id = ? AND league_id = ? AND is_active", id, leagueID).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_by": model.StringPtr(updatedBy),
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

func (r *leagueLevelRepo) DistinctNames(ctx context.Context, scope model.AccessScope) ([]string, error) {
	var names []string
	leagues := r.db.Model(&model.League{}).Select("leagues.league_id").Where("leagues.is_active").Scopes(ScopeLeagues(scope))
	err := r.db.WithContext(ctx).
		Model(&model.LeagueLevel{}).
		Distinct("level_name").
		Where("is_active AND league_id IN (?)", leagues).
		Order("level_name ASC").
		Pluck("level_name", &names).Error
	return names, err
}

// PredeterminedLevelRepository read access to the level catalog.
type PredeterminedLevelRepository interface {
	// List filters by sport and category when they are non-empty.
	List(ctx context.Context, sport, category string) ([]model.PredeterminedLevel, error)
	Sports(ctx context.Context) ([]string, error)
	Categories(ctx context.Context, sport string) ([]string, error)
}

type predeterminedLevelRepo struct {
	db *gorm.DB
}

// NewPredeterminedLevelRepo creates a PredeterminedLevelRepository.
func NewPredeterminedLevelRepo(db *gorm.DB) PredeterminedLevelRepository {
	return &predeterminedLevelRepo{db: db}
}

func (r *predeterminedLevelRepo) List(ctx context.Context, sport, category string) ([]model.PredeterminedLevel, error) {
	var levels []model.PredeterminedLevel
	db := r.db.WithContext(ctx).Where("is_active")
	if sport != "" {
		db = db.Where("sport = ?", sport)
	}
	if category != "" {
		db = db.Where("category = ?", category)
	}
	err := db.Order("sport, category, display_order").Find(&levels).Error
	return levels, err
}

func (r *predeterminedLevelRepo) Sports(ctx context.Context) ([]string, error) {
	var sports []string
	err := r.db.WithContext(ctx).
		Model(&model.PredeterminedLevel{}).
		Distinct("sport").
		Where("is_active").
		Order("sport").
		Pluck("sport", &sports).Error
	return sports, err
}

func (r *predeterminedLevelRepo) Categories(ctx context.Context, sport string) ([]string, error) {
	var categories []string
	db := r.db.WithContext(ctx).
		Model(&model.PredeterminedLevel{}).
		Distinct("category").
		Where("is_active")
	if sport != "" {
		db = db.Where("sport = ?", sport)
	}
	err := db.Order("category").Pluck("category", &categories).Error
	return categories, err
}
