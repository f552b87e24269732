package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"sports-scheduler/internal/model"
)

// LeagueFilter narrows league listings. OnlyInactive wins over
// IncludeInactive; zero Created bounds are ignored.
type LeagueFilter struct {
	Search          string
	Sport           string
	Season          string
	IncludeInactive bool
	OnlyInactive    bool
	CreatedFrom     time.Time
	CreatedTo       time.Time
}

// LeagueRepository league data access.
type LeagueRepository interface {
	Create(ctx context.Context, league *model.League) error
	GetByID(ctx context.Context, id string) (*model.League, error)
	GetActiveByName(ctx context.Context, name string) (*model.League, error)
	ExistsNameSeason(ctx context.Context, name, season, excludeID string) (bool, error)
	Update(ctx context.Context, league *model.League) error
	Deactivate(ctx context.Context, id, updatedBy string) error
	List(ctx context.Context, scope model.AccessScope, filter LeagueFilter, offset, limit int) ([]model.League, int64, error)
	// DistinctSports and DistinctSeasons cover active leagues in scope.
	DistinctSports(ctx context.Context, scope model.AccessScope) ([]string, error)
	DistinctSeasons(ctx context.Context, scope model.AccessScope) ([]string, error)
}

type leagueRepo struct {
	db *gorm.DB
}

// NewLeagueRepo creates a LeagueRepository.
func NewLeagueRepo(db *gorm.DB) LeagueRepository {
	return &leagueRepo{db: db}
}

func (r *leagueRepo) Create(ctx context.Context, league *model.League) error {
	return r.db.WithContext(ctx).Create(league).Error
}

func (r *leagueRepo) GetByID(ctx context.Context, id string) (*model.League, error) {
	var league model.League
	err := r.db.WithContext(ctx).
		Where("league_id = ?", id).
		First(&league).Error
	if err != nil {
		return nil, err
	}
	return &league, nil
}

func (r *leagueRepo) GetActiveByName(ctx context.Context, name string) (*model.League, error) {
	var league model.League
	err := r.db.WithContext(ctx).
		Where("name = ? AND is_active", name).
		Order("created_at DESC").
		First(&league).Error
	if err != nil {
		return nil, err
	}
	return &league, nil
}

func (r *leagueRepo) ExistsNameSeason(ctx context.Context, name, season, excludeID string) (bool, error) {
	var count int64
	db := r.db.WithContext(ctx).
		Model(&model.League{}).
		Where("name = ? AND season = ? AND is_active", name, season)
	if excludeID != "" {
		db = db.Where("league_id <> ?", excludeID)
	}
	if err := db.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *leagueRepo) Update(ctx context.Context, league *model.League) error {
	return r.db.WithContext(ctx).
		Model(&model.League{}).
		Where("league_id = ?", league.LeagueID).
		Updates(map[string]interface{}{
			"name":        league.Name,
			"sport":       league.Sport,
			"season":      league.Season,
			"levels":      league.Levels,
			"description": league.Description,
			"is_active":   league.IsActive,
			"updated_by":  league.UpdatedBy,
			"updated_at":  time.Now(),
		}).Error
}

func (r *leagueRepo) Deactivate(ctx context.Context, id, updatedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.League{}).
		Where("league_id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_by": model.StringPtr(updatedBy),
			"updated_at": time.Now(),
		}).Error
}

func (r *leagueRepo) List(ctx context.Context, scope model.AccessScope, filter LeagueFilter, offset, limit int) ([]model.League, int64, error) {
	var leagues []model.League
	var total int64

	db := r.db.WithContext(ctx).Model(&model.League{}).Scopes(ScopeLeagues(scope))
	switch {
	case filter.OnlyInactive:
		db = db.Where("NOT leagues.is_active")
	case !filter.IncludeInactive:
		db = db.Where("leagues.is_active")
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		db = db.Where("(leagues.name ILIKE ? OR leagues.description ILIKE ? OR leagues.sport ILIKE ?)", like, like, like)
	}
	if filter.Sport != "" {
		db = db.Where("leagues.sport = ?", filter.Sport)
	}
	if filter.Season != "" {
		db = db.Where("leagues.season = ?", filter.Season)
	}
	if !filter.CreatedFrom.IsZero() {
		db = db.Where("leagues.created_at >= ?", filter.CreatedFrom)
	}
	if !filter.CreatedTo.IsZero() {
		db = db.Where("leagues.created_at < ?", filter.CreatedTo)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Order("leagues.name ASC, leagues.season DESC").
		Offset(offset).Limit(limit).
		Find(&leagues).Error; err != nil {
		return nil, 0, err
	}

	return leagues, total, nil
}

func (r *leagueRepo) DistinctSports(ctx context.Context, scope model.AccessScope) ([]string, error) {
	return r.distinct(ctx, scope, "sport")
}

func (r *leagueRepo) DistinctSeasons(ctx context.Context, scope model.AccessScope) ([]string, error) {
	return r.distinct(ctx, scope, "season")
}

func (r *leagueRepo) distinct(ctx context.Context, scope model.AccessScope, column string) ([]string, error) {
	var values []string
	err := r.db.WithContext(ctx).
		Model(&model.League{}).
		Scopes(ScopeLeagues(scope)).
		Distinct("leagues."+column).
		Where("leagues.is_active AND leagues."+column+" <> ''").
		Order("leagues."+column).
		Pluck("leagues."+column, &values).Error
	return values, err
}
