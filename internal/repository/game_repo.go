package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"sports-scheduler/internal/model"
	pkgerrors "sports-scheduler/pkg/errors"
)

// GameFilter narrows game listings. Dates are YYYY-MM-DD and inclusive.
type GameFilter struct {
	Search    string
	Sport     string
	League    string
	Level     string
	Status    string
	LinkGroup string
	DateFrom  string
	DateTo    string
}

// GameRepository game data access.
type GameRepository interface {
	Create(ctx context.Context, game *model.Game) error
	GetByID(ctx context.Context, id string) (*model.Game, error)
	// Update writes every mutable column guarded by the version column.
	Update(ctx context.Context, game *model.Game) error
	Delete(ctx context.Context, id string) error
	DeleteByIDs(ctx context.Context, ids []string) (int64, error)
	List(ctx context.Context, scope model.AccessScope, filter GameFilter, offset, limit int) ([]model.Game, int64, error)
	ListByIDs(ctx context.Context, scope model.AccessScope, ids []string) ([]model.Game, error)
	SetLinkGroup(ctx context.Context, ids []string, group *string, updatedBy string) (int64, error)
	ListLinkGroups(ctx context.Context, prefix string) ([]string, error)
	CountUpcoming(ctx context.Context, scope model.AccessScope, today string) (int64, error)
	ListUpcoming(ctx context.Context, scope model.AccessScope, today string, limit int) ([]model.Game, error)
}

type gameRepo struct {
	db *gorm.DB
}

// NewGameRepo creates a GameRepository.
func NewGameRepo(db *gorm.DB) GameRepository {
	return &gameRepo{db: db}
}

func (r *gameRepo) Create(ctx context.Context, game *model.Game) error {
	return r.db.WithContext(ctx).Create(game).Error
}

func (r *gameRepo) GetByID(ctx context.Context, id string) (*model.Game, error) {
	var game model.Game
	err := r.db.WithContext(ctx).
		Where("game_id = ?", id).
		First(&game).Error
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *gameRepo) Update(ctx context.Context, game *model.Game) error {
	oldVersion := game.Version
	result := r.db.WithContext(ctx).
		Model(&model.Game{}).
		Where("game_id = ? AND version = ?", game.GameID, oldVersion).
		Updates(map[string]interface{}{
			"game_date":        game.GameDate,
			"game_time":        game.GameTime,
			"home_team":        game.HomeTeam,
			"away_team":        game.AwayTeam,
			"location":         game.Location,
			"sport":            game.Sport,
			"league":           game.League,
			"level":            game.Level,
			"officials_needed": game.OfficialsNeeded,
			"status":           game.Status,
			"notes":            game.Notes,
			"assigned_fee":     game.AssignedFee,
			"fee_source":       game.FeeSource,
			"link_group":       game.LinkGroup,
			"updated_by":       game.UpdatedBy,
			"updated_at":       time.Now(),
			"version":          oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	game.Version = oldVersion + 1
	return nil
}

func (r *gameRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("game_id = ?", id).
		Delete(&model.Game{}).Error
}

func (r *gameRepo) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Where("game_id IN ?", ids).
		Delete(&model.Game{})
	return result.RowsAffected, result.Error
}

func (r *gameRepo) List(ctx context.Context, scope model.AccessScope, filter GameFilter, offset, limit int) ([]model.Game, int64, error) {
	var games []model.Game
	var total int64

	db := r.filtered(ctx, scope, filter)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Order("games.game_date ASC, games.game_time ASC").
		Offset(offset).Limit(limit).
		Find(&games).Error; err != nil {
		return nil, 0, err
	}

	return games, total, nil
}

func (r *gameRepo) filtered(ctx context.Context, scope model.AccessScope, filter GameFilter) *gorm.DB {
	db := r.db.WithContext(ctx).Model(&model.Game{}).Scopes(ScopeGames(scope))
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		db = db.Where("(games.home_team ILIKE ? OR games.away_team ILIKE ? OR games.location ILIKE ? OR games.league ILIKE ?)",
			like, like, like, like)
	}
	if filter.Sport != "" {
		db = db.Where("games.sport = ?", filter.Sport)
	}
	if filter.League != "" {
		db = db.Where("games.league = ?", filter.League)
	}
	if filter.Level != "" {
		db = db.Where("LOWER(games.level) = LOWER(?)", filter.Level)
	}
	if filter.Status != "" {
		db = db.Where("games.status = ?", filter.Status)
	}
	if filter.LinkGroup != "" {
		db = db.Where("games.link_group = ?", filter.LinkGroup)
	}
	if filter.DateFrom != "" {
		db = db.Where("games.game_date >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		db = db.Where("games.game_date <= ?", filter.DateTo)
	}
	return db
}

func (r *gameRepo) ListByIDs(ctx context.Context, scope model.AccessScope, ids []string) ([]model.Game, error) {
	var games []model.Game
	if len(ids) == 0 {
		return games, nil
	}
	err := r.db.WithContext(ctx).
		Scopes(ScopeGames(scope)).
		Where("games.game_id IN ?", ids).
		Order("games.game_date ASC, games.game_time ASC").
		Find(&games).Error
	return games, err
}

func (r *gameRepo) SetLinkGroup(ctx context.Context, ids []string, group *string, updatedBy string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Model(&model.Game{}).
		Where("game_id IN ?", ids).
		Updates(map[string]interface{}{
			"link_group": group,
			"updated_by": model.StringPtr(updatedBy),
			"updated_at": time.Now(),
			"version":    gorm.Expr("version + 1"),
		})
	return result.RowsAffected, result.Error
}

func (r *gameRepo) ListLinkGroups(ctx context.Context, prefix string) ([]string, error) {
	var groups []string
	err := r.db.WithContext(ctx).
		Model(&model.Game{}).
		Distinct("link_group").
		Where("link_group LIKE ?", prefix+"%").
		Pluck("link_group", &groups).Error
	return groups, err
}

func (r *gameRepo) CountUpcoming(ctx context.Context, scope model.AccessScope, today string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Game{}).
		Scopes(ScopeGames(scope)).
		Where("games.game_date >= ? AND games.status = ?", today, model.GameStatusScheduled).
		Count(&count).Error
	return count, err
}

func (r *gameRepo) ListUpcoming(ctx context.Context, scope model.AccessScope, today string, limit int) ([]model.Game, error) {
	var games []model.Game
	err := r.db.WithContext(ctx).
		Scopes(ScopeGames(scope)).
		Where("games.game_date >= ? AND games.status = ?", today, model.GameStatusScheduled).
		Order("games.game_date ASC, games.game_time ASC").
		Limit(limit).
		Find(&games).Error
	return games, err
}
