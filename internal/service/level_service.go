package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"sports-scheduler/internal/dto"
	"sports-scheduler/internal/model"
	"sports-scheduler/internal/repository"
	pkgerrors "sports-scheduler/pkg/errors"
)

// LevelService manages the levels of each league and serves the read-only
// catalog of common levels per sport.
type LevelService interface {
	List(ctx context.Context, id model.Identity, leagueID string) ([]dto.LeagueLevelResponse, error)
	Add(ctx context.Context, id model.Identity, leagueID string, req *dto.CreateLeagueLevelRequest) (*dto.LeagueLevelResponse, error)
	Remove(ctx context.Context, id model.Identity, leagueID, levelID string) error

	Catalog(ctx context.Context, q *dto.CatalogQuery) ([]model.PredeterminedLevel, error)
	CatalogBySport(ctx context.Context, sport string) (*dto.SportCatalogResponse, error)
	Sports(ctx context.Context) ([]string, error)
	Categories(ctx context.Context, sport string) ([]string, error)
}

type levelService struct {
	repo   *repository.Repository
	access AccessService
	logger *zap.Logger
}

// NewLevelService creates a LevelService.
func NewLevelService(repo *repository.Repository, access AccessService, logger *zap.Logger) LevelService {
	return &levelService{repo: repo, access: access, logger: logger}
}

// ────────────────────── League levels ──────────────────────

func (s *levelService) visibleLeague(ctx context.Context, id model.Identity, leagueID string) (*model.League, error) {
	league, err := s.repo.League.GetByID(ctx, leagueID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeagueNotFound
		}
		s.logger.Error("load league failed", zap.String("league_id", leagueID), zap.Error(err))
		return nil, err
	}
	if !s.access.CanAccessLeague(ctx, id, leagueID) {
		return nil, ErrLeagueNotFound
	}
	return league, nil
}

func (s *levelService) List(ctx context.Context, id model.Identity, leagueID string) ([]dto.LeagueLevelResponse, error) {
	league, err := s.visibleLeague(ctx, id, leagueID)
	if err != nil {
		return nil, err
	}
	levels, err := s.repo.LeagueLevel.ListByLeague(ctx, leagueID)
	if err != nil {
		s.logger.Error("list league levels failed", zap.String("league_id", leagueID), zap.Error(err))
		return nil, err
	}
	out := make([]dto.LeagueLevelResponse, 0, len(levels))
	for i := range levels {
		out = append(out, levelResponse(&levels[i], league))
	}
	return out, nil
}

func (s *levelService) Add(ctx context.Context, id model.Identity, leagueID string, req *dto.CreateLeagueLevelRequest) (*dto.LeagueLevelResponse, error) {
	if !id.Role.Can(model.CapManageLeagues) {
		return nil, ErrForbidden
	}
	league, err := s.visibleLeague(ctx, id, leagueID)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.LevelName)
	if name == "" {
		return nil, pkgerrors.Validationf("level_name is required")
	}

	var level *model.LeagueLevel
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		existing, err := tx.LeagueLevel.FindByName(ctx, leagueID, name)
		switch {
		case err == nil && existing.IsActive:
			return ErrLevelExists
		case err == nil:
			if err := tx.LeagueLevel.Reactivate(ctx, existing.LeagueLevelID, strings.TrimSpace(req.Notes), id.UserID); err != nil {
				return err
			}
			existing.IsActive = true
			existing.Notes = strings.TrimSpace(req.Notes)
			level = existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			level = &model.LeagueLevel{
				LeagueID:  leagueID,
				LevelName: name,
				Notes:     strings.TrimSpace(req.Notes),
				IsActive:  true,
				BaseModel: model.BaseModel{CreatedBy: model.StringPtr(id.UserID)},
			}
			if err := tx.LeagueLevel.Create(ctx, level); err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return ErrLevelExists
				}
				return err
			}
		default:
			return err
		}
		return recordActivity(ctx, tx, id.UserID, ActionCreate, "league_level", level.LeagueLevelID,
			"Added level "+level.LevelName+" to "+league.Name,
			map[string]interface{}{"league_id": leagueID})
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("add league level failed", zap.String("league_id", leagueID), zap.Error(err))
		}
		return nil, err
	}
	resp := levelResponse(level, league)
	return &resp, nil
}

func (s *levelService) Remove(ctx context.Context, id model.Identity, leagueID, levelID string) error {
	if !id.Role.Can(model.CapManageLeagues) {
		return ErrForbidden
	}
	league, err := s.visibleLeague(ctx, id, leagueID)
	if err != nil {
		return err
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		n, err := tx.LeagueLevel.Deactivate(ctx, leagueID, levelID, id.UserID)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrLevelNotFound
		}
		return recordActivity(ctx, tx, id.UserID, ActionDeactivate, "league_level", levelID,
			"Removed a level from "+league.Name, map[string]interface{}{"league_id": leagueID})
	})
	if err != nil && !isBusinessError(err) {
		s.logger.Error("remove league level failed", zap.String("level_id", levelID), zap.Error(err))
	}
	return err
}

// syncLeagueLevels makes sure every comma separated name in levels exists
// as an active level of leagueID. Levels missing from the list are kept.
func syncLeagueLevels(ctx context.Context, tx *repository.Repository, leagueID, levels, actorID string) error {
	for _, name := range splitLevels(levels) {
		existing, err := tx.LeagueLevel.FindByName(ctx, leagueID, name)
		switch {
		case err == nil && existing.IsActive:
			continue
		case err == nil:
			if err := tx.LeagueLevel.Reactivate(ctx, existing.LeagueLevelID, existing.Notes, actorID); err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.LeagueLevel.Create(ctx, &model.LeagueLevel{
				LeagueID:  leagueID,
				LevelName: name,
				IsActive:  true,
				BaseModel: model.BaseModel{CreatedBy: model.StringPtr(actorID)},
			}); err != nil {
				return err
			}
		default:
			return err
		}
	}
	return nil
}

// splitLevels parses "Varsity, JV,,Freshman"; duplicates differing only in
// case collapse to the first spelling.
func splitLevels(raw string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		key := strings.ToLower(name)
		if name == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, name)
	}
	return out
}

func levelResponse(l *model.LeagueLevel, league *model.League) dto.LeagueLevelResponse {
	return dto.LeagueLevelResponse{
		ID:         l.LeagueLevelID,
		LeagueID:   l.LeagueID,
		LeagueName: league.Name,
		LevelName:  l.LevelName,
		Notes:      l.Notes,
		IsActive:   l.IsActive,
	}
}

// ────────────────────── Catalog ──────────────────────

func (s *levelService) Catalog(ctx context.Context, q *dto.CatalogQuery) ([]model.PredeterminedLevel, error) {
	levels, err := s.repo.Catalog.List(ctx, strings.TrimSpace(q.Sport), strings.TrimSpace(q.Category))
	if err != nil {
		s.logger.Error("list level catalog failed", zap.Error(err))
		return nil, err
	}
	return levels, nil
}

func (s *levelService) CatalogBySport(ctx context.Context, sport string) (*dto.SportCatalogResponse, error) {
	levels, err := s.repo.Catalog.List(ctx, sport, "")
	if err != nil {
		s.logger.Error("list level catalog failed", zap.String("sport", sport), zap.Error(err))
		return nil, err
	}
	resp := &dto.SportCatalogResponse{Sport: sport, Levels: make(map[string][]dto.CatalogEntry)}
	for _, l := range levels {
		resp.Levels[l.Category] = append(resp.Levels[l.Category], dto.CatalogEntry{
			ID:           l.PredeterminedLevelID,
			LevelName:    l.LevelName,
			DisplayOrder: l.DisplayOrder,
			Description:  l.Description,
		})
	}
	return resp, nil
}

func (s *levelService) Sports(ctx context.Context) ([]string, error) {
	sports, err := s.repo.Catalog.Sports(ctx)
	if err != nil {
		s.logger.Error("list catalog sports failed", zap.Error(err))
		return nil, err
	}
	return sports, nil
}

func (s *levelService) Categories(ctx context.Context, sport string) ([]string, error) {
	categories, err := s.repo.Catalog.Categories(ctx, strings.TrimSpace(sport))
	if err != nil {
		s.logger.Error("list catalog categories failed", zap.Error(err))
		return nil, err
	}
	return categories, nil
}
