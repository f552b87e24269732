package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"sports-scheduler/internal/dto"
	"sports-scheduler/internal/model"
	"sports-scheduler/internal/repository"
	pkgerrors "sports-scheduler/pkg/errors"
	"sports-scheduler/pkg/money"
)

// linkGroupPrefix names generated link groups: LINK-001, LINK-002, ...
const linkGroupPrefix = "LINK-"

// GameService manages games.
type GameService interface {
	List(ctx context.Context, id model.Identity, req *dto.GameListRequest) ([]dto.GameResponse, int64, error)
	Get(ctx context.Context, id model.Identity, gameID string) (*dto.GameResponse, error)
	Create(ctx context.Context, id model.Identity, req *dto.CreateGameRequest) (*model.Game, error)
	Update(ctx context.Context, id model.Identity, gameID string, req *dto.UpdateGameRequest) (*model.Game, error)
	Delete(ctx context.Context, id model.Identity, gameID string) error
	BulkLink(ctx context.Context, id model.Identity, req *dto.BulkLinkRequest) (int64, error)
	BulkUnlink(ctx context.Context, id model.Identity, gameIDs []string) (int64, error)
	BulkDelete(ctx context.Context, id model.Identity, gameIDs []string) (int64, error)
	NextLinkGroup(ctx context.Context, id model.Identity) (string, error)
}

type gameService struct {
	repo    *repository.Repository
	access  AccessService
	fees    FeeService
	checker *AssignmentChecker
	logger  *zap.Logger
}

// NewGameService creates a GameService.
func NewGameService(repo *repository.Repository, access AccessService, fees FeeService, logger *zap.Logger) GameService {
	return &gameService{repo: repo, access: access, fees: fees, checker: NewAssignmentChecker(), logger: logger}
}

// ────────────────────── List / Get ──────────────────────

func (s *gameService) List(ctx context.Context, id model.Identity, req *dto.GameListRequest) ([]dto.GameResponse, int64, error) {
	if !id.Role.Can(model.CapViewGames) {
		return nil, 0, ErrForbidden
	}
	scope := s.access.ResolveScope(ctx, id)

	filter := repository.GameFilter{
		Search:    strings.TrimSpace(req.Search),
		Sport:     req.Sport,
		League:    req.League,
		Level:     req.Level,
		Status:    req.Status,
		LinkGroup: req.LinkGroup,
		DateFrom:  req.DateFrom,
		DateTo:    req.DateTo,
	}
	games, total, err := s.repo.Game.List(ctx, scope, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list games failed", zap.Error(err))
		return nil, 0, err
	}

	result, err := s.withCounts(ctx, games)
	if err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func (s *gameService) withCounts(ctx context.Context, games []model.Game) ([]dto.GameResponse, error) {
	ids := make([]string, 0, len(games))
	for i := range games {
		ids = append(ids, games[i].GameID)
	}
	counts, err := s.repo.Assignment.CountByGames(ctx, ids)
	if err != nil {
		s.logger.Error("count assignments per game failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.GameResponse, 0, len(games))
	for i := range games {
		result = append(result, dto.GameResponse{Game: games[i], AssignedCount: counts[games[i].GameID]})
	}
	return result, nil
}

func (s *gameService) Get(ctx context.Context, id model.Identity, gameID string) (*dto.GameResponse, error) {
	if !id.Role.Can(model.CapViewGames) {
		return nil, ErrForbidden
	}
	scope := s.access.ResolveScope(ctx, id)

	var game *model.Game
	if id.Role == model.RoleOfficial {
		// officials see a game through their assignments
		games, err := s.repo.Game.ListByIDs(ctx, scope, []string{gameID})
		if err != nil {
			s.logger.Error("get game failed", zap.String("game_id", gameID), zap.Error(err))
			return nil, err
		}
		if len(games) == 0 {
			return nil, ErrGameNotFound
		}
		game = &games[0]
	} else {
		g, err := s.load(ctx, s.repo, gameID)
		if err != nil {
			return nil, err
		}
		if !scope.AllowsGame(g) {
			return nil, ErrGameNotFound
		}
		game = g
	}

	result, err := s.withCounts(ctx, []model.Game{*game})
	if err != nil {
		return nil, err
	}
	return &result[0], nil
}

// ────────────────────── Create ──────────────────────

func (s *gameService) Create(ctx context.Context, id model.Identity, req *dto.CreateGameRequest) (*model.Game, error) {
	if !id.Role.Can(model.CapManageGames) {
		return nil, ErrForbidden
	}
	scope := s.access.ResolveScope(ctx, id)

	game := &model.Game{
		GameDate:        req.Date,
		GameTime:        req.Time,
		HomeTeam:        strings.TrimSpace(req.HomeTeam),
		AwayTeam:        strings.TrimSpace(req.AwayTeam),
		Location:        strings.TrimSpace(req.Location),
		Sport:           strings.TrimSpace(req.Sport),
		League:          strings.TrimSpace(req.League),
		Level:           strings.TrimSpace(req.Level),
		OfficialsNeeded: req.OfficialsNeeded,
		Status:          model.GameStatusScheduled,
		Notes:           strings.TrimSpace(req.Notes),
		LinkGroup:       model.StringPtr(strings.TrimSpace(req.LinkGroup)),
		VersionedModel: model.VersionedModel{
			BaseModel: model.BaseModel{CreatedBy: model.StringPtr(id.UserID)},
			Version:   1,
		},
	}
	if game.OfficialsNeeded == 0 {
		game.OfficialsNeeded = 1
	}
	if game.HomeTeam == "" || game.AwayTeam == "" || game.Sport == "" {
		return nil, pkgerrors.Validationf("home_team, away_team and sport are required")
	}
	if !scope.AllowsGame(game) {
		return nil, ErrOutOfScope
	}

	fee, source, err := s.fees.DecideFee(ctx, game.League, game.Level, req.AssignedFee)
	if err != nil {
		return nil, err
	}
	game.AssignedFee = fee
	game.FeeSource = source

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Game.Create(ctx, game); err != nil {
			return err
		}
		return recordActivity(ctx, tx, id.UserID, ActionCreate, "game", game.GameID,
			fmt.Sprintf("Created game %s on %s %s", game.Matchup(), game.GameDate, game.GameTime),
			map[string]interface{}{
				"league":     game.League,
				"level":      game.Level,
				"fee":        formatFee(game.AssignedFee),
				"fee_source": string(game.FeeSource),
			})
	})
	if err != nil {
		s.logger.Error("create game failed", zap.Error(err))
		return nil, err
	}
	return game, nil
}

// ────────────────────── Update ──────────────────────

func (s *gameService) Update(ctx context.Context, id model.Identity, gameID string, req *dto.UpdateGameRequest) (*model.Game, error) {
	if !id.Role.Can(model.CapManageGames) {
		return nil, ErrForbidden
	}
	scope := s.access.ResolveScope(ctx, id)

	var updated *model.Game
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		game, err := s.load(ctx, tx, gameID)
		if err != nil {
			return err
		}
		if !scope.AllowsGame(game) {
			return ErrOutOfScope
		}
		if req.Version != nil && *req.Version != game.Version {
			return pkgerrors.ErrOptimisticLock
		}

		oldLeague, oldLevel := game.League, game.Level
		oldDate, oldTime := game.GameDate, game.GameTime
		applyGameUpdate(game, req)
		if !scope.AllowsGame(game) {
			// moving a game into a league outside the caller's scope
			return ErrOutOfScope
		}
		if game.GameDate != oldDate || game.GameTime != oldTime {
			// officials already on the game must stay free at the new slot
			if err := s.checker.CheckGameSlot(ctx, tx, game); err != nil {
				return err
			}
		}

		switch {
		case req.AssignedFee != nil:
			game.AssignedFee = money.Ptr(*req.AssignedFee)
			game.FeeSource = model.FeeSourceOverride
		case req.ClearFeeOverride,
			game.FeeSource != model.FeeSourceOverride && (game.League != oldLeague || !strings.EqualFold(game.Level, oldLevel)):
			fee, source, err := s.fees.DecideFee(ctx, game.League, game.Level, nil)
			if err != nil {
				return err
			}
			game.AssignedFee = fee
			game.FeeSource = source
		}

		game.UpdatedBy = model.StringPtr(id.UserID)
		if err := tx.Game.Update(ctx, game); err != nil {
			return err
		}
		updated = game
		return recordActivity(ctx, tx, id.UserID, ActionUpdate, "game", game.GameID,
			fmt.Sprintf("Updated game %s on %s %s", game.Matchup(), game.GameDate, game.GameTime),
			map[string]interface{}{"version": game.Version, "fee_source": string(game.FeeSource)})
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("update game failed", zap.String("game_id", gameID), zap.Error(err))
		}
		return nil, err
	}
	return updated, nil
}

func applyGameUpdate(g *model.Game, req *dto.UpdateGameRequest) {
	if req.Date != nil {
		g.GameDate = *req.Date
	}
	if req.Time != nil {
		g.GameTime = *req.Time
	}
	if req.HomeTeam != nil {
		g.HomeTeam = strings.TrimSpace(*req.HomeTeam)
	}
	if req.AwayTeam != nil {
		g.AwayTeam = strings.TrimSpace(*req.AwayTeam)
	}
	if req.Location != nil {
		g.Location = strings.TrimSpace(*req.Location)
	}
	if req.Sport != nil {
		g.Sport = strings.TrimSpace(*req.Sport)
	}
	if req.League != nil {
		g.League = strings.TrimSpace(*req.League)
	}
	if req.Level != nil {
		g.Level = strings.TrimSpace(*req.Level)
	}
	if req.OfficialsNeeded != nil {
		g.OfficialsNeeded = *req.OfficialsNeeded
	}
	if req.Status != nil {
		g.Status = *req.Status
	}
	if req.Notes != nil {
		g.Notes = strings.TrimSpace(*req.Notes)
	}
}

// ────────────────────── Delete ──────────────────────

func (s *gameService) Delete(ctx context.Context, id model.Identity, gameID string) error {
	if !id.Role.Can(model.CapManageGames) {
		return ErrForbidden
	}
	scope := s.access.ResolveScope(ctx, id)

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		game, err := s.load(ctx, tx, gameID)
		if err != nil {
			return err
		}
		if !scope.AllowsGame(game) {
			return ErrOutOfScope
		}
		// assignments go with the game (ON DELETE CASCADE)
		if err := tx.Game.Delete(ctx, gameID); err != nil {
			return err
		}
		return recordActivity(ctx, tx, id.UserID, ActionDelete, "game", gameID,
			fmt.Sprintf("Deleted game %s on %s %s", game.Matchup(), game.GameDate, game.GameTime), nil)
	})
	if err != nil && !isBusinessError(err) {
		s.logger.Error("delete game failed", zap.String("game_id", gameID), zap.Error(err))
	}
	return err
}

// ────────────────────── Bulk ──────────────────────

// scopedGames loads ids through the caller's scope and fails unless every
// id is visible.
func (s *gameService) scopedGames(ctx context.Context, repo *repository.Repository, scope model.AccessScope, ids []string) ([]string, []model.Game, error) {
	unique := uniqueStrings(ids)
	games, err := repo.Game.ListByIDs(ctx, scope, unique)
	if err != nil {
		return nil, nil, err
	}
	if len(games) != len(unique) {
		return nil, nil, ErrGameNotFound
	}
	return unique, games, nil
}

func (s *gameService) BulkLink(ctx context.Context, id model.Identity, req *dto.BulkLinkRequest) (int64, error) {
	if !id.Role.Can(model.CapManageGames) {
		return 0, ErrForbidden
	}
	group := strings.TrimSpace(req.LinkGroup)
	if group == "" {
		return 0, pkgerrors.Validationf("link_group is required")
	}
	if len(uniqueStrings(req.GameIDs)) < 2 {
		return 0, ErrLinkGroupTooSmall
	}
	scope := s.access.ResolveScope(ctx, id)

	var affected int64
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		ids, _, err := s.scopedGames(ctx, tx, scope, req.GameIDs)
		if err != nil {
			return err
		}
		affected, err = tx.Game.SetLinkGroup(ctx, ids, &group, id.UserID)
		if err != nil {
			return err
		}
		return recordActivity(ctx, tx, id.UserID, ActionLink, "game", group,
			fmt.Sprintf("Linked %d games as %s", affected, group),
			map[string]interface{}{"game_ids": ids})
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("bulk link games failed", zap.Error(err))
		}
		return 0, err
	}
	return affected, nil
}

func (s *gameService) BulkUnlink(ctx context.Context, id model.Identity, gameIDs []string) (int64, error) {
	if !id.Role.Can(model.CapManageGames) {
		return 0, ErrForbidden
	}
	scope := s.access.ResolveScope(ctx, id)

	var affected int64
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		ids, games, err := s.scopedGames(ctx, tx, scope, gameIDs)
		if err != nil {
			return err
		}
		// without the group, same-slot siblings become ordinary double bookings
		for i := range games {
			g := games[i]
			if g.LinkGroup == nil {
				continue
			}
			g.LinkGroup = nil
			if err := s.checker.CheckGameSlot(ctx, tx, &g); err != nil {
				return err
			}
		}
		affected, err = tx.Game.SetLinkGroup(ctx, ids, nil, id.UserID)
		if err != nil {
			return err
		}
		return recordActivity(ctx, tx, id.UserID, ActionUnlink, "game", "",
			fmt.Sprintf("Unlinked %d games", affected),
			map[string]interface{}{"game_ids": ids})
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("bulk unlink games failed", zap.Error(err))
		}
		return 0, err
	}
	return affected, nil
}

func (s *gameService) BulkDelete(ctx context.Context, id model.Identity, gameIDs []string) (int64, error) {
	if !id.Role.Can(model.CapManageGames) {
		return 0, ErrForbidden
	}
	scope := s.access.ResolveScope(ctx, id)

	var affected int64
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		ids, _, err := s.scopedGames(ctx, tx, scope, gameIDs)
		if err != nil {
			return err
		}
		affected, err = tx.Game.DeleteByIDs(ctx, ids)
		if err != nil {
			return err
		}
		return recordActivity(ctx, tx, id.UserID, ActionDelete, "game", "",
			fmt.Sprintf("Deleted %d games", affected),
			map[string]interface{}{"game_ids": ids})
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("bulk delete games failed", zap.Error(err))
		}
		return 0, err
	}
	return affected, nil
}

// NextLinkGroup suggests the next free LINK-NNN name.
func (s *gameService) NextLinkGroup(ctx context.Context, id model.Identity) (string, error) {
	if !id.Role.Can(model.CapManageGames) {
		return "", ErrForbidden
	}
	groups, err := s.repo.Game.ListLinkGroups(ctx, linkGroupPrefix)
	if err != nil {
		s.logger.Error("list link groups failed", zap.Error(err))
		return "", err
	}
	return nextLinkGroup(groups), nil
}

func nextLinkGroup(existing []string) string {
	max := 0
	for _, g := range existing {
		n, err := strconv.Atoi(strings.TrimPrefix(g, linkGroupPrefix))
		if err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s%03d", linkGroupPrefix, max+1)
}

// ── helpers ──

func (s *gameService) load(ctx context.Context, repo *repository.Repository, gameID string) (*model.Game, error) {
	game, err := repo.Game.GetByID(ctx, gameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		s.logger.Error("load game failed", zap.String("game_id", gameID), zap.Error(err))
		return nil, err
	}
	return game, nil
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
