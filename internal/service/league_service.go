package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"sports-scheduler/internal/dto"
	"sports-scheduler/internal/model"
	"sports-scheduler/internal/repository"
	"sports-scheduler/pkg/validate"
)

// LeagueService manages leagues and their membership.
type LeagueService interface {
	List(ctx context.Context, id model.Identity, req *dto.LeagueListRequest) ([]model.League, int64, error)
	Get(ctx context.Context, id model.Identity, leagueID string) (*model.League, error)
	Create(ctx context.Context, id model.Identity, req *dto.CreateLeagueRequest) (*model.League, error)
	Update(ctx context.Context, id model.Identity, leagueID string, req *dto.UpdateLeagueRequest) (*model.League, error)
	Delete(ctx context.Context, id model.Identity, leagueID string) error
	AddMember(ctx context.Context, id model.Identity, leagueID string, req *dto.AddLeagueMemberRequest) error
	ListMembers(ctx context.Context, id model.Identity, leagueID string) ([]dto.LeagueMemberResponse, error)
	FilterOptions(ctx context.Context, id model.Identity) (*dto.LeagueFilterOptions, error)
	AdvancedSearch(ctx context.Context, id model.Identity, req *dto.LeagueSearchRequest) ([]model.League, int64, error)
}

type leagueService struct {
	repo   *repository.Repository
	access AccessService
	logger *zap.Logger
}

// NewLeagueService creates a LeagueService.
func NewLeagueService(repo *repository.Repository, access AccessService, logger *zap.Logger) LeagueService {
	return &leagueService{repo: repo, access: access, logger: logger}
}

func (s *leagueService) List(ctx context.Context, id model.Identity, req *dto.LeagueListRequest) ([]model.League, int64, error) {
	scope := s.access.ResolveScope(ctx, id)
	filter := repository.LeagueFilter{
		Search:          strings.TrimSpace(req.Search),
		Sport:           req.Sport,
		Season:          req.Season,
		IncludeInactive: req.IncludeInactive && id.Role.Can(model.CapManageLeagues),
	}
	leagues, total, err := s.repo.League.List(ctx, scope, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list leagues failed", zap.Error(err))
		return nil, 0, err
	}
	return leagues, total, nil
}

func (s *leagueService) Get(ctx context.Context, id model.Identity, leagueID string) (*model.League, error) {
	league, err := s.load(ctx, s.repo, leagueID)
	if err != nil {
		return nil, err
	}
	if !s.access.CanAccessLeague(ctx, id, leagueID) {
		// invisible leagues are reported as missing
		return nil, ErrLeagueNotFound
	}
	return league, nil
}

func (s *leagueService) Create(ctx context.Context, id model.Identity, req *dto.CreateLeagueRequest) (*model.League, error) {
	if !id.Role.Can(model.CapManageLeagues) {
		return nil, ErrForbidden
	}

	league := &model.League{
		Name:        strings.TrimSpace(req.Name),
		Sport:       strings.TrimSpace(req.Sport),
		Season:      strings.TrimSpace(req.Season),
		Levels:      strings.TrimSpace(req.Levels),
		Description: strings.TrimSpace(req.Description),
		IsActive:    true,
		BaseModel:   model.BaseModel{CreatedBy: model.StringPtr(id.UserID)},
	}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		exists, err := tx.League.ExistsNameSeason(ctx, league.Name, league.Season, "")
		if err != nil {
			return err
		}
		if exists {
			return ErrLeagueExists
		}
		if err := tx.League.Create(ctx, league); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrLeagueExists
			}
			return err
		}
		// a mid-level creator would otherwise lose sight of its own league
		if id.Role.IsMidLevel() {
			if err := tx.LeagueAssignment.Grant(ctx, &model.LeagueAssignment{
				UserID:     id.UserID,
				LeagueID:   league.LeagueID,
				AssignedBy: id.UserID,
			}); err != nil {
				return err
			}
		}
		if err := syncLeagueLevels(ctx, tx, league.LeagueID, league.Levels, id.UserID); err != nil {
			return err
		}
		return recordActivity(ctx, tx, id.UserID, ActionCreate, "league", league.LeagueID,
			"Created league "+league.Name+" ("+league.Season+")",
			map[string]interface{}{"sport": league.Sport, "season": league.Season})
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("create league failed", zap.String("name", league.Name), zap.Error(err))
		}
		return nil, err
	}
	return league, nil
}

func (s *leagueService) Update(ctx context.Context, id model.Identity, leagueID string, req *dto.UpdateLeagueRequest) (*model.League, error) {
	if !id.Role.Can(model.CapManageLeagues) {
		return nil, ErrForbidden
	}
	if !s.access.CanAccessLeague(ctx, id, leagueID) {
		return nil, ErrOutOfScope
	}

	var league *model.League
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		existing, err := s.load(ctx, tx, leagueID)
		if err != nil {
			return err
		}
		if req.Name != nil {
			existing.Name = strings.TrimSpace(*req.Name)
		}
		if req.Sport != nil {
			existing.Sport = strings.TrimSpace(*req.Sport)
		}
		if req.Season != nil {
			existing.Season = strings.TrimSpace(*req.Season)
		}
		if req.Levels != nil {
			existing.Levels = strings.TrimSpace(*req.Levels)
		}
		if req.Description != nil {
			existing.Description = strings.TrimSpace(*req.Description)
		}
		if req.IsActive != nil {
			existing.IsActive = *req.IsActive
		}

		if existing.IsActive {
			exists, err := tx.League.ExistsNameSeason(ctx, existing.Name, existing.Season, leagueID)
			if err != nil {
				return err
			}
			if exists {
				return ErrLeagueExists
			}
		}

		existing.UpdatedBy = model.StringPtr(id.UserID)
		if err := tx.League.Update(ctx, existing); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrLeagueExists
			}
			return err
		}
		if req.Levels != nil {
			if err := syncLeagueLevels(ctx, tx, leagueID, existing.Levels, id.UserID); err != nil {
				return err
			}
		}
		league = existing
		return recordActivity(ctx, tx, id.UserID, ActionUpdate, "league", leagueID,
			"Updated league "+existing.Name+" ("+existing.Season+")", nil)
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("update league failed", zap.String("league_id", leagueID), zap.Error(err))
		}
		return nil, err
	}
	return league, nil
}

// Delete deactivates the league. Games keep their league name.
func (s *leagueService) Delete(ctx context.Context, id model.Identity, leagueID string) error {
	if !id.Role.Can(model.CapManageLeagues) {
		return ErrForbidden
	}
	if !s.access.CanAccessLeague(ctx, id, leagueID) {
		return ErrOutOfScope
	}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		league, err := s.load(ctx, tx, leagueID)
		if err != nil {
			return err
		}
		if err := tx.League.Deactivate(ctx, leagueID, id.UserID); err != nil {
			return err
		}
		return recordActivity(ctx, tx, id.UserID, ActionDeactivate, "league", leagueID,
			"Deactivated league "+league.Name+" ("+league.Season+")", nil)
	})
	if err != nil && !isBusinessError(err) {
		s.logger.Error("delete league failed", zap.String("league_id", leagueID), zap.Error(err))
	}
	return err
}

// ────────────────────── Members ──────────────────────

func (s *leagueService) AddMember(ctx context.Context, id model.Identity, leagueID string, req *dto.AddLeagueMemberRequest) error {
	if !id.Role.Can(model.CapManageLeagues) {
		return ErrForbidden
	}
	if !s.access.CanAccessLeague(ctx, id, leagueID) {
		return ErrOutOfScope
	}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		league, err := s.load(ctx, tx, leagueID)
		if err != nil {
			return err
		}
		user, err := tx.User.GetByID(ctx, req.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if user.Role == model.RoleSuperAdmin && id.Role != model.RoleSuperAdmin {
			return ErrRoleNotAllowed
		}
		if err := tx.LeagueAssignment.Grant(ctx, &model.LeagueAssignment{
			UserID:     user.UserID,
			LeagueID:   leagueID,
			AssignedBy: id.UserID,
		}); err != nil {
			return err
		}
		return recordActivity(ctx, tx, id.UserID, ActionAssign, "league", leagueID,
			"Added "+displayName(user)+" to league "+league.Name,
			map[string]interface{}{"user_id": user.UserID})
	})
	if err != nil && !isBusinessError(err) {
		s.logger.Error("add league member failed", zap.String("league_id", leagueID), zap.Error(err))
	}
	return err
}

func (s *leagueService) ListMembers(ctx context.Context, id model.Identity, leagueID string) ([]dto.LeagueMemberResponse, error) {
	if !id.Role.Can(model.CapManageLeagues) {
		return nil, ErrForbidden
	}
	if _, err := s.Get(ctx, id, leagueID); err != nil {
		return nil, err
	}

	rows, err := s.repo.LeagueAssignment.ListByLeague(ctx, leagueID)
	if err != nil {
		s.logger.Error("list league members failed", zap.String("league_id", leagueID), zap.Error(err))
		return nil, err
	}
	members := make([]dto.LeagueMemberResponse, 0, len(rows))
	for _, la := range rows {
		m := dto.LeagueMemberResponse{UserID: la.UserID}
		if la.User != nil {
			m.Username = la.User.Username
			m.FullName = la.User.FullName
			m.Role = string(la.User.Role)
		}
		members = append(members, m)
	}
	return members, nil
}

// ────────────────────── Search ──────────────────────

func (s *leagueService) FilterOptions(ctx context.Context, id model.Identity) (*dto.LeagueFilterOptions, error) {
	scope := s.access.ResolveScope(ctx, id)
	sports, err := s.repo.League.DistinctSports(ctx, scope)
	if err != nil {
		s.logger.Error("list league sports failed", zap.Error(err))
		return nil, err
	}
	seasons, err := s.repo.League.DistinctSeasons(ctx, scope)
	if err != nil {
		s.logger.Error("list league seasons failed", zap.Error(err))
		return nil, err
	}
	levels, err := s.repo.LeagueLevel.DistinctNames(ctx, scope)
	if err != nil {
		s.logger.Error("list league levels failed", zap.Error(err))
		return nil, err
	}
	return &dto.LeagueFilterOptions{
		Sports:        nonNil(sports),
		Seasons:       nonNil(seasons),
		Levels:        nonNil(levels),
		StatusOptions: []string{dto.LeagueStatusActive, dto.LeagueStatusInactive, dto.LeagueStatusAll},
	}, nil
}

func (s *leagueService) AdvancedSearch(ctx context.Context, id model.Identity, req *dto.LeagueSearchRequest) ([]model.League, int64, error) {
	filter := repository.LeagueFilter{
		Search: strings.TrimSpace(req.Search),
		Sport:  allMeansAny(req.Sport),
		Season: allMeansAny(req.Season),
	}
	// only league managers see deactivated leagues
	if id.Role.Can(model.CapManageLeagues) {
		switch req.Status {
		case dto.LeagueStatusInactive:
			filter.IncludeInactive = true
			filter.OnlyInactive = true
		case dto.LeagueStatusAll:
			filter.IncludeInactive = true
		}
	} else if req.Status == dto.LeagueStatusInactive {
		return []model.League{}, 0, nil
	}

	if req.DateFrom != "" {
		from, err := time.Parse(validate.DateLayout, req.DateFrom)
		if err != nil {
			return nil, 0, ErrInvalidDateRange
		}
		filter.CreatedFrom = from
	}
	if req.DateTo != "" {
		to, err := time.Parse(validate.DateLayout, req.DateTo)
		if err != nil {
			return nil, 0, ErrInvalidDateRange
		}
		// date_to is inclusive
		filter.CreatedTo = to.AddDate(0, 0, 1)
	}
	if !filter.CreatedFrom.IsZero() && !filter.CreatedTo.IsZero() && !filter.CreatedFrom.Before(filter.CreatedTo) {
		return nil, 0, ErrInvalidDateRange
	}

	scope := s.access.ResolveScope(ctx, id)
	leagues, total, err := s.repo.League.List(ctx, scope, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("search leagues failed", zap.Error(err))
		return nil, 0, err
	}
	return leagues, total, nil
}

func allMeansAny(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, dto.LeagueStatusAll) {
		return ""
	}
	return v
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func (s *leagueService) load(ctx context.Context, repo *repository.Repository, leagueID string) (*model.League, error) {
	league, err := repo.League.GetByID(ctx, leagueID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeagueNotFound
		}
		s.logger.Error("load league failed", zap.String("league_id", leagueID), zap.Error(err))
		return nil, err
	}
	return league, nil
}
