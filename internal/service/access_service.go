package service

import (
	"context"

	"go.uber.org/zap"

	"sports-scheduler/internal/model"
	"sports-scheduler/internal/repository"
)

// AccessService resolves which leagues a caller may see and act on.
type AccessService interface {
	// ResolveScope never fails: a storage error yields an empty scope,
	// which every predicate treats as "nothing visible".
	ResolveScope(ctx context.Context, id model.Identity) model.AccessScope
	// ResolveAccessibleLeagues is ResolveScope for callers holding a bare
	// (user, role) pair.
	ResolveAccessibleLeagues(ctx context.Context, userID string, role model.Role) (leagueIDs, leagueNames []string, unrestricted bool)
	CanAccessLeague(ctx context.Context, id model.Identity, leagueID string) bool
}

type accessService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAccessService creates an AccessService.
func NewAccessService(repo *repository.Repository, logger *zap.Logger) AccessService {
	return &accessService{repo: repo, logger: logger}
}

func (s *accessService) ResolveScope(ctx context.Context, id model.Identity) model.AccessScope {
	scope := model.AccessScope{UserID: id.UserID, Role: id.Role}

	if id.Role == model.RoleSuperAdmin {
		scope.Unrestricted = true
		return scope
	}
	if !id.Role.Valid() || id.UserID == "" {
		return scope
	}

	rows, err := s.repo.LeagueAssignment.ListActiveByUser(ctx, id.UserID)
	if err != nil {
		s.logger.Warn("resolve access scope failed, denying all leagues",
			zap.String("user_id", id.UserID),
			zap.String("role", string(id.Role)),
			zap.Error(err),
		)
		return scope
	}

	seen := make(map[string]bool, len(rows))
	for _, la := range rows {
		if seen[la.LeagueID] {
			continue
		}
		seen[la.LeagueID] = true
		scope.LeagueIDs = append(scope.LeagueIDs, la.LeagueID)
		if la.League != nil && la.League.Name != "" {
			scope.LeagueNames = append(scope.LeagueNames, la.League.Name)
		}
	}
	return scope
}

func (s *accessService) ResolveAccessibleLeagues(ctx context.Context, userID string, role model.Role) ([]string, []string, bool) {
	scope := s.ResolveScope(ctx, model.Identity{UserID: userID, Role: role})
	return scope.LeagueIDs, scope.LeagueNames, scope.Unrestricted
}

func (s *accessService) CanAccessLeague(ctx context.Context, id model.Identity, leagueID string) bool {
	return s.ResolveScope(ctx, id).HasLeague(leagueID)
}
