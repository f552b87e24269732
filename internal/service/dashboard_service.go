package service

import (
	"context"
	"time"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"sports-scheduler/internal/dto"
	"sports-scheduler/internal/model"
	"sports-scheduler/internal/repository"
	"sports-scheduler/pkg/validate"
)

const (
	dashboardUpcomingLimit = 5
	dashboardActivityLimit = 10
)

// DashboardService computes the headline numbers of the home screen.
type DashboardService interface {
	Summary(ctx context.Context, id model.Identity) (*dto.DashboardResponse, error)
	OfficialStats(ctx context.Context, id model.Identity) (*repository.OfficialStats, error)
}

type dashboardService struct {
	repo   *repository.Repository
	access AccessService
	logger *zap.Logger
	now    func() time.Time
}

// NewDashboardService creates a DashboardService.
func NewDashboardService(repo *repository.Repository, access AccessService, logger *zap.Logger) DashboardService {
	return &dashboardService{repo: repo, access: access, logger: logger, now: time.Now}
}

// Summary runs the independent aggregates concurrently. All of them use the
// same scope predicate as the list endpoints.
func (s *dashboardService) Summary(ctx context.Context, id model.Identity) (*dto.DashboardResponse, error) {
	scope := s.access.ResolveScope(ctx, id)
	today := s.now().Format(validate.DateLayout)

	var resp dto.DashboardResponse
	p := pool.New().WithErrors().WithContext(ctx)

	p.Go(func(ctx context.Context) error {
		n, err := s.repo.Game.CountUpcoming(ctx, scope, today)
		resp.UpcomingGames = n
		return err
	})
	p.Go(func(ctx context.Context) error {
		n, err := s.repo.Assignment.Count(ctx, scope)
		resp.TotalAssignments = n
		return err
	})
	p.Go(func(ctx context.Context) error {
		n, err := s.repo.User.CountActiveOfficials(ctx, scope)
		resp.ActiveOfficials = n
		return err
	})
	p.Go(func(ctx context.Context) error {
		games, err := s.repo.Game.ListUpcoming(ctx, scope, today, dashboardUpcomingLimit)
		resp.RecentGames = games
		return err
	})
	if id.Role.Can(model.CapManageUsers) && scope.Unrestricted {
		p.Go(func(ctx context.Context) error {
			logs, err := s.repo.ActivityLog.ListRecent(ctx, "", dashboardActivityLimit)
			resp.RecentActivity = logs
			return err
		})
	}

	if err := p.Wait(); err != nil {
		s.logger.Error("dashboard summary failed", zap.String("user_id", id.UserID), zap.Error(err))
		return nil, err
	}
	if resp.RecentGames == nil {
		resp.RecentGames = []model.Game{}
	}
	return &resp, nil
}

func (s *dashboardService) OfficialStats(ctx context.Context, id model.Identity) (*repository.OfficialStats, error) {
	if id.Role != model.RoleOfficial {
		return nil, ErrNotAnOfficial
	}
	stats, err := s.repo.Assignment.StatsForOfficial(ctx, id.UserID, s.now().Format(validate.DateLayout))
	if err != nil {
		s.logger.Error("official stats failed", zap.String("user_id", id.UserID), zap.Error(err))
		return nil, err
	}
	return stats, nil
}
