package service

import (
	"go.uber.org/zap"

	"sports-scheduler/config"
	"sports-scheduler/internal/repository"
	"sports-scheduler/pkg/jwt"
	"sports-scheduler/pkg/storage"
)

// Service is the single entry point to every business service.
type Service struct {
	Access     AccessService
	Auth       AuthService
	User       UserService
	League     LeagueService
	Level      LevelService
	Location   LocationService
	Preset     FilterPresetService
	Fee        FeeService
	Billing    BillingService
	Game       GameService
	Assignment AssignmentService
	Dashboard  DashboardService
	Transfer   TransferService
	Export     ExportService
	Calendar   CalendarService
	Assistant  AssistantService
}

// NewService wires the services together.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	archiver storage.Archiver,
	logger *zap.Logger,
) *Service {
	access := NewAccessService(repo, logger)
	fees := NewFeeService(repo, access, logger)
	games := NewGameService(repo, access, fees, logger)
	assignments := NewAssignmentService(repo, access, fees, logger)

	return &Service{
		Access:     access,
		Auth:       NewAuthService(cfg, repo, logger),
		User:       NewUserService(repo, access, logger),
		League:     NewLeagueService(repo, access, logger),
		Level:      NewLevelService(repo, access, logger),
		Location:   NewLocationService(repo, logger),
		Preset:     NewFilterPresetService(repo, access, logger),
		Fee:        fees,
		Billing:    NewBillingService(repo, access, logger),
		Game:       games,
		Assignment: assignments,
		Dashboard:  NewDashboardService(repo, access, logger),
		Transfer:   NewTransferService(&cfg.Import, repo, access, games, assignments, logger),
		Export:     NewExportService(repo, access, archiver, logger),
		Calendar:   NewCalendarService(cfg, repo, jwtMgr, logger),
		Assistant:  NewAssistantService(repo, logger),
	}
}
