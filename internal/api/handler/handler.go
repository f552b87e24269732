package handler

import "sports-scheduler/internal/service"

// Handler groups every HTTP handler.
type Handler struct {
	Auth       *AuthHandler
	User       *UserHandler
	Game       *GameHandler
	Assignment *AssignmentHandler
	League     *LeagueHandler
	Level      *LevelHandler
	Location   *LocationHandler
	Preset     *FilterPresetHandler
	BillTo     *BillToHandler
	Self       *SelfHandler
	Dashboard  *DashboardHandler
	Calendar   *CalendarHandler
	Assistant  *AssistantHandler
}

// NewHandler builds the handlers over svc.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth),
		User:       NewUserHandler(svc.User),
		Game:       NewGameHandler(svc.Game, svc.Transfer, svc.Export),
		Assignment: NewAssignmentHandler(svc.Assignment, svc.Transfer, svc.Export),
		League:     NewLeagueHandler(svc.League, svc.Fee, svc.Billing),
		Level:      NewLevelHandler(svc.Level),
		Location:   NewLocationHandler(svc.Location),
		Preset:     NewFilterPresetHandler(svc.Preset),
		BillTo:     NewBillToHandler(svc.Billing),
		Self:       NewSelfHandler(svc.Assignment, svc.Dashboard, svc.User, svc.Calendar),
		Dashboard:  NewDashboardHandler(svc.Dashboard),
		Calendar:   NewCalendarHandler(svc.Calendar),
		Assistant:  NewAssistantHandler(svc.Assistant),
	}
}
