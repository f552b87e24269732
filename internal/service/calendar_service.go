package service

import (
	"context"
	"errors"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sports-scheduler/config"
	"sports-scheduler/internal/dto"
	"sports-scheduler/internal/model"
	"sports-scheduler/internal/repository"
	"sports-scheduler/pkg/jwt"
	"sports-scheduler/pkg/validate"
)

const calendarProductID = "-//sports-scheduler//officials feed//EN"

// CalendarService issues signed feed links and renders an official's
// assignments as iCalendar.
type CalendarService interface {
	Link(ctx context.Context, id model.Identity) (*dto.CalendarLinkResponse, error)
	// Feed is reached without a session; the token is the credential.
	Feed(ctx context.Context, token string) ([]byte, error)
}

type calendarService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	logger *zap.Logger
	now    func() time.Time
}

// NewCalendarService creates a CalendarService.
func NewCalendarService(cfg *config.Config, repo *repository.Repository, jwtMgr *jwt.Manager, logger *zap.Logger) CalendarService {
	return &calendarService{cfg: cfg, repo: repo, jwtMgr: jwtMgr, logger: logger, now: time.Now}
}

func (s *calendarService) Link(ctx context.Context, id model.Identity) (*dto.CalendarLinkResponse, error) {
	if id.Role != model.RoleOfficial {
		return nil, ErrNotAnOfficial
	}
	token, expiresAt, err := s.jwtMgr.GenerateFeedToken(id.UserID)
	if err != nil {
		s.logger.Error("generate feed token failed", zap.String("user_id", id.UserID), zap.Error(err))
		return nil, err
	}
	return &dto.CalendarLinkResponse{
		URL:       strings.TrimRight(s.cfg.Server.BaseURL, "/") + "/api/v1/calendar/" + token,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
	}, nil
}

func (s *calendarService) Feed(ctx context.Context, token string) ([]byte, error) {
	claims, err := s.jwtMgr.ParseFeedToken(strings.TrimSuffix(token, ".ics"))
	if err != nil {
		return nil, ErrFeedTokenInvalid
	}

	user, err := s.repo.User.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeedTokenInvalid
		}
		s.logger.Error("load feed owner failed", zap.String("user_id", claims.UserID), zap.Error(err))
		return nil, err
	}
	if !user.IsActive || user.Role != model.RoleOfficial {
		return nil, ErrFeedTokenInvalid
	}

	scope := model.AccessScope{UserID: user.UserID, Role: model.RoleOfficial}
	assignments, _, err := s.repo.Assignment.List(ctx, scope,
		repository.AssignmentFilter{OfficialID: user.UserID}, 0, maxExportRows)
	if err != nil {
		s.logger.Error("load feed assignments failed", zap.String("user_id", user.UserID), zap.Error(err))
		return nil, err
	}

	return []byte(s.render(user, assignments)), nil
}

func (s *calendarService) render(user *model.User, assignments []model.Assignment) string {
	loc, err := time.LoadLocation(s.cfg.Calendar.Timezone)
	if err != nil {
		loc = time.UTC
	}
	length := s.cfg.Calendar.GameLength
	if length <= 0 {
		length = 2 * time.Hour
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(calendarProductID)
	cal.SetName("Assignments for " + displayName(user))
	cal.SetXWRTimezone(loc.String())

	stamp := s.now().UTC()
	for i := range assignments {
		a := &assignments[i]
		g := a.Game
		if g == nil || a.Status == model.AssignmentDeclined {
			continue
		}
		start, err := time.ParseInLocation(validate.DateLayout+" "+validate.TimeLayout, g.GameDate+" "+g.GameTime, loc)
		if err != nil {
			continue
		}

		event := cal.AddEvent(a.AssignmentID + "@sports-scheduler")
		event.SetDtStampTime(stamp)
		event.SetStartAt(start)
		event.SetEndAt(start.Add(length))
		event.SetSummary(g.Matchup() + " (" + a.Position + ")")
		if g.Location != "" {
			event.SetLocation(g.Location)
		}
		event.SetDescription(feedDescription(g, a))
		switch {
		case g.Status == model.GameStatusCancelled:
			event.SetStatus(ics.ObjectStatusCancelled)
		case a.Status == model.AssignmentAccepted:
			event.SetStatus(ics.ObjectStatusConfirmed)
		default:
			event.SetStatus(ics.ObjectStatusTentative)
		}
	}
	return cal.Serialize()
}

func feedDescription(g *model.Game, a *model.Assignment) string {
	parts := []string{g.Sport}
	if g.League != "" {
		parts = append(parts, g.League)
	}
	if g.Level != "" {
		parts = append(parts, g.Level)
	}
	desc := strings.Join(parts, " / ") + "\nStatus: " + a.Status
	if a.Fee != nil {
		desc += "\nFee: " + a.Fee.String()
	}
	return desc
}
