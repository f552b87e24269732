package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"sports-scheduler/internal/model"
)

func feedToken(t *testing.T, url string) string {
	t.Helper()
	i := strings.LastIndex(url, "/calendar/")
	if i < 0 {
		t.Fatalf("unexpected feed url: %s", url)
	}
	return url[i+len("/calendar/"):]
}

func TestCalendarLink_OfficialsOnly(t *testing.T) {
	env := newTestEnv()
	assigner, _ := env.scopedAssigner()

	_, err := env.svc.Calendar.Link(context.Background(), identity(assigner))
	if !errors.Is(err, ErrNotAnOfficial) {
		t.Errorf("expected ErrNotAnOfficial, got: %v", err)
	}
}

func TestCalendarFeed(t *testing.T) {
	env := newTestEnv()
	ref := env.store.addUser("rita", model.RoleOfficial)
	accepted := env.store.addGame("Metro", "2025-10-01", "19:00")
	declined := env.store.addGame("Metro", "2025-10-02", "19:00")
	cancelled := env.store.addGame("Metro", "2025-10-03", "19:00")
	cancelled.Status = model.GameStatusCancelled

	a1 := env.store.addAssignment(accepted, ref)
	a1.Status = model.AssignmentAccepted
	a2 := env.store.addAssignment(declined, ref)
	a2.Status = model.AssignmentDeclined
	a3 := env.store.addAssignment(cancelled, ref)
	ctx := context.Background()

	link, err := env.svc.Calendar.Link(ctx, identity(ref))
	if err != nil {
		t.Fatalf("Link should succeed: %v", err)
	}
	if !strings.HasPrefix(link.URL, "http://sched.test/api/v1/calendar/") {
		t.Errorf("unexpected url: %s", link.URL)
	}

	body, err := env.svc.Calendar.Feed(ctx, feedToken(t, link.URL)+".ics")
	if err != nil {
		t.Fatalf("Feed should succeed: %v", err)
	}
	feed := string(body)
	if !strings.Contains(feed, "BEGIN:VCALENDAR") {
		t.Fatal("feed should be an iCalendar document")
	}
	if !strings.Contains(feed, a1.AssignmentID+"@sports-scheduler") || !strings.Contains(feed, "STATUS:CONFIRMED") {
		t.Error("accepted assignment should be a confirmed event")
	}
	if strings.Contains(feed, a2.AssignmentID) {
		t.Error("declined assignments are left out")
	}
	if !strings.Contains(feed, a3.AssignmentID) || !strings.Contains(feed, "STATUS:CANCELLED") {
		t.Error("cancelled game should be a cancelled event")
	}
}

func TestCalendarFeed_Rejections(t *testing.T) {
	env := newTestEnv()
	ref := env.store.addUser("rita", model.RoleOfficial)
	ctx := context.Background()

	if _, err := env.svc.Calendar.Feed(ctx, "garbage"); !errors.Is(err, ErrFeedTokenInvalid) {
		t.Errorf("expected ErrFeedTokenInvalid, got: %v", err)
	}

	link, err := env.svc.Calendar.Link(ctx, identity(ref))
	if err != nil {
		t.Fatalf("Link should succeed: %v", err)
	}
	ref.IsActive = false
	if _, err := env.svc.Calendar.Feed(ctx, feedToken(t, link.URL)); !errors.Is(err, ErrFeedTokenInvalid) {
		t.Errorf("deactivated official: expected ErrFeedTokenInvalid, got: %v", err)
	}
}
