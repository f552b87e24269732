package service

import (
	"context"
	"errors"
	"testing"

	"sports-scheduler/internal/dto"
	"sports-scheduler/internal/model"
	"sports-scheduler/pkg/money"
)

func TestAssignmentCreate_AutomaticFee(t *testing.T) {
	env := newTestEnv()
	assigner, league := env.scopedAssigner()
	env.store.addFee(league, "varsity", 5000)
	game := env.store.addGame("Metro", "2025-10-01", "19:00")
	ref := env.store.addUser("rita", model.RoleOfficial)

	a, err := env.svc.Assignment.Create(context.Background(), identity(assigner), &dto.CreateAssignmentRequest{
		GameID:     game.GameID,
		OfficialID: ref.UserID,
	})
	if err != nil {
		t.Fatalf("Create should succeed: %v", err)
	}
	if a.Fee == nil || *a.Fee != 5000 {
		t.Fatalf("expected fee 50.00, got %s", formatFee(a.Fee))
	}
	if a.FeeSource != model.FeeSourceAutomatic {
		t.Errorf("expected automatic fee source, got %s", a.FeeSource)
	}
	if a.Position != model.DefaultPosition || a.Status != model.AssignmentPending {
		t.Errorf("unexpected defaults: position=%s status=%s", a.Position, a.Status)
	}
	if len(env.store.logsFor(ActionAssign)) != 1 {
		t.Errorf("expected one assign activity entry, got %d", len(env.store.logsFor(ActionAssign)))
	}
}

func TestAssignmentCreate_OverrideFee(t *testing.T) {
	env := newTestEnv()
	assigner, league := env.scopedAssigner()
	env.store.addFee(league, "Varsity", 5000)
	game := env.store.addGame("Metro", "2025-10-01", "19:00")
	ref := env.store.addUser("rita", model.RoleOfficial)

	override := money.Cents(7500)
	a, err := env.svc.Assignment.Create(context.Background(), identity(assigner), &dto.CreateAssignmentRequest{
		GameID:     game.GameID,
		OfficialID: ref.UserID,
		Fee:        &override,
	})
	if err != nil {
		t.Fatalf("Create should succeed: %v", err)
	}
	if a.Fee == nil || *a.Fee != 7500 || a.FeeSource != model.FeeSourceOverride {
		t.Errorf("expected override 75.00, got %s (%s)", formatFee(a.Fee), a.FeeSource)
	}
}

func TestAssignmentCreate_NoFeeConfigured(t *testing.T) {
	env := newTestEnv()
	assigner, _ := env.scopedAssigner()
	game := env.store.addGame("Metro", "2025-10-01", "19:00")
	ref := env.store.addUser("rita", model.RoleOfficial)

	a, err := env.svc.Assignment.Create(context.Background(), identity(assigner), &dto.CreateAssignmentRequest{
		GameID:     game.GameID,
		OfficialID: ref.UserID,
	})
	if err != nil {
		t.Fatalf("Create should succeed: %v", err)
	}
	if a.Fee != nil || a.FeeSource != model.FeeSourceNone {
		t.Errorf("expected no fee, got %s (%s)", formatFee(a.Fee), a.FeeSource)
	}
}

func TestAssignmentCreate_Duplicate(t *testing.T) {
	env := newTestEnv()
	assigner, _ := env.scopedAssigner()
	game := env.store.addGame("Metro", "2025-10-01", "19:00")
	ref := env.store.addUser("rita", model.RoleOfficial)
	env.store.addAssignment(game, ref)

	_, err := env.svc.Assignment.Create(context.Background(), identity(assigner), &dto.CreateAssignmentRequest{
		GameID:     game.GameID,
		OfficialID: ref.UserID,
	})
	if !errors.Is(err, ErrDuplicateAssignment) {
		t.Errorf("expected ErrDuplicateAssignment, got: %v", err)
	}
}

func TestAssignmentCreate_TimeConflict(t *testing.T) {
	env := newTestEnv()
	assigner, _ := env.scopedAssigner()
	first := env.store.addGame("Metro", "2025-10-01", "19:00")
	second := env.store.addGame("Metro", "2025-10-01", "19:00")
	ref := env.store.addUser("rita", model.RoleOfficial)
	env.store.addAssignment(first, ref)

	_, err := env.svc.Assignment.Create(context.Background(), identity(assigner), &dto.CreateAssignmentRequest{
		GameID:     second.GameID,
		OfficialID: ref.UserID,
	})
	if !errors.Is(err, ErrTimeConflict) {
		t.Errorf("expected ErrTimeConflict, got: %v", err)
	}
}

func TestAssignmentCreate_LinkedGamesShareSlot(t *testing.T) {
	env := newTestEnv()
	assigner, _ := env.scopedAssigner()
	first := env.store.addGame("Metro", "2025-10-01", "19:00")
	second := env.store.addGame("Metro", "2025-10-01", "19:00")
	group := "LINK-001"
	first.LinkGroup = &group
	second.LinkGroup = &group
	ref := env.store.addUser("rita", model.RoleOfficial)
	env.store.addAssignment(first, ref)

	_, err := env.svc.Assignment.Create(context.Background(), identity(assigner), &dto.CreateAssignmentRequest{
		GameID:     second.GameID,
		OfficialID: ref.UserID,
	})
	if err != nil {
		t.Errorf("linked games should not conflict: %v", err)
	}
}

func TestAssignmentCreate_OfficialChecks(t *testing.T) {
	env := newTestEnv()
	assigner, _ := env.scopedAssigner()
	game := env.store.addGame("Metro", "2025-10-01", "19:00")
	inactive := env.store.addUser("ivan", model.RoleOfficial)
	inactive.IsActive = false
	admin := env.store.addUser("adele", model.RoleAdmin)

	tests := []struct {
		name       string
		officialID string
		want       error
	}{
		{"missing official", "5f0c6c1e-4a0b-4d5e-9a43-0b8f0c5b6a11", ErrOfficialNotFound},
		{"not an official", admin.UserID, ErrOfficialNotFound},
		{"inactive official", inactive.UserID, ErrOfficialInactive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svc.Assignment.Create(context.Background(), identity(assigner), &dto.CreateAssignmentRequest{
				GameID:     game.GameID,
				OfficialID: tt.officialID,
			})
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got: %v", tt.want, err)
			}
		})
	}
}

func TestAssignmentCreate_OutOfScope(t *testing.T) {
	env := newTestEnv()
	assigner, _ := env.scopedAssigner()
	env.store.addLeague("Coastal", "2025")
	game := env.store.addGame("Coastal", "2025-10-01", "19:00")
	ref := env.store.addUser("rita", model.RoleOfficial)

	_, err := env.svc.Assignment.Create(context.Background(), identity(assigner), &dto.CreateAssignmentRequest{
		GameID:     game.GameID,
		OfficialID: ref.UserID,
	})
	if !errors.Is(err, ErrOutOfScope) {
		t.Errorf("expected ErrOutOfScope, got: %v", err)
	}
}

func TestAssignmentCreate_GameNotFound(t *testing.T) {
	env := newTestEnv()
	assigner, _ := env.scopedAssigner()
	ref := env.store.addUser("rita", model.RoleOfficial)

	_, err := env.svc.Assignment.Create(context.Background(), identity(assigner), &dto.CreateAssignmentRequest{
		GameID:     "0b7d3f55-9d0e-4f43-8f3c-2d1c6a7e9b20",
		OfficialID: ref.UserID,
	})
	if !errors.Is(err, ErrGameNotFound) {
		t.Errorf("expected ErrGameNotFound, got: %v", err)
	}
}

func TestAssignmentCreate_OfficialForbidden(t *testing.T) {
	env := newTestEnv()
	game := env.store.addGame("Metro", "2025-10-01", "19:00")
	ref := env.store.addUser("rita", model.RoleOfficial)

	_, err := env.svc.Assignment.Create(context.Background(), identity(ref), &dto.CreateAssignmentRequest{
		GameID:     game.GameID,
		OfficialID: ref.UserID,
	})
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got: %v", err)
	}
}

func TestAssignmentBulkCreate_PartialFailure(t *testing.T) {
	env := newTestEnv()
	assigner, _ := env.scopedAssigner()
	game := env.store.addGame("Metro", "2025-10-01", "19:00")
	other := env.store.addGame("Metro", "2025-10-02", "18:00")
	rita := env.store.addUser("rita", model.RoleOfficial)
	omar := env.store.addUser("omar", model.RoleOfficial)

	items := []dto.CreateAssignmentRequest{
		{GameID: game.GameID, OfficialID: rita.UserID},
		{GameID: game.GameID, OfficialID: rita.UserID},
		{GameID: "not-a-uuid", OfficialID: omar.UserID},
		{GameID: other.GameID, OfficialID: omar.UserID},
	}
	resp, err := env.svc.Assignment.BulkCreate(context.Background(), identity(assigner), items)
	if err != nil {
		t.Fatalf("BulkCreate should not fail as a whole: %v", err)
	}
	if resp.CreatedCount != 2 || len(resp.Created) != 2 {
		t.Errorf("expected 2 created, got %d", resp.CreatedCount)
	}
	if len(resp.Errors) != 2 {
		t.Fatalf("expected 2 item errors, got %d", len(resp.Errors))
	}
	if resp.Errors[0].Index != 1 || resp.Errors[0].Message != ErrDuplicateAssignment.Error() {
		t.Errorf("unexpected first error: %+v", resp.Errors[0])
	}
	if resp.Errors[1].Index != 2 {
		t.Errorf("expected the malformed item at index 2, got %d", resp.Errors[1].Index)
	}
	if len(env.store.assignments) != 2 {
		t.Errorf("expected 2 stored assignments, got %d", len(env.store.assignments))
	}
}

func TestAssignmentDelete_NotFoundWritesNoLog(t *testing.T) {
	env := newTestEnv()
	assigner, _ := env.scopedAssigner()

	err := env.svc.Assignment.Delete(context.Background(), identity(assigner), "7a1f3c0e-2b4d-4c6e-8f9a-1b2c3d4e5f60")
	if !errors.Is(err, ErrAssignmentNotFound) {
		t.Errorf("expected ErrAssignmentNotFound, got: %v", err)
	}
	if len(env.store.logs) != 0 {
		t.Errorf("no activity should be recorded, got %d entries", len(env.store.logs))
	}
}

func TestAssignmentDelete_Success(t *testing.T) {
	env := newTestEnv()
	assigner, _ := env.scopedAssigner()
	game := env.store.addGame("Metro", "2025-10-01", "19:00")
	ref := env.store.addUser("rita", model.RoleOfficial)
	a := env.store.addAssignment(game, ref)

	if err := env.svc.Assignment.Delete(context.Background(), identity(assigner), a.AssignmentID); err != nil {
		t.Fatalf("Delete should succeed: %v", err)
	}
	if _, ok := env.store.assignments[a.AssignmentID]; ok {
		t.Error("assignment should be gone")
	}
	logs := env.store.logsFor(ActionUnassign)
	if len(logs) != 1 || logs[0].Details == "" {
		t.Errorf("expected a described unassign entry, got %+v", logs)
	}
}

func TestAssignmentUpdate_ChangeOfficialResetsResponse(t *testing.T) {
	env := newTestEnv()
	assigner, _ := env.scopedAssigner()
	game := env.store.addGame("Metro", "2025-10-01", "19:00")
	rita := env.store.addUser("rita", model.RoleOfficial)
	omar := env.store.addUser("omar", model.RoleOfficial)
	a := env.store.addAssignment(game, rita)
	a.Status = model.AssignmentAccepted

	updated, err := env.svc.Assignment.Update(context.Background(), identity(assigner), a.AssignmentID, &dto.UpdateAssignmentRequest{
		OfficialID: &omar.UserID,
	})
	if err != nil {
		t.Fatalf("Update should succeed: %v", err)
	}
	if updated.OfficialID != omar.UserID || updated.Status != model.AssignmentPending {
		t.Errorf("expected omar pending, got %s %s", updated.OfficialID, updated.Status)
	}
}

func TestAssignmentUpdate_ChangeOfficialIntoDuplicate(t *testing.T) {
	env := newTestEnv()
	assigner, _ := env.scopedAssigner()
	game := env.store.addGame("Metro", "2025-10-01", "19:00")
	rita := env.store.addUser("rita", model.RoleOfficial)
	omar := env.store.addUser("omar", model.RoleOfficial)
	a := env.store.addAssignment(game, rita)
	env.store.addAssignment(game, omar)

	_, err := env.svc.Assignment.Update(context.Background(), identity(assigner), a.AssignmentID, &dto.UpdateAssignmentRequest{
		OfficialID: &omar.UserID,
	})
	if !errors.Is(err, ErrDuplicateAssignment) {
		t.Fatalf("expected ErrDuplicateAssignment, got: %v", err)
	}
	if env.store.assignments[a.AssignmentID].OfficialID != rita.UserID {
		t.Error("stored assignment must keep its official")
	}
}

func TestAssignmentUpdate_ChangeOfficialIntoTimeConflict(t *testing.T) {
	env := newTestEnv()
	assigner, _ := env.scopedAssigner()
	home := env.store.addGame("Metro", "2025-10-01", "19:00")
	across := env.store.addGame("Metro", "2025-10-01", "19:00")
	rita := env.store.addUser("rita", model.RoleOfficial)
	omar := env.store.addUser("omar", model.RoleOfficial)
	a := env.store.addAssignment(home, rita)
	env.store.addAssignment(across, omar)

	_, err := env.svc.Assignment.Update(context.Background(), identity(assigner), a.AssignmentID, &dto.UpdateAssignmentRequest{
		OfficialID: &omar.UserID,
	})
	if !errors.Is(err, ErrTimeConflict) {
		t.Fatalf("expected ErrTimeConflict, got: %v", err)
	}

	// rita's own row on home is not counted against the replacement
	lena := env.store.addUser("lena", model.RoleOfficial)
	updated, err := env.svc.Assignment.Update(context.Background(), identity(assigner), a.AssignmentID, &dto.UpdateAssignmentRequest{
		OfficialID: &lena.UserID,
	})
	if err != nil {
		t.Fatalf("a free official should be accepted: %v", err)
	}
	if updated.OfficialID != lena.UserID {
		t.Errorf("expected lena, got %s", updated.OfficialID)
	}
}

func TestAssignmentUpdate_BlankPositionFallsBack(t *testing.T) {
	env := newTestEnv()
	assigner, _ := env.scopedAssigner()
	game := env.store.addGame("Metro", "2025-10-01", "19:00")
	rita := env.store.addUser("rita", model.RoleOfficial)
	a := env.store.addAssignment(game, rita)
	ctx := context.Background()

	referee := "Referee"
	if _, err := env.svc.Assignment.Update(ctx, identity(assigner), a.AssignmentID, &dto.UpdateAssignmentRequest{Position: &referee}); err != nil {
		t.Fatalf("Update should succeed: %v", err)
	}
	blank := "   "
	updated, err := env.svc.Assignment.Update(ctx, identity(assigner), a.AssignmentID, &dto.UpdateAssignmentRequest{Position: &blank})
	if err != nil {
		t.Fatalf("Update should succeed: %v", err)
	}
	if updated.Position != model.DefaultPosition || env.store.assignments[a.AssignmentID].Position != model.DefaultPosition {
		t.Errorf("expected %q, got %q", model.DefaultPosition, updated.Position)
	}
}

func TestAssignmentRespond(t *testing.T) {
	env := newTestEnv()
	game := env.store.addGame("Metro", "2025-10-01", "19:00")
	rita := env.store.addUser("rita", model.RoleOfficial)
	omar := env.store.addUser("omar", model.RoleOfficial)
	a := env.store.addAssignment(game, rita)

	_, err := env.svc.Assignment.Respond(context.Background(), identity(omar), a.AssignmentID, &dto.RespondRequest{Status: model.AssignmentAccepted})
	if !errors.Is(err, ErrNotAssignedOfficial) {
		t.Errorf("expected ErrNotAssignedOfficial, got: %v", err)
	}

	updated, err := env.svc.Assignment.Respond(context.Background(), identity(rita), a.AssignmentID, &dto.RespondRequest{Status: model.AssignmentAccepted})
	if err != nil {
		t.Fatalf("Respond should succeed: %v", err)
	}
	if updated.Status != model.AssignmentAccepted || updated.RespondedAt == nil {
		t.Errorf("expected accepted with a response time, got %s", updated.Status)
	}

	_, err = env.svc.Assignment.Respond(context.Background(), identity(rita), a.AssignmentID, &dto.RespondRequest{Status: model.AssignmentDeclined})
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got: %v", err)
	}
}

func TestAssignmentList_OfficialSeesOwnOnly(t *testing.T) {
	env := newTestEnv()
	game := env.store.addGame("Metro", "2025-10-01", "19:00")
	rita := env.store.addUser("rita", model.RoleOfficial)
	omar := env.store.addUser("omar", model.RoleOfficial)
	env.store.addAssignment(game, rita)
	env.store.addAssignment(game, omar)

	rows, total, err := env.svc.Assignment.List(context.Background(), identity(rita), &dto.AssignmentListRequest{})
	if err != nil {
		t.Fatalf("List should succeed: %v", err)
	}
	if total != 1 || len(rows) != 1 || rows[0].OfficialID != rita.UserID {
		t.Errorf("official should see exactly their own assignment, got %d", total)
	}
}

func TestAssignmentGet_OutOfScopeIsNotFound(t *testing.T) {
	env := newTestEnv()
	assigner, _ := env.scopedAssigner()
	game := env.store.addGame("Coastal", "2025-10-01", "19:00")
	ref := env.store.addUser("rita", model.RoleOfficial)
	a := env.store.addAssignment(game, ref)

	_, err := env.svc.Assignment.Get(context.Background(), identity(assigner), a.AssignmentID)
	if !errors.Is(err, ErrAssignmentNotFound) {
		t.Errorf("expected ErrAssignmentNotFound, got: %v", err)
	}
}
