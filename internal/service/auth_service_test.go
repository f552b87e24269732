package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"sports-scheduler/internal/dto"
	"sports-scheduler/internal/model"
)

func (e *testEnv) userWithPassword(username string, role model.Role, password string) *model.User {
	u := e.store.addUser(username, role)
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u.PasswordHash = string(hash)
	return u
}

func TestLogin_Success(t *testing.T) {
	env := newTestEnv()
	env.userWithPassword("rita", model.RoleOfficial, "password123")

	resp, err := env.svc.Auth.Login(context.Background(), &dto.LoginRequest{Username: "rita", Password: "password123"})
	if err != nil {
		t.Fatalf("Login should succeed: %v", err)
	}
	if resp.User.Username != "rita" || resp.User.LastLoginAt == nil {
		t.Errorf("unexpected user in response: %+v", resp.User)
	}
	want := []string{"games:view", "assignments:view", "assignments:respond", "self:service"}
	if len(resp.Capabilities) != len(want) {
		t.Fatalf("expected %v, got %v", want, resp.Capabilities)
	}
	for i := range want {
		if resp.Capabilities[i] != want[i] {
			t.Errorf("capability %d: expected %s, got %s", i, want[i], resp.Capabilities[i])
		}
	}
	if len(env.store.logsFor(ActionLogin)) != 1 {
		t.Error("login should be recorded")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	env := newTestEnv()
	env.userWithPassword("rita", model.RoleOfficial, "password123")

	_, err := env.svc.Auth.Login(context.Background(), &dto.LoginRequest{Username: "rita", Password: "nope"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got: %v", err)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.Auth.Login(context.Background(), &dto.LoginRequest{Username: "ghost", Password: "password123"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got: %v", err)
	}
}

func TestLogin_Disabled(t *testing.T) {
	env := newTestEnv()
	u := env.userWithPassword("rita", model.RoleOfficial, "password123")
	u.IsActive = false
	ctx := context.Background()

	// a wrong password never reveals the account state
	_, err := env.svc.Auth.Login(ctx, &dto.LoginRequest{Username: "rita", Password: "nope"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got: %v", err)
	}
	_, err = env.svc.Auth.Login(ctx, &dto.LoginRequest{Username: "rita", Password: "password123"})
	if !errors.Is(err, ErrAccountDisabled) {
		t.Errorf("expected ErrAccountDisabled, got: %v", err)
	}
}

func TestMe_DeactivatedAfterLogin(t *testing.T) {
	env := newTestEnv()
	u := env.userWithPassword("rita", model.RoleOfficial, "password123")
	ctx := context.Background()

	if _, err := env.svc.Auth.Me(ctx, u.UserID); err != nil {
		t.Fatalf("Me should succeed: %v", err)
	}
	u.IsActive = false
	if _, err := env.svc.Auth.Me(ctx, u.UserID); !errors.Is(err, ErrAccountDisabled) {
		t.Errorf("expected ErrAccountDisabled, got: %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv()
	u := env.userWithPassword("rita", model.RoleOfficial, "password123")
	ctx := context.Background()

	err := env.svc.Auth.ChangePassword(ctx, identity(u), &dto.ChangePasswordRequest{CurrentPassword: "wrong", NewPassword: "newpassword1"})
	if !errors.Is(err, ErrWrongPassword) {
		t.Errorf("expected ErrWrongPassword, got: %v", err)
	}

	err = env.svc.Auth.ChangePassword(ctx, identity(u), &dto.ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "newpassword1"})
	if err != nil {
		t.Fatalf("ChangePassword should succeed: %v", err)
	}
	if _, err := env.svc.Auth.Login(ctx, &dto.LoginRequest{Username: "rita", Password: "newpassword1"}); err != nil {
		t.Errorf("login with the new password should succeed: %v", err)
	}
}

func TestBootstrap(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	if err := env.svc.Auth.Bootstrap(ctx); err != nil {
		t.Fatalf("Bootstrap should succeed: %v", err)
	}
	if err := env.svc.Auth.Bootstrap(ctx); err != nil {
		t.Fatalf("second Bootstrap should be a no-op: %v", err)
	}

	var supers int
	for _, u := range env.store.users {
		if u.Role == model.RoleSuperAdmin {
			supers++
		}
	}
	if supers != 1 {
		t.Errorf("expected exactly one superadmin, got %d", supers)
	}
	if _, err := env.svc.Auth.Login(ctx, &dto.LoginRequest{Username: "root", Password: "rootpassword"}); err != nil {
		t.Errorf("bootstrap account should be able to log in: %v", err)
	}
}
