package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"sports-scheduler/config"
	"sports-scheduler/internal/model"
	"sports-scheduler/pkg/jwt"
	"sports-scheduler/pkg/storage"
)

// testEnv wires every service over one mock store.
type testEnv struct {
	store *mockStore
	svc   *Service
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 8080, BaseURL: "http://sched.test"},
		Calendar: config.CalendarConfig{
			TokenSecret: "calendar-secret-for-tests",
			TokenTTL:    24 * time.Hour,
			Timezone:    "America/Chicago",
			GameLength:  2 * time.Hour,
		},
		Import: config.ImportConfig{MaxRows: 100, Workers: 4},
		Bootstrap: config.BootstrapConfig{
			Username: "root",
			Password: "rootpassword",
			FullName: "Root Admin",
		},
	}
}

func newTestEnv() *testEnv {
	store := newMockStore()
	cfg := testConfig()
	archiver, _ := storage.NewArchiver(context.Background(), &cfg.Archive, zap.NewNop())
	svc := NewService(cfg, store.repo(), jwt.NewManager(&cfg.Calendar), archiver, zap.NewNop())
	return &testEnv{store: store, svc: svc}
}

func identity(u *model.User) model.Identity {
	return model.Identity{UserID: u.UserID, Role: u.Role}
}

// scopedAssigner seeds an assigner who belongs to a single league "Metro".
func (e *testEnv) scopedAssigner() (*model.User, *model.League) {
	league := e.store.addLeague("Metro", "2025")
	assigner := e.store.addUser("assigner", model.RoleAssigner)
	e.store.grant(assigner, league)
	return assigner, league
}
