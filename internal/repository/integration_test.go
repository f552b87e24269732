//go:build integration

package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sports-scheduler/internal/model"
	"sports-scheduler/internal/repository"
	"sports-scheduler/pkg/database"
	pkgerrors "sports-scheduler/pkg/errors"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=scheduler password=scheduler dbname=scheduler_test sslmode=disable TimeZone=UTC"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect test database: %v\n", err)
		os.Exit(1)
	}

	sqlDB, err := testDB.DB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "get sql.DB: %v\n", err)
		os.Exit(1)
	}
	if err := database.RunMigrations(sqlDB, zap.NewNop()); err != nil {
		fmt.Fprintf(os.Stderr, "run migrations: %v\n", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

func unique(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// setupTestData creates an official, a league and one game in it.
func setupTestData(t *testing.T) (official *model.User, league *model.League, game *model.Game) {
	t.Helper()
	ctx := context.Background()
	repo := repository.NewRepository(testDB)

	official = &model.User{
		Username:     unique("ref"),
		PasswordHash: "$2a$10$placeholder",
		FullName:     "Test Official",
		Role:         model.RoleOfficial,
		IsActive:     true,
	}
	if err := repo.User.Create(ctx, official); err != nil {
		t.Fatalf("create user: %v", err)
	}

	league = &model.League{Name: unique("League"), Sport: "Basketball", Season: "2025", IsActive: true}
	if err := repo.League.Create(ctx, league); err != nil {
		t.Fatalf("create league: %v", err)
	}

	game = &model.Game{
		GameDate: "2025-10-01", GameTime: "19:00",
		HomeTeam: "Lakers", AwayTeam: "Warriors",
		Sport: "Basketball", League: league.Name,
		OfficialsNeeded: 2, Status: model.GameStatusScheduled,
		FeeSource: model.FeeSourceNone,
	}
	if err := repo.Game.Create(ctx, game); err != nil {
		t.Fatalf("create game: %v", err)
	}

	t.Cleanup(func() {
		testDB.Where("game_id = ?", game.GameID).Delete(&model.Assignment{})
		testDB.Where("game_id = ?", game.GameID).Delete(&model.Game{})
		testDB.Where("league_id = ?", league.LeagueID).Delete(&model.LeagueAssignment{})
		testDB.Where("league_id = ?", league.LeagueID).Delete(&model.League{})
		testDB.Where("user_id = ?", official.UserID).Delete(&model.User{})
	})
	return
}

// ═══════════════════════════════════════════════════════════
// Transactions
// ═══════════════════════════════════════════════════════════

func TestTransaction_Rollback(t *testing.T) {
	repo := repository.NewRepository(testDB)
	ctx := context.Background()
	boom := errors.New("boom")

	var leagueID string
	err := repo.Transaction(ctx, func(tx *repository.Repository) error {
		l := &model.League{Name: unique("Rollback"), Sport: "Soccer", Season: "2025", IsActive: true}
		if err := tx.League.Create(ctx, l); err != nil {
			return err
		}
		leagueID = l.LeagueID
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the callback error, got: %v", err)
	}

	if _, err := repo.League.GetByID(ctx, leagueID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("league should be rolled back, got: %v", err)
	}
}

func TestTransaction_Commit(t *testing.T) {
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	l := &model.League{Name: unique("Commit"), Sport: "Soccer", Season: "2025", IsActive: true}
	err := repo.Transaction(ctx, func(tx *repository.Repository) error {
		return tx.League.Create(ctx, l)
	})
	if err != nil {
		t.Fatalf("Transaction should commit: %v", err)
	}
	t.Cleanup(func() { testDB.Where("league_id = ?", l.LeagueID).Delete(&model.League{}) })

	found, err := repo.League.GetByID(ctx, l.LeagueID)
	if err != nil {
		t.Fatalf("league should be committed: %v", err)
	}
	if found.Name != l.Name {
		t.Errorf("name mismatch: %s vs %s", found.Name, l.Name)
	}
}

// ═══════════════════════════════════════════════════════════
// Games
// ═══════════════════════════════════════════════════════════

func TestGameUpdate_OptimisticLock(t *testing.T) {
	_, _, game := setupTestData(t)
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	stale := *game
	game.Notes = "moved to gym B"
	if err := repo.Game.Update(ctx, game); err != nil {
		t.Fatalf("first update should succeed: %v", err)
	}
	if game.Version != 2 {
		t.Errorf("expected version 2, got %d", game.Version)
	}

	stale.Notes = "lost update"
	if err := repo.Game.Update(ctx, &stale); !errors.Is(err, pkgerrors.ErrOptimisticLock) {
		t.Fatalf("expected ErrOptimisticLock, got: %v", err)
	}
}

func TestGameList_Scope(t *testing.T) {
	_, league, game := setupTestData(t)
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	scope := model.AccessScope{Role: model.RoleAssigner, LeagueIDs: []string{league.LeagueID}, LeagueNames: []string{league.Name}}
	games, total, err := repo.Game.List(ctx, scope, repository.GameFilter{}, 0, 50)
	if err != nil {
		t.Fatalf("List should succeed: %v", err)
	}
	if total != 1 || games[0].GameID != game.GameID {
		t.Errorf("expected only the league's game, got %d", total)
	}

	other := model.AccessScope{Role: model.RoleAssigner, LeagueIDs: []string{"00000000-0000-0000-0000-000000000000"}, LeagueNames: []string{unique("Nowhere")}}
	_, total, err = repo.Game.List(ctx, other, repository.GameFilter{}, 0, 50)
	if err != nil {
		t.Fatalf("List should succeed: %v", err)
	}
	if total != 0 {
		t.Errorf("foreign scope should see nothing, got %d", total)
	}
}

// ═══════════════════════════════════════════════════════════
// Assignments
// ═══════════════════════════════════════════════════════════

func TestAssignment_UniquePair(t *testing.T) {
	official, _, game := setupTestData(t)
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	first := &model.Assignment{GameID: game.GameID, OfficialID: official.UserID, Position: "Referee",
		Status: model.AssignmentPending, FeeSource: model.FeeSourceNone, AssignedBy: official.UserID}
	if err := repo.Assignment.Create(ctx, first); err != nil {
		t.Fatalf("first assignment should succeed: %v", err)
	}

	exists, err := repo.Assignment.ExistsPair(ctx, game.GameID, official.UserID, "")
	if err != nil || !exists {
		t.Fatalf("pair should exist: %v", err)
	}

	dup := &model.Assignment{GameID: game.GameID, OfficialID: official.UserID, Position: "Umpire",
		Status: model.AssignmentPending, FeeSource: model.FeeSourceNone, AssignedBy: official.UserID}
	if err := repo.Assignment.Create(ctx, dup); !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected gorm.ErrDuplicatedKey, got: %v", err)
	}
}

func TestLeagueAssignment_GrantReactivates(t *testing.T) {
	official, league, _ := setupTestData(t)
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	grant := func() {
		t.Helper()
		if err := repo.LeagueAssignment.Grant(ctx, &model.LeagueAssignment{UserID: official.UserID, LeagueID: league.LeagueID, AssignedBy: official.UserID}); err != nil {
			t.Fatalf("Grant should succeed: %v", err)
		}
	}
	grant()
	if err := repo.LeagueAssignment.Revoke(ctx, official.UserID, league.LeagueID); err != nil {
		t.Fatalf("Revoke should succeed: %v", err)
	}
	if active, _ := repo.LeagueAssignment.ListActiveByUser(ctx, official.UserID); len(active) != 0 {
		t.Fatalf("revoked membership should be inactive, got %d", len(active))
	}
	grant()

	active, err := repo.LeagueAssignment.ListActiveByUser(ctx, official.UserID)
	if err != nil || len(active) != 1 || active[0].League == nil {
		t.Fatalf("expected one active membership with league, got %d (%v)", len(active), err)
	}
}

// ═══════════════════════════════════════════════════════════
// Levels, catalog & presets
// ═══════════════════════════════════════════════════════════

func TestLeagueLevel_UniqueNamePerLeague(t *testing.T) {
	official, league, _ := setupTestData(t)
	repo := repository.NewRepository(testDB)
	ctx := context.Background()
	t.Cleanup(func() { testDB.Where("league_id = ?", league.LeagueID).Delete(&model.LeagueLevel{}) })

	if err := repo.LeagueLevel.Create(ctx, &model.LeagueLevel{LeagueID: league.LeagueID, LevelName: "Varsity", IsActive: true}); err != nil {
		t.Fatalf("create level: %v", err)
	}
	err := repo.LeagueLevel.Create(ctx, &model.LeagueLevel{LeagueID: league.LeagueID, LevelName: "VARSITY", IsActive: true})
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected gorm.ErrDuplicatedKey, got: %v", err)
	}

	found, err := repo.LeagueLevel.FindByName(ctx, league.LeagueID, "varsity")
	if err != nil || found.LevelName != "Varsity" {
		t.Fatalf("FindByName should ignore case, got %+v (%v)", found, err)
	}
	n, err := repo.LeagueLevel.Deactivate(ctx, league.LeagueID, found.LeagueLevelID, official.UserID)
	if err != nil || n != 1 {
		t.Fatalf("Deactivate should affect one row, got %d (%v)", n, err)
	}
	if levels, _ := repo.LeagueLevel.ListByLeague(ctx, league.LeagueID); len(levels) != 0 {
		t.Errorf("inactive level should not be listed, got %d", len(levels))
	}
}

func TestPredeterminedLevels_Seeded(t *testing.T) {
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	sports, err := repo.Catalog.Sports(ctx)
	if err != nil || len(sports) == 0 {
		t.Fatalf("catalog should be seeded, got %v (%v)", sports, err)
	}
	levels, err := repo.Catalog.List(ctx, "Basketball", "")
	if err != nil || len(levels) == 0 {
		t.Fatalf("expected basketball levels, got %d (%v)", len(levels), err)
	}
	for i := 1; i < len(levels); i++ {
		prev, cur := levels[i-1], levels[i]
		if prev.Category == cur.Category && prev.DisplayOrder > cur.DisplayOrder {
			t.Errorf("levels should follow display order within %s", cur.Category)
		}
	}
}

func TestFilterPreset_OneDefaultPerUser(t *testing.T) {
	official, _, _ := setupTestData(t)
	repo := repository.NewRepository(testDB)
	ctx := context.Background()
	t.Cleanup(func() { testDB.Where("user_id = ?", official.UserID).Delete(&model.FilterPreset{}) })

	first := &model.FilterPreset{UserID: official.UserID, PresetName: "A", FilterCriteria: `{"status":"pending"}`, IsDefault: true}
	if err := repo.FilterPreset.Create(ctx, first); err != nil {
		t.Fatalf("create preset: %v", err)
	}
	second := &model.FilterPreset{UserID: official.UserID, PresetName: "B", FilterCriteria: "{}", IsDefault: true}
	if err := repo.FilterPreset.Create(ctx, second); !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected gorm.ErrDuplicatedKey for a second default, got: %v", err)
	}

	if err := repo.FilterPreset.ClearDefault(ctx, official.UserID); err != nil {
		t.Fatalf("ClearDefault: %v", err)
	}
	second.FilterPresetID = ""
	if err := repo.FilterPreset.Create(ctx, second); err != nil {
		t.Fatalf("create after clearing default: %v", err)
	}
	presets, _ := repo.FilterPreset.ListByUser(ctx, official.UserID)
	if len(presets) != 2 || presets[0].PresetName != "B" {
		t.Errorf("default preset should come first, got %+v", presets)
	}
}
