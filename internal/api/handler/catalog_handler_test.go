package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sports-scheduler/internal/dto"
	"sports-scheduler/internal/model"
	"sports-scheduler/internal/service"
	"sports-scheduler/pkg/validate"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = validate.Register(v)
	}
}

const (
	leagueUUID   = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
	levelUUID    = "9a8b7c6d-5e4f-4a3b-9c2d-1e0f9a8b7c6d"
	locationUUID = "3d594650-3436-4e1a-8f0b-2c7e9d5a1b2c"
	presetUUID   = "e4d3c2b1-a0f9-4e8d-b7c6-a5b4c3d2e1f0"
)

var leagueAdmin = model.Identity{UserID: "b2c3d4e5-f6a7-4b8c-9d0e-1f2a3b4c5d6e", Role: model.RoleAdmin}

type mockLocationService struct {
	service.LocationService
	getFn func(ctx context.Context, locationID string) (*model.Location, error)
}

func (m *mockLocationService) Get(ctx context.Context, locationID string) (*model.Location, error) {
	return m.getFn(ctx, locationID)
}

type mockLevelService struct {
	service.LevelService
	addFn    func(ctx context.Context, id model.Identity, leagueID string, req *dto.CreateLeagueLevelRequest) (*dto.LeagueLevelResponse, error)
	removeFn func(ctx context.Context, id model.Identity, leagueID, levelID string) error
}

func (m *mockLevelService) Add(ctx context.Context, id model.Identity, leagueID string, req *dto.CreateLeagueLevelRequest) (*dto.LeagueLevelResponse, error) {
	return m.addFn(ctx, id, leagueID, req)
}

func (m *mockLevelService) Remove(ctx context.Context, id model.Identity, leagueID, levelID string) error {
	return m.removeFn(ctx, id, leagueID, levelID)
}

type mockLeagueService struct {
	service.LeagueService
	searchFn func(ctx context.Context, id model.Identity, req *dto.LeagueSearchRequest) ([]model.League, int64, error)
}

func (m *mockLeagueService) AdvancedSearch(ctx context.Context, id model.Identity, req *dto.LeagueSearchRequest) ([]model.League, int64, error) {
	return m.searchFn(ctx, id, req)
}

type mockUserService struct {
	service.UserService
	searchFn func(ctx context.Context, id model.Identity, req *dto.UserSearchRequest) (*dto.UserSearchResponse, error)
}

func (m *mockUserService) Search(ctx context.Context, id model.Identity, req *dto.UserSearchRequest) (*dto.UserSearchResponse, error) {
	return m.searchFn(ctx, id, req)
}

type mockFilterPresetService struct {
	service.FilterPresetService
	deleteFn func(ctx context.Context, id model.Identity, userID, presetID string) error
}

func (m *mockFilterPresetService) Delete(ctx context.Context, id model.Identity, userID, presetID string) error {
	return m.deleteFn(ctx, id, userID, presetID)
}

// ────────────────────── locations ──────────────────────

func TestGetLocation(t *testing.T) {
	locations := &mockLocationService{getFn: func(_ context.Context, locationID string) (*model.Location, error) {
		if locationID == locationUUID {
			return &model.Location{LocationID: locationID, Name: "North Gym", IsActive: true}, nil
		}
		return nil, service.ErrLocationNotFound
	}}
	r := newEngine()
	r.GET("/locations/:id", NewLocationHandler(locations).GetLocation)

	w := doJSON(r, http.MethodGet, "/locations/"+locationUUID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	for _, path := range []string{"/locations/" + gameUUID, "/locations/42"} {
		w = doJSON(r, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Equal(t, 19001, parseResponse(t, w).Code, path)
	}
}

// ────────────────────── levels ──────────────────────

func levelEngine(levels service.LevelService) *gin.Engine {
	h := NewLevelHandler(levels)
	r := newEngine()
	r.POST("/leagues/:id/levels", setIdentity(leagueAdmin), h.AddLevel)
	r.DELETE("/leagues/:id/levels/:level_id", setIdentity(leagueAdmin), h.RemoveLevel)
	return r
}

func TestAddLevel_Duplicate(t *testing.T) {
	levels := &mockLevelService{addFn: func(_ context.Context, _ model.Identity, leagueID string, req *dto.CreateLeagueLevelRequest) (*dto.LeagueLevelResponse, error) {
		assert.Equal(t, leagueUUID, leagueID)
		assert.Equal(t, "Varsity", req.LevelName)
		return nil, service.ErrLevelExists
	}}

	w := doJSON(levelEngine(levels), http.MethodPost, "/leagues/"+leagueUUID+"/levels", map[string]string{"level_name": "Varsity"})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, 13012, parseResponse(t, w).Code)
}

func TestRemoveLevel_MalformedIDs(t *testing.T) {
	levels := &mockLevelService{removeFn: func(context.Context, model.Identity, string, string) error {
		t.Fatal("service must not be reached")
		return nil
	}}
	r := levelEngine(levels)

	w := doJSON(r, http.MethodDelete, "/leagues/metro/levels/"+levelUUID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 13001, parseResponse(t, w).Code)

	w = doJSON(r, http.MethodDelete, "/leagues/"+leagueUUID+"/levels/jv", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 13011, parseResponse(t, w).Code)
}

// ────────────────────── league search ──────────────────────

func TestAdvancedSearch(t *testing.T) {
	leagues := &mockLeagueService{searchFn: func(_ context.Context, _ model.Identity, req *dto.LeagueSearchRequest) ([]model.League, int64, error) {
		if req.DateFrom > req.DateTo {
			return nil, 0, service.ErrInvalidDateRange
		}
		return []model.League{{LeagueID: leagueUUID, Name: "Metro"}}, 1, nil
	}}
	r := newEngine()
	r.POST("/leagues/advanced-search", setIdentity(leagueAdmin), NewLeagueHandler(leagues, nil, nil).AdvancedSearch)

	w := doJSON(r, http.MethodPost, "/leagues/advanced-search", map[string]string{"sport": "All", "date_from": "2025-01-01", "date_to": "2025-12-31"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/leagues/advanced-search", map[string]string{"date_from": "2025-12-31", "date_to": "2025-01-01"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 13013, parseResponse(t, w).Code)

	w = doJSON(r, http.MethodPost, "/leagues/advanced-search", map[string]string{"status": "Archived"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 10001, parseResponse(t, w).Code)
}

// ────────────────────── users ──────────────────────

func TestSearchUser(t *testing.T) {
	in := false
	users := &mockUserService{searchFn: func(_ context.Context, _ model.Identity, req *dto.UserSearchRequest) (*dto.UserSearchResponse, error) {
		if req.Email == "rita@example.com" {
			return &dto.UserSearchResponse{UserResponse: dto.UserResponse{ID: officialUUID, Username: "rita"}, AlreadyInLeague: &in}, nil
		}
		return nil, service.ErrUserNotFound
	}}
	r := newEngine()
	r.POST("/users/search", setIdentity(leagueAdmin), NewUserHandler(users).SearchUser)

	w := doJSON(r, http.MethodPost, "/users/search", map[string]string{"email": "rita@example.com"})
	require.Equal(t, http.StatusOK, w.Code)
	data, ok := parseResponse(t, w).Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, false, data["already_in_league"])

	w = doJSON(r, http.MethodPost, "/users/search", map[string]string{"email": "nobody@example.com"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 12001, parseResponse(t, w).Code)

	w = doJSON(r, http.MethodPost, "/users/search", map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeletePreset(t *testing.T) {
	presets := &mockFilterPresetService{deleteFn: func(_ context.Context, _ model.Identity, userID, presetID string) error {
		assert.Equal(t, officialUUID, userID)
		if presetID == presetUUID {
			return nil
		}
		return service.ErrPresetNotFound
	}}
	r := newEngine()
	r.DELETE("/users/:id/filter-presets/:preset_id", setIdentity(leagueAdmin), NewFilterPresetHandler(presets).DeletePreset)

	w := doJSON(r, http.MethodDelete, "/users/"+officialUUID+"/filter-presets/"+presetUUID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodDelete, "/users/"+officialUUID+"/filter-presets/"+levelUUID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 12011, parseResponse(t, w).Code)
}
