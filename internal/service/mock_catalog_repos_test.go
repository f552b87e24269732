package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sports-scheduler/internal/model"
	"sports-scheduler/internal/repository"
)

// ── fixtures ──

func (s *mockStore) addLocation(name, city string) *model.Location {
	l := &model.Location{
		LocationID: uuid.NewString(),
		Name:       name,
		City:       city,
		IsActive:   true,
	}
	s.locations[l.LocationID] = l
	return l
}

func (s *mockStore) addLevel(league *model.League, name string) *model.LeagueLevel {
	l := &model.LeagueLevel{
		LeagueLevelID: uuid.NewString(),
		LeagueID:      league.LeagueID,
		LevelName:     name,
		IsActive:      true,
	}
	s.levels[l.LeagueLevelID] = l
	return l
}

func (s *mockStore) addCatalogLevel(sport, category, name string, order int) {
	s.catalog = append(s.catalog, model.PredeterminedLevel{
		PredeterminedLevelID: uuid.NewString(),
		Sport:                sport,
		Category:             category,
		LevelName:            name,
		DisplayOrder:         order,
		IsActive:             true,
	})
}

// ── Mock LocationRepository ──

type mockLocationRepo struct{ s *mockStore }

func (m *mockLocationRepo) Create(_ context.Context, loc *model.Location) error {
	loc.LocationID = uuid.NewString()
	loc.CreatedAt = time.Now()
	cp := *loc
	m.s.locations[loc.LocationID] = &cp
	return nil
}

func (m *mockLocationRepo) GetByID(_ context.Context, id string) (*model.Location, error) {
	if l, ok := m.s.locations[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLocationRepo) List(_ context.Context, filter repository.LocationFilter) ([]model.Location, error) {
	var out []model.Location
	for _, l := range m.s.locations {
		if !filter.IncludeInactive && !l.IsActive {
			continue
		}
		if filter.Search != "" && !containsFold(l.Name, filter.Search) && !containsFold(l.Address, filter.Search) && !containsFold(l.City, filter.Search) {
			continue
		}
		if filter.City != "" && !strings.EqualFold(l.City, filter.City) {
			continue
		}
		out = append(out, *l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockLocationRepo) Update(_ context.Context, loc *model.Location) error {
	cp := *loc
	m.s.locations[loc.LocationID] = &cp
	return nil
}

func (m *mockLocationRepo) Deactivate(_ context.Context, id, _ string) (int64, error) {
	l, ok := m.s.locations[id]
	if !ok || !l.IsActive {
		return 0, nil
	}
	l.IsActive = false
	return 1, nil
}

func (m *mockLocationRepo) ExistsName(_ context.Context, name, excludeID string) (bool, error) {
	for _, l := range m.s.locations {
		if l.IsActive && l.LocationID != excludeID && strings.EqualFold(l.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

// ── Mock LeagueLevelRepository ──

type mockLeagueLevelRepo struct{ s *mockStore }

func (m *mockLeagueLevelRepo) Create(_ context.Context, level *model.LeagueLevel) error {
	level.LeagueLevelID = uuid.NewString()
	cp := *level
	m.s.levels[level.LeagueLevelID] = &cp
	return nil
}

func (m *mockLeagueLevelRepo) ListByLeague(_ context.Context, leagueID string) ([]model.LeagueLevel, error) {
	var out []model.LeagueLevel
	for _, l := range m.s.levels {
		if l.LeagueID == leagueID && l.IsActive {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LevelName < out[j].LevelName })
	return out, nil
}

func (m *mockLeagueLevelRepo) FindByName(_ context.Context, leagueID, name string) (*model.LeagueLevel, error) {
	for _, l := range m.s.levels {
		if l.LeagueID == leagueID && strings.EqualFold(l.LevelName, name) {
			cp := *l
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLeagueLevelRepo) Reactivate(_ context.Context, id, notes, _ string) error {
	if l, ok := m.s.levels[id]; ok {
		l.IsActive = true
		l.Notes = notes
	}
	return nil
}

func (m *mockLeagueLevelRepo) Deactivate(_ context.Context, leagueID, id, _ string) (int64, error) {
	l, ok := m.s.levels[id]
	if !ok || l.LeagueID != leagueID || !l.IsActive {
		return 0, nil
	}
	l.IsActive = false
	return 1, nil
}

func (m *mockLeagueLevelRepo) DistinctNames(_ context.Context, scope model.AccessScope) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, l := range m.s.levels {
		league, ok := m.s.leagues[l.LeagueID]
		if !l.IsActive || !ok || !league.IsActive || !scope.HasLeague(l.LeagueID) || seen[l.LevelName] {
			continue
		}
		seen[l.LevelName] = true
		out = append(out, l.LevelName)
	}
	sort.Strings(out)
	return out, nil
}

// ── Mock PredeterminedLevelRepository ──

type mockCatalogRepo struct{ s *mockStore }

func (m *mockCatalogRepo) List(_ context.Context, sport, category string) ([]model.PredeterminedLevel, error) {
	var out []model.PredeterminedLevel
	for _, l := range m.s.catalog {
		if !l.IsActive || sport != "" && l.Sport != sport || category != "" && l.Category != category {
			continue
		}
		out = append(out, l)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Sport != out[j].Sport {
			return out[i].Sport < out[j].Sport
		}
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].DisplayOrder < out[j].DisplayOrder
	})
	return out, nil
}

func (m *mockCatalogRepo) Sports(ctx context.Context) ([]string, error) {
	rows, _ := m.List(ctx, "", "")
	return distinctOf(rows, func(l model.PredeterminedLevel) string { return l.Sport }), nil
}

func (m *mockCatalogRepo) Categories(ctx context.Context, sport string) ([]string, error) {
	rows, _ := m.List(ctx, sport, "")
	return distinctOf(rows, func(l model.PredeterminedLevel) string { return l.Category }), nil
}

func distinctOf(rows []model.PredeterminedLevel, field func(model.PredeterminedLevel) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range rows {
		if v := field(r); !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

// ── Mock FilterPresetRepository ──

type mockFilterPresetRepo struct{ s *mockStore }

func (m *mockFilterPresetRepo) Create(_ context.Context, preset *model.FilterPreset) error {
	for _, p := range m.s.presets {
		if preset.IsDefault && p.UserID == preset.UserID && p.IsDefault {
			// uk_filter_presets_default
			return gorm.ErrDuplicatedKey
		}
	}
	preset.FilterPresetID = uuid.NewString()
	cp := *preset
	m.s.presets[preset.FilterPresetID] = &cp
	return nil
}

func (m *mockFilterPresetRepo) ListByUser(_ context.Context, userID string) ([]model.FilterPreset, error) {
	var out []model.FilterPreset
	for _, p := range m.s.presets {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsDefault != out[j].IsDefault {
			return out[i].IsDefault
		}
		return out[i].PresetName < out[j].PresetName
	})
	return out, nil
}

func (m *mockFilterPresetRepo) ClearDefault(_ context.Context, userID string) error {
	for _, p := range m.s.presets {
		if p.UserID == userID {
			p.IsDefault = false
		}
	}
	return nil
}

func (m *mockFilterPresetRepo) Delete(_ context.Context, userID, id string) (int64, error) {
	p, ok := m.s.presets[id]
	if !ok || p.UserID != userID {
		return 0, nil
	}
	delete(m.s.presets, id)
	return 1, nil
}
