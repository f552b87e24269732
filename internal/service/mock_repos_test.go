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
	pkgerrors "sports-scheduler/pkg/errors"
	"sports-scheduler/pkg/money"
)

// mockStore is the shared in-memory state behind every mock repository, so
// that scope filtering can look across tables the way the SQL predicates do.
type mockStore struct {
	users       map[string]*model.User
	leagues     map[string]*model.League
	memberships []*model.LeagueAssignment
	games       map[string]*model.Game
	assignments map[string]*model.Assignment
	fees        map[string]*model.LeagueFee
	billings    map[string]*model.LeagueBilling
	billTos     map[string]*model.BillToEntity
	logs        []model.ActivityLog
	locations   map[string]*model.Location
	levels      map[string]*model.LeagueLevel
	catalog     []model.PredeterminedLevel
	presets     map[string]*model.FilterPreset

	// membershipErr makes ListActiveByUser fail.
	membershipErr error
}

func newMockStore() *mockStore {
	return &mockStore{
		users:       make(map[string]*model.User),
		leagues:     make(map[string]*model.League),
		games:       make(map[string]*model.Game),
		assignments: make(map[string]*model.Assignment),
		fees:        make(map[string]*model.LeagueFee),
		billings:    make(map[string]*model.LeagueBilling),
		billTos:     make(map[string]*model.BillToEntity),
		locations:   make(map[string]*model.Location),
		levels:      make(map[string]*model.LeagueLevel),
		presets:     make(map[string]*model.FilterPreset),
	}
}

// repo assembles a Repository over the store. It has no database, so
// Transaction simply runs its callback.
func (s *mockStore) repo() *repository.Repository {
	return &repository.Repository{
		User:             &mockUserRepo{s},
		League:           &mockLeagueRepo{s},
		LeagueAssignment: &mockLeagueAssignmentRepo{s},
		Game:             &mockGameRepo{s},
		Assignment:       &mockAssignmentRepo{s},
		LeagueFee:        &mockLeagueFeeRepo{s},
		LeagueBilling:    &mockLeagueBillingRepo{s},
		BillTo:           &mockBillToRepo{s},
		ActivityLog:      &mockActivityLogRepo{s},
		Location:         &mockLocationRepo{s},
		LeagueLevel:      &mockLeagueLevelRepo{s},
		Catalog:          &mockCatalogRepo{s},
		FilterPreset:     &mockFilterPresetRepo{s},
	}
}

// ── fixtures ──

func (s *mockStore) addUser(username string, role model.Role) *model.User {
	u := &model.User{
		UserID:   uuid.NewString(),
		Username: username,
		FullName: strings.ToUpper(username[:1]) + username[1:],
		Role:     role,
		IsActive: true,
	}
	s.users[u.UserID] = u
	return u
}

func (s *mockStore) addLeague(name, season string) *model.League {
	l := &model.League{
		LeagueID: uuid.NewString(),
		Name:     name,
		Sport:    "Basketball",
		Season:   season,
		IsActive: true,
	}
	s.leagues[l.LeagueID] = l
	return l
}

func (s *mockStore) grant(user *model.User, league *model.League) {
	s.memberships = append(s.memberships, &model.LeagueAssignment{
		LeagueAssignmentID: uuid.NewString(),
		UserID:             user.UserID,
		LeagueID:           league.LeagueID,
		IsActive:           true,
	})
}

func (s *mockStore) addGame(league, date, clock string) *model.Game {
	g := &model.Game{
		GameID:          uuid.NewString(),
		GameDate:        date,
		GameTime:        clock,
		HomeTeam:        "Lakers",
		AwayTeam:        "Warriors",
		Sport:           "Basketball",
		League:          league,
		Level:           "Varsity",
		OfficialsNeeded: 2,
		Status:          model.GameStatusScheduled,
		FeeSource:       model.FeeSourceNone,
		VersionedModel:  model.VersionedModel{Version: 1},
	}
	s.games[g.GameID] = g
	return g
}

func (s *mockStore) addAssignment(game *model.Game, official *model.User) *model.Assignment {
	a := &model.Assignment{
		AssignmentID: uuid.NewString(),
		GameID:       game.GameID,
		OfficialID:   official.UserID,
		Position:     model.DefaultPosition,
		Status:       model.AssignmentPending,
		FeeSource:    model.FeeSourceNone,
	}
	s.assignments[a.AssignmentID] = a
	return a
}

func (s *mockStore) addFee(league *model.League, level string, fee int64) *model.LeagueFee {
	f := &model.LeagueFee{
		LeagueFeeID: uuid.NewString(),
		LeagueID:    league.LeagueID,
		LevelName:   level,
		IsActive:    true,
	}
	f.OfficialFee = money.Cents(fee)
	s.fees[f.LeagueFeeID] = f
	return f
}

func (s *mockStore) logsFor(action string) []model.ActivityLog {
	var out []model.ActivityLog
	for _, l := range s.logs {
		if l.Action == action {
			out = append(out, l)
		}
	}
	return out
}

// ── scope mirrors of the SQL predicates ──

func (s *mockStore) gameVisible(scope model.AccessScope, g *model.Game) bool {
	if scope.Role == model.RoleOfficial && !scope.Unrestricted {
		for _, a := range s.assignments {
			if a.GameID == g.GameID && a.OfficialID == scope.UserID {
				return true
			}
		}
		return false
	}
	return scope.AllowsGame(g)
}

func (s *mockStore) userVisible(scope model.AccessScope, u *model.User) bool {
	switch {
	case scope.Unrestricted:
		return true
	case scope.Role == model.RoleOfficial:
		return u.UserID == scope.UserID
	case !scope.Role.IsMidLevel():
		return false
	}
	for _, la := range s.memberships {
		if la.UserID == u.UserID && la.IsActive && scope.HasLeague(la.LeagueID) {
			return true
		}
	}
	return false
}

func (s *mockStore) assignmentVisible(scope model.AccessScope, a *model.Assignment) bool {
	if scope.Role == model.RoleOfficial && !scope.Unrestricted {
		return a.OfficialID == scope.UserID
	}
	g, ok := s.games[a.GameID]
	return ok && scope.AllowsGame(g)
}

func page[T any](rows []T, offset, limit int) []T {
	if offset >= len(rows) {
		return []T{}
	}
	end := len(rows)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return rows[offset:end]
}

// ── Mock UserRepository ──

type mockUserRepo struct{ s *mockStore }

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.s.users {
		if u.Username == user.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.UserID == "" {
		user.UserID = uuid.NewString()
	}
	m.s.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetActiveByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.s.users {
		if u.IsActive && u.Email != "" && strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ExistsUsernameOrEmail(_ context.Context, username, email, excludeID string) (bool, error) {
	for _, u := range m.s.users {
		if u.UserID == excludeID {
			continue
		}
		if (username != "" && u.Username == username) || (email != "" && strings.EqualFold(u.Email, email)) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	cp := *user
	m.s.users[user.UserID] = &cp
	return nil
}

func (m *mockUserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	if u, ok := m.s.users[id]; ok {
		u.PasswordHash = hash
	}
	return nil
}

func (m *mockUserRepo) TouchLastLogin(_ context.Context, id string, at time.Time) error {
	if u, ok := m.s.users[id]; ok {
		u.LastLoginAt = &at
	}
	return nil
}

func (m *mockUserRepo) SetActive(_ context.Context, id string, active bool, _ string) error {
	if u, ok := m.s.users[id]; ok {
		u.IsActive = active
	}
	return nil
}

func (m *mockUserRepo) List(_ context.Context, scope model.AccessScope, filter repository.UserFilter, offset, limit int) ([]model.User, int64, error) {
	var out []model.User
	for _, u := range m.s.users {
		if !m.s.userVisible(scope, u) {
			continue
		}
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.ActiveOnly && !u.IsActive {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(u.FullName+" "+u.Username), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return page(out, offset, limit), int64(len(out)), nil
}

func (m *mockUserRepo) Visible(_ context.Context, scope model.AccessScope, id string) (bool, error) {
	u, ok := m.s.users[id]
	return ok && m.s.userVisible(scope, u), nil
}

func (m *mockUserRepo) CountActiveOfficials(_ context.Context, scope model.AccessScope) (int64, error) {
	var n int64
	for _, u := range m.s.users {
		if u.Role == model.RoleOfficial && u.IsActive && m.s.userVisible(scope, u) {
			n++
		}
	}
	return n, nil
}

func (m *mockUserRepo) CountByRole(_ context.Context, role model.Role) (int64, error) {
	var n int64
	for _, u := range m.s.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

// ── Mock LeagueRepository ──

type mockLeagueRepo struct{ s *mockStore }

func (m *mockLeagueRepo) Create(_ context.Context, league *model.League) error {
	if league.LeagueID == "" {
		league.LeagueID = uuid.NewString()
	}
	m.s.leagues[league.LeagueID] = league
	return nil
}

func (m *mockLeagueRepo) GetByID(_ context.Context, id string) (*model.League, error) {
	if l, ok := m.s.leagues[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLeagueRepo) GetActiveByName(_ context.Context, name string) (*model.League, error) {
	for _, l := range m.s.leagues {
		if l.Name == name && l.IsActive {
			cp := *l
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLeagueRepo) ExistsNameSeason(_ context.Context, name, season, excludeID string) (bool, error) {
	for _, l := range m.s.leagues {
		if l.LeagueID != excludeID && l.IsActive && l.Name == name && l.Season == season {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockLeagueRepo) Update(_ context.Context, league *model.League) error {
	cp := *league
	m.s.leagues[league.LeagueID] = &cp
	return nil
}

func (m *mockLeagueRepo) Deactivate(_ context.Context, id, _ string) error {
	if l, ok := m.s.leagues[id]; ok {
		l.IsActive = false
	}
	return nil
}

func (m *mockLeagueRepo) List(_ context.Context, scope model.AccessScope, filter repository.LeagueFilter, offset, limit int) ([]model.League, int64, error) {
	var out []model.League
	for _, l := range m.s.leagues {
		if !scope.HasLeague(l.LeagueID) {
			continue
		}
		if filter.OnlyInactive && l.IsActive || !filter.OnlyInactive && !filter.IncludeInactive && !l.IsActive {
			continue
		}
		if filter.Search != "" && !containsFold(l.Name, filter.Search) && !containsFold(l.Description, filter.Search) && !containsFold(l.Sport, filter.Search) {
			continue
		}
		if !filter.CreatedFrom.IsZero() && l.CreatedAt.Before(filter.CreatedFrom) {
			continue
		}
		if !filter.CreatedTo.IsZero() && !l.CreatedAt.Before(filter.CreatedTo) {
			continue
		}
		if filter.Sport != "" && l.Sport != filter.Sport {
			continue
		}
		if filter.Season != "" && l.Season != filter.Season {
			continue
		}
		out = append(out, *l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, offset, limit), int64(len(out)), nil
}

func (m *mockLeagueRepo) DistinctSports(_ context.Context, scope model.AccessScope) ([]string, error) {
	return m.distinct(scope, func(l *model.League) string { return l.Sport }), nil
}

func (m *mockLeagueRepo) DistinctSeasons(_ context.Context, scope model.AccessScope) ([]string, error) {
	return m.distinct(scope, func(l *model.League) string { return l.Season }), nil
}

func (m *mockLeagueRepo) distinct(scope model.AccessScope, field func(*model.League) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, l := range m.s.leagues {
		v := field(l)
		if !l.IsActive || !scope.HasLeague(l.LeagueID) || v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// ── Mock LeagueAssignmentRepository ──

type mockLeagueAssignmentRepo struct{ s *mockStore }

func (m *mockLeagueAssignmentRepo) ListActiveByUser(_ context.Context, userID string) ([]model.LeagueAssignment, error) {
	if m.s.membershipErr != nil {
		return nil, m.s.membershipErr
	}
	var out []model.LeagueAssignment
	for _, la := range m.s.memberships {
		league, ok := m.s.leagues[la.LeagueID]
		if la.UserID != userID || !la.IsActive || !ok || !league.IsActive {
			continue
		}
		row := *la
		row.League = league
		out = append(out, row)
	}
	return out, nil
}

func (m *mockLeagueAssignmentRepo) ListByLeague(_ context.Context, leagueID string) ([]model.LeagueAssignment, error) {
	var out []model.LeagueAssignment
	for _, la := range m.s.memberships {
		if la.LeagueID == leagueID && la.IsActive {
			row := *la
			row.User = m.s.users[la.UserID]
			out = append(out, row)
		}
	}
	return out, nil
}

func (m *mockLeagueAssignmentRepo) Grant(_ context.Context, la *model.LeagueAssignment) error {
	for _, existing := range m.s.memberships {
		if existing.UserID == la.UserID && existing.LeagueID == la.LeagueID {
			existing.IsActive = true
			return nil
		}
	}
	la.IsActive = true
	if la.LeagueAssignmentID == "" {
		la.LeagueAssignmentID = uuid.NewString()
	}
	m.s.memberships = append(m.s.memberships, la)
	return nil
}

func (m *mockLeagueAssignmentRepo) IsMemberOfAny(_ context.Context, userID string, leagueIDs []string) (bool, error) {
	for _, la := range m.s.memberships {
		if la.UserID != userID || !la.IsActive {
			continue
		}
		for _, id := range leagueIDs {
			if la.LeagueID == id {
				return true, nil
			}
		}
	}
	return false, nil
}

func (m *mockLeagueAssignmentRepo) Revoke(_ context.Context, userID, leagueID string) error {
	for _, la := range m.s.memberships {
		if la.UserID == userID && la.LeagueID == leagueID {
			la.IsActive = false
		}
	}
	return nil
}

// ── Mock GameRepository ──

type mockGameRepo struct{ s *mockStore }

func (m *mockGameRepo) Create(_ context.Context, game *model.Game) error {
	if game.GameID == "" {
		game.GameID = uuid.NewString()
	}
	m.s.games[game.GameID] = game
	return nil
}

func (m *mockGameRepo) GetByID(_ context.Context, id string) (*model.Game, error) {
	if g, ok := m.s.games[id]; ok {
		cp := *g
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGameRepo) Update(_ context.Context, game *model.Game) error {
	stored, ok := m.s.games[game.GameID]
	if !ok || stored.Version != game.Version {
		return pkgerrors.ErrOptimisticLock
	}
	cp := *game
	cp.Version++
	game.Version = cp.Version
	m.s.games[game.GameID] = &cp
	return nil
}

func (m *mockGameRepo) Delete(_ context.Context, id string) error {
	delete(m.s.games, id)
	for aid, a := range m.s.assignments {
		if a.GameID == id {
			delete(m.s.assignments, aid)
		}
	}
	return nil
}

func (m *mockGameRepo) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	var n int64
	for _, id := range ids {
		if _, ok := m.s.games[id]; ok {
			_ = m.Delete(ctx, id)
			n++
		}
	}
	return n, nil
}

func (m *mockGameRepo) sorted(scope model.AccessScope, keep func(*model.Game) bool) []model.Game {
	var out []model.Game
	for _, g := range m.s.games {
		if m.s.gameVisible(scope, g) && keep(g) {
			out = append(out, *g)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].GameDate != out[j].GameDate {
			return out[i].GameDate < out[j].GameDate
		}
		return out[i].GameTime < out[j].GameTime
	})
	return out
}

func (m *mockGameRepo) List(_ context.Context, scope model.AccessScope, filter repository.GameFilter, offset, limit int) ([]model.Game, int64, error) {
	out := m.sorted(scope, func(g *model.Game) bool {
		return (filter.Sport == "" || g.Sport == filter.Sport) &&
			(filter.League == "" || g.League == filter.League) &&
			(filter.Status == "" || g.Status == filter.Status) &&
			(filter.DateFrom == "" || g.GameDate >= filter.DateFrom) &&
			(filter.DateTo == "" || g.GameDate <= filter.DateTo)
	})
	return page(out, offset, limit), int64(len(out)), nil
}

func (m *mockGameRepo) ListByIDs(_ context.Context, scope model.AccessScope, ids []string) ([]model.Game, error) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	return m.sorted(scope, func(g *model.Game) bool { return want[g.GameID] }), nil
}

func (m *mockGameRepo) SetLinkGroup(_ context.Context, ids []string, group *string, _ string) (int64, error) {
	var n int64
	for _, id := range ids {
		if g, ok := m.s.games[id]; ok {
			g.LinkGroup = group
			g.Version++
			n++
		}
	}
	return n, nil
}

func (m *mockGameRepo) ListLinkGroups(_ context.Context, prefix string) ([]string, error) {
	var out []string
	for _, g := range m.s.games {
		if g.LinkGroup != nil && strings.HasPrefix(*g.LinkGroup, prefix) {
			out = append(out, *g.LinkGroup)
		}
	}
	return out, nil
}

func (m *mockGameRepo) CountUpcoming(_ context.Context, scope model.AccessScope, today string) (int64, error) {
	out := m.sorted(scope, func(g *model.Game) bool {
		return g.GameDate >= today && g.Status == model.GameStatusScheduled
	})
	return int64(len(out)), nil
}

func (m *mockGameRepo) ListUpcoming(_ context.Context, scope model.AccessScope, today string, limit int) ([]model.Game, error) {
	out := m.sorted(scope, func(g *model.Game) bool {
		return g.GameDate >= today && g.Status == model.GameStatusScheduled
	})
	return page(out, 0, limit), nil
}

// ── Mock AssignmentRepository ──

type mockAssignmentRepo struct{ s *mockStore }

func (m *mockAssignmentRepo) Create(_ context.Context, a *model.Assignment) error {
	for _, existing := range m.s.assignments {
		if existing.GameID == a.GameID && existing.OfficialID == a.OfficialID {
			return gorm.ErrDuplicatedKey
		}
	}
	if a.AssignmentID == "" {
		a.AssignmentID = uuid.NewString()
	}
	cp := *a
	cp.Game, cp.Official = nil, nil
	m.s.assignments[a.AssignmentID] = &cp
	return nil
}

func (m *mockAssignmentRepo) load(a *model.Assignment) *model.Assignment {
	cp := *a
	if g, ok := m.s.games[a.GameID]; ok {
		gc := *g
		cp.Game = &gc
	}
	if u, ok := m.s.users[a.OfficialID]; ok {
		uc := *u
		cp.Official = &uc
	}
	return &cp
}

func (m *mockAssignmentRepo) GetByID(_ context.Context, id string) (*model.Assignment, error) {
	if a, ok := m.s.assignments[id]; ok {
		return m.load(a), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) Update(_ context.Context, a *model.Assignment) error {
	cp := *a
	cp.Game, cp.Official = nil, nil
	m.s.assignments[a.AssignmentID] = &cp
	return nil
}

func (m *mockAssignmentRepo) Delete(_ context.Context, id string) (int64, error) {
	if _, ok := m.s.assignments[id]; !ok {
		return 0, nil
	}
	delete(m.s.assignments, id)
	return 1, nil
}

func (m *mockAssignmentRepo) ExistsPair(_ context.Context, gameID, officialID, excludeID string) (bool, error) {
	for _, a := range m.s.assignments {
		if a.AssignmentID != excludeID && a.GameID == gameID && a.OfficialID == officialID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockAssignmentRepo) FindByOfficialAndSlot(_ context.Context, officialID, date, clock, excludeGameID, excludeID string) ([]model.Assignment, error) {
	var out []model.Assignment
	for _, a := range m.s.assignments {
		if a.OfficialID != officialID || a.GameID == excludeGameID || a.AssignmentID == excludeID {
			continue
		}
		g, ok := m.s.games[a.GameID]
		if ok && g.GameDate == date && g.GameTime == clock {
			out = append(out, *m.load(a))
		}
	}
	return out, nil
}

func (m *mockAssignmentRepo) ListByGame(_ context.Context, gameID string) ([]model.Assignment, error) {
	var out []model.Assignment
	for _, a := range m.s.assignments {
		if a.GameID == gameID {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AssignmentID < out[j].AssignmentID })
	return out, nil
}

func (m *mockAssignmentRepo) List(_ context.Context, scope model.AccessScope, filter repository.AssignmentFilter, offset, limit int) ([]model.Assignment, int64, error) {
	var out []model.Assignment
	for _, a := range m.s.assignments {
		if !m.s.assignmentVisible(scope, a) {
			continue
		}
		if (filter.GameID != "" && a.GameID != filter.GameID) ||
			(filter.OfficialID != "" && a.OfficialID != filter.OfficialID) ||
			(filter.Status != "" && a.Status != filter.Status) {
			continue
		}
		out = append(out, *m.load(a))
	}
	sort.Slice(out, func(i, j int) bool {
		gi, gj := out[i].Game, out[j].Game
		if gi != nil && gj != nil && gi.GameDate != gj.GameDate {
			return gi.GameDate < gj.GameDate
		}
		return out[i].AssignmentID < out[j].AssignmentID
	})
	return page(out, offset, limit), int64(len(out)), nil
}

func (m *mockAssignmentRepo) Count(_ context.Context, scope model.AccessScope) (int64, error) {
	var n int64
	for _, a := range m.s.assignments {
		if m.s.assignmentVisible(scope, a) {
			n++
		}
	}
	return n, nil
}

func (m *mockAssignmentRepo) CountByGames(_ context.Context, gameIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(gameIDs))
	for _, id := range gameIDs {
		for _, a := range m.s.assignments {
			if a.GameID == id {
				counts[id]++
			}
		}
	}
	return counts, nil
}

func (m *mockAssignmentRepo) StatsForOfficial(_ context.Context, officialID, today string) (*repository.OfficialStats, error) {
	var st repository.OfficialStats
	for _, a := range m.s.assignments {
		if a.OfficialID != officialID {
			continue
		}
		g := m.s.games[a.GameID]
		st.Total++
		if g.GameDate >= today {
			st.Upcoming++
		} else {
			st.Completed++
		}
		if strings.HasPrefix(g.GameDate, today[:7]) {
			st.ThisMonth++
		}
	}
	return &st, nil
}

// ── Mock LeagueFeeRepository ──

type mockLeagueFeeRepo struct{ s *mockStore }

func (m *mockLeagueFeeRepo) Create(_ context.Context, fee *model.LeagueFee) error {
	if fee.LeagueFeeID == "" {
		fee.LeagueFeeID = uuid.NewString()
	}
	m.s.fees[fee.LeagueFeeID] = fee
	return nil
}

func (m *mockLeagueFeeRepo) GetByID(_ context.Context, leagueID, id string) (*model.LeagueFee, error) {
	if f, ok := m.s.fees[id]; ok && f.LeagueID == leagueID && f.IsActive {
		cp := *f
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLeagueFeeRepo) Update(_ context.Context, fee *model.LeagueFee) error {
	cp := *fee
	m.s.fees[fee.LeagueFeeID] = &cp
	return nil
}

func (m *mockLeagueFeeRepo) Deactivate(_ context.Context, leagueID, id, _ string) (int64, error) {
	if f, ok := m.s.fees[id]; ok && f.LeagueID == leagueID && f.IsActive {
		f.IsActive = false
		return 1, nil
	}
	return 0, nil
}

func (m *mockLeagueFeeRepo) ListByLeague(_ context.Context, leagueID string) ([]model.LeagueFee, error) {
	var out []model.LeagueFee
	for _, f := range m.s.fees {
		if f.LeagueID == leagueID && f.IsActive {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (m *mockLeagueFeeRepo) ExistsLevel(_ context.Context, leagueID, level, excludeID string) (bool, error) {
	for _, f := range m.s.fees {
		if f.LeagueFeeID != excludeID && f.LeagueID == leagueID && f.IsActive && strings.EqualFold(f.LevelName, level) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockLeagueFeeRepo) FindActive(_ context.Context, leagueName, level string) (*model.LeagueFee, error) {
	for _, f := range m.s.fees {
		league, ok := m.s.leagues[f.LeagueID]
		if ok && league.Name == leagueName && f.IsActive && strings.EqualFold(f.LevelName, level) {
			cp := *f
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock LeagueBillingRepository ──

type mockLeagueBillingRepo struct{ s *mockStore }

func (m *mockLeagueBillingRepo) Create(_ context.Context, b *model.LeagueBilling) error {
	if b.LeagueBillingID == "" {
		b.LeagueBillingID = uuid.NewString()
	}
	m.s.billings[b.LeagueBillingID] = b
	return nil
}

func (m *mockLeagueBillingRepo) GetByID(_ context.Context, leagueID, id string) (*model.LeagueBilling, error) {
	if b, ok := m.s.billings[id]; ok && b.LeagueID == leagueID && b.IsActive {
		cp := *b
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLeagueBillingRepo) Update(_ context.Context, b *model.LeagueBilling) error {
	cp := *b
	m.s.billings[b.LeagueBillingID] = &cp
	return nil
}

func (m *mockLeagueBillingRepo) Deactivate(_ context.Context, leagueID, id, _ string) (int64, error) {
	if b, ok := m.s.billings[id]; ok && b.LeagueID == leagueID && b.IsActive {
		b.IsActive = false
		return 1, nil
	}
	return 0, nil
}

func (m *mockLeagueBillingRepo) ListByLeague(_ context.Context, leagueID string) ([]model.LeagueBilling, error) {
	var out []model.LeagueBilling
	for _, b := range m.s.billings {
		if b.LeagueID == leagueID && b.IsActive {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *mockLeagueBillingRepo) ExistsLevel(_ context.Context, leagueID, level, excludeID string) (bool, error) {
	for _, b := range m.s.billings {
		if b.LeagueBillingID != excludeID && b.LeagueID == leagueID && b.IsActive && strings.EqualFold(b.LevelName, level) {
			return true, nil
		}
	}
	return false, nil
}

// ── Mock BillToRepository ──

type mockBillToRepo struct{ s *mockStore }

func (m *mockBillToRepo) Create(_ context.Context, e *model.BillToEntity) error {
	if e.BillToID == "" {
		e.BillToID = uuid.NewString()
	}
	m.s.billTos[e.BillToID] = e
	return nil
}

func (m *mockBillToRepo) GetByID(_ context.Context, id string) (*model.BillToEntity, error) {
	if e, ok := m.s.billTos[id]; ok && e.IsActive {
		cp := *e
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBillToRepo) Update(_ context.Context, e *model.BillToEntity) error {
	cp := *e
	m.s.billTos[e.BillToID] = &cp
	return nil
}

func (m *mockBillToRepo) Deactivate(_ context.Context, id, _ string) (int64, error) {
	if e, ok := m.s.billTos[id]; ok && e.IsActive {
		e.IsActive = false
		return 1, nil
	}
	return 0, nil
}

func (m *mockBillToRepo) List(_ context.Context, includeInactive bool) ([]model.BillToEntity, error) {
	var out []model.BillToEntity
	for _, e := range m.s.billTos {
		if includeInactive || e.IsActive {
			out = append(out, *e)
		}
	}
	return out, nil
}

// ── Mock ActivityLogRepository ──

type mockActivityLogRepo struct{ s *mockStore }

func (m *mockActivityLogRepo) Create(_ context.Context, log *model.ActivityLog) error {
	log.LogID = uuid.NewString()
	m.s.logs = append(m.s.logs, *log)
	return nil
}

func (m *mockActivityLogRepo) ListRecent(_ context.Context, entityType string, limit int) ([]model.ActivityLog, error) {
	var out []model.ActivityLog
	for i := len(m.s.logs) - 1; i >= 0 && len(out) < limit; i-- {
		if entityType == "" || m.s.logs[i].EntityType == entityType {
			out = append(out, m.s.logs[i])
		}
	}
	return out, nil
}
