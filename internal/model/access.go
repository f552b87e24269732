package model

// AccessScope is the resolved visibility of one caller. Unrestricted means
// no filter; otherwise only the listed leagues are visible and an empty list
// means nothing is.
type AccessScope struct {
	UserID       string
	Role         Role
	Unrestricted bool
	LeagueIDs    []string
	LeagueNames  []string
}

// Empty reports whether the scope grants no league at all.
func (s AccessScope) Empty() bool {
	return !s.Unrestricted && len(s.LeagueIDs) == 0
}

// HasLeague reports whether leagueID is inside the scope.
func (s AccessScope) HasLeague(leagueID string) bool {
	if s.Unrestricted {
		return true
	}
	for _, id := range s.LeagueIDs {
		if id == leagueID {
			return true
		}
	}
	return false
}

// HasLeagueName reports whether a game tagged with league name is inside the scope.
func (s AccessScope) HasLeagueName(name string) bool {
	if s.Unrestricted {
		return true
	}
	for _, n := range s.LeagueNames {
		if n == name {
			return true
		}
	}
	return false
}

// AllowsGame mirrors the game predicate for a single, already loaded row.
// Officials are not covered here: their visibility depends on assignments.
func (s AccessScope) AllowsGame(g *Game) bool {
	switch {
	case s.Unrestricted:
		return true
	case !s.Role.IsMidLevel() || s.Empty():
		return false
	case g.League == "":
		return true
	default:
		return s.HasLeagueName(g.League)
	}
}

// AllowsAssignment mirrors the assignment predicate for a loaded row. The
// row's Game must be loaded for mid-level roles.
func (s AccessScope) AllowsAssignment(a *Assignment) bool {
	switch {
	case s.Unrestricted:
		return true
	case s.Role == RoleOfficial:
		return a.OfficialID == s.UserID
	case a.Game == nil:
		return false
	default:
		return s.AllowsGame(a.Game)
	}
}
