package repository

import (
	"gorm.io/gorm"

	"sports-scheduler/internal/model"
)

// Predicate is a WHERE fragment with its bind arguments. The same predicate
// feeds list, count and aggregate queries so their results always agree.
type Predicate struct {
	Clause string
	Args   []interface{}
}

var (
	allowAll = Predicate{Clause: "TRUE"}
	denyAll  = Predicate{Clause: "1 = 0"}
)

// Apply adds the predicate to db.
func (p Predicate) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(p.Clause, p.Args...)
}

// ── builders ──

// GamePredicate limits games. Mid-level roles also see games with no league.
func GamePredicate(s model.AccessScope) Predicate {
	switch {
	case s.Unrestricted:
		return allowAll
	case s.Role == model.RoleOfficial:
		return Predicate{
			Clause: "games.game_id IN (SELECT a.game_id FROM assignments a WHERE a.official_id = ?)",
			Args:   []interface{}{s.UserID},
		}
	case !s.Role.IsMidLevel() || s.Empty() || len(s.LeagueNames) == 0:
		return denyAll
	default:
		return Predicate{
			Clause: "(games.league IN ? OR games.league IS NULL OR games.league = '')",
			Args:   []interface{}{s.LeagueNames},
		}
	}
}

// LeaguePredicate limits leagues to the scope's league ids, for every
// non-top-level role.
func LeaguePredicate(s model.AccessScope) Predicate {
	switch {
	case s.Unrestricted:
		return allowAll
	case !s.Role.Valid() || s.Empty():
		return denyAll
	default:
		return Predicate{Clause: "leagues.league_id IN ?", Args: []interface{}{s.LeagueIDs}}
	}
}

// UserPredicate limits user and official listings. Officials only see
// themselves; mid-level roles see members of their leagues.
func UserPredicate(s model.AccessScope) Predicate {
	switch {
	case s.Unrestricted:
		return allowAll
	case s.Role == model.RoleOfficial:
		return Predicate{Clause: "users.user_id = ?", Args: []interface{}{s.UserID}}
	case !s.Role.IsMidLevel() || s.Empty():
		return denyAll
	default:
		return Predicate{
			Clause: "users.user_id IN (SELECT la.user_id FROM league_assignments la WHERE la.is_active AND la.league_id IN ?)",
			Args:   []interface{}{s.LeagueIDs},
		}
	}
}

// AssignmentPredicate limits assignments. Officials see their own rows;
// mid-level roles see rows whose game passes GamePredicate.
func AssignmentPredicate(s model.AccessScope) Predicate {
	switch {
	case s.Unrestricted:
		return allowAll
	case s.Role == model.RoleOfficial:
		return Predicate{Clause: "assignments.official_id = ?", Args: []interface{}{s.UserID}}
	}
	game := GamePredicate(s)
	if game.Clause == denyAll.Clause {
		return denyAll
	}
	return Predicate{
		Clause: "assignments.game_id IN (SELECT games.game_id FROM games WHERE " + game.Clause + ")",
		Args:   game.Args,
	}
}

// ── gorm scopes ──

// ScopeGames applies GamePredicate.
func ScopeGames(s model.AccessScope) func(*gorm.DB) *gorm.DB {
	return GamePredicate(s).Apply
}

// ScopeLeagues applies LeaguePredicate.
func ScopeLeagues(s model.AccessScope) func(*gorm.DB) *gorm.DB {
	return LeaguePredicate(s).Apply
}

// ScopeUsers applies UserPredicate.
func ScopeUsers(s model.AccessScope) func(*gorm.DB) *gorm.DB {
	return UserPredicate(s).Apply
}

// ScopeAssignments applies AssignmentPredicate.
func ScopeAssignments(s model.AccessScope) func(*gorm.DB) *gorm.DB {
	return AssignmentPredicate(s).Apply
}
