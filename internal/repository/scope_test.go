package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sports-scheduler/internal/model"
)

func midLevel(role model.Role) model.AccessScope {
	return model.AccessScope{
		UserID:      "u-1",
		Role:        role,
		LeagueIDs:   []string{"l-1", "l-2"},
		LeagueNames: []string{"NBA", "WNBA"},
	}
}

func TestGamePredicate(t *testing.T) {
	tests := []struct {
		name   string
		scope  model.AccessScope
		clause string
		args   []interface{}
	}{
		{"superadmin", model.AccessScope{Role: model.RoleSuperAdmin, Unrestricted: true}, "TRUE", nil},
		{"admin", midLevel(model.RoleAdmin), "(games.league IN ? OR games.league IS NULL OR games.league = '')", []interface{}{[]string{"NBA", "WNBA"}}},
		{"assigner", midLevel(model.RoleAssigner), "(games.league IN ? OR games.league IS NULL OR games.league = '')", []interface{}{[]string{"NBA", "WNBA"}}},
		{"admin with no leagues", model.AccessScope{UserID: "u-1", Role: model.RoleAdmin}, "1 = 0", nil},
		{"official", model.AccessScope{UserID: "o-1", Role: model.RoleOfficial}, "games.game_id IN (SELECT a.game_id FROM assignments a WHERE a.official_id = ?)", []interface{}{"o-1"}},
		{"unknown role", model.AccessScope{UserID: "x", Role: "guest", LeagueIDs: []string{"l-1"}, LeagueNames: []string{"NBA"}}, "1 = 0", nil},
		{"missing role", model.AccessScope{}, "1 = 0", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := GamePredicate(tt.scope)
			assert.Equal(t, tt.clause, p.Clause)
			assert.Equal(t, tt.args, p.Args)
		})
	}
}

func TestLeaguePredicate(t *testing.T) {
	assert.Equal(t, "TRUE", LeaguePredicate(model.AccessScope{Role: model.RoleSuperAdmin, Unrestricted: true}).Clause)

	p := LeaguePredicate(midLevel(model.RoleAdmin))
	assert.Equal(t, "leagues.league_id IN ?", p.Clause)
	assert.Equal(t, []interface{}{[]string{"l-1", "l-2"}}, p.Args)

	official := model.AccessScope{UserID: "o-1", Role: model.RoleOfficial, LeagueIDs: []string{"l-9"}, LeagueNames: []string{"MLS"}}
	assert.Equal(t, []interface{}{[]string{"l-9"}}, LeaguePredicate(official).Args)

	assert.Equal(t, "1 = 0", LeaguePredicate(model.AccessScope{Role: model.RoleAssigner}).Clause)
	assert.Equal(t, "1 = 0", LeaguePredicate(model.AccessScope{Role: "guest", LeagueIDs: []string{"l-1"}}).Clause)
}

func TestUserPredicate(t *testing.T) {
	assert.Equal(t, "TRUE", UserPredicate(model.AccessScope{Unrestricted: true}).Clause)

	self := UserPredicate(model.AccessScope{UserID: "o-1", Role: model.RoleOfficial})
	assert.Equal(t, "users.user_id = ?", self.Clause)
	assert.Equal(t, []interface{}{"o-1"}, self.Args)

	members := UserPredicate(midLevel(model.RoleAdmin))
	assert.Contains(t, members.Clause, "league_assignments")
	assert.Equal(t, []interface{}{[]string{"l-1", "l-2"}}, members.Args)

	assert.Equal(t, "1 = 0", UserPredicate(model.AccessScope{UserID: "u-1", Role: model.RoleAdmin}).Clause)
	assert.Equal(t, "1 = 0", UserPredicate(model.AccessScope{UserID: "u-1"}).Clause)
}

func TestAssignmentPredicate(t *testing.T) {
	assert.Equal(t, "TRUE", AssignmentPredicate(model.AccessScope{Unrestricted: true}).Clause)

	own := AssignmentPredicate(model.AccessScope{UserID: "o-1", Role: model.RoleOfficial})
	assert.Equal(t, "assignments.official_id = ?", own.Clause)
	assert.Equal(t, []interface{}{"o-1"}, own.Args)

	scoped := AssignmentPredicate(midLevel(model.RoleAssigner))
	assert.Equal(t,
		"assignments.game_id IN (SELECT games.game_id FROM games WHERE (games.league IN ? OR games.league IS NULL OR games.league = ''))",
		scoped.Clause)
	assert.Equal(t, []interface{}{[]string{"NBA", "WNBA"}}, scoped.Args)

	assert.Equal(t, "1 = 0", AssignmentPredicate(model.AccessScope{UserID: "u-1", Role: model.RoleAdmin}).Clause)
	assert.Equal(t, "1 = 0", AssignmentPredicate(model.AccessScope{Role: "guest"}).Clause)
}
