package model

import "strings"

// Role is the caller's position in the officiating organisation.
type Role string

const (
	RoleSuperAdmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleAssigner   Role = "assigner"
	RoleOfficial   Role = "official"
)

// ParseRole normalises a stored or submitted role name. "scheduler" is an
// older name for assigner. Unknown names come back as-is and fail Valid.
func ParseRole(s string) Role {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if r == "scheduler" {
		return RoleAssigner
	}
	return r
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleAssigner, RoleOfficial:
		return true
	}
	return false
}

// IsMidLevel reports whether r is scoped by league assignments.
func (r Role) IsMidLevel() bool {
	return r == RoleAdmin || r == RoleAssigner
}

// Capability names an action guarded by role.
type Capability string

const (
	CapViewGames          Capability = "games:view"
	CapManageGames        Capability = "games:manage"
	CapViewAssignments    Capability = "assignments:view"
	CapManageAssignments  Capability = "assignments:manage"
	CapRespondAssignments Capability = "assignments:respond"
	CapManageLeagues      Capability = "leagues:manage"
	CapManageFees         Capability = "fees:manage"
	CapManageBilling      Capability = "billing:manage"
	CapViewOfficials      Capability = "officials:view"
	CapManageUsers        Capability = "users:manage"
	CapSelfService        Capability = "self:service"
)

var capabilities = map[Role]map[Capability]bool{
	RoleAdmin: {
		CapViewGames: true, CapManageGames: true,
		CapViewAssignments: true, CapManageAssignments: true,
		CapManageLeagues: true, CapManageFees: true, CapManageBilling: true,
		CapViewOfficials: true, CapManageUsers: true,
	},
	RoleAssigner: {
		CapViewGames: true, CapManageGames: true,
		CapViewAssignments: true, CapManageAssignments: true,
		CapViewOfficials: true,
	},
	RoleOfficial: {
		CapViewGames: true, CapViewAssignments: true,
		CapRespondAssignments: true, CapSelfService: true,
	},
}

// Can is the single capability check used by middleware and services.
// The superadmin holds every capability; unknown roles hold none.
func (r Role) Can(c Capability) bool {
	if r == RoleSuperAdmin {
		return true
	}
	return capabilities[r][c]
}

// Identity is the authenticated caller, passed explicitly into services.
type Identity struct {
	UserID string
	Role   Role
}

var allCapabilities = []Capability{
	CapViewGames, CapManageGames,
	CapViewAssignments, CapManageAssignments, CapRespondAssignments,
	CapManageLeagues, CapManageFees, CapManageBilling,
	CapViewOfficials, CapManageUsers, CapSelfService,
}

// Capabilities lists what r may do, in a stable order.
func (r Role) Capabilities() []Capability {
	caps := make([]Capability, 0, len(allCapabilities))
	for _, c := range allCapabilities {
		if r.Can(c) {
			caps = append(caps, c)
		}
	}
	return caps
}
