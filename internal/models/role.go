package models

import "strings"

// Role selects which specialized analyses and narrative template apply to an
// agent instance. Instance names are free text, so the role is resolved once
// from the name via the alias table below and passed as a typed value from
// then on.
type Role int

const (
	RoleGeneric Role = iota
	RoleFinance
	RoleSales
	RoleMarketing
)

var roleAliases = map[string]Role{
	"finance":           RoleFinance,
	"finance agent":     RoleFinance,
	"financial":         RoleFinance,
	"sales":             RoleSales,
	"sales agent":       RoleSales,
	"sales team":        RoleSales,
	"marketing":         RoleMarketing,
	"marketing agent":   RoleMarketing,
	"marketing team":    RoleMarketing,
	"digital marketing": RoleMarketing,
}

// ResolveRole matches a free-text agent name against the known aliases,
// case-insensitively. Unrecognized names resolve to RoleGeneric.
func ResolveRole(name string) Role {
	if role, ok := roleAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return role
	}
	return RoleGeneric
}

func (r Role) String() string {
	switch r {
	case RoleFinance:
		return "finance"
	case RoleSales:
		return "sales"
	case RoleMarketing:
		return "marketing"
	default:
		return "generic"
	}
}
