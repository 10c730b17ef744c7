// file: internals/features/users/user/service/authz.go
//
// Pure authorization checks: deterministic functions of the caller's role
// set and the required capability. No database, no side effects.
package service

import (
	"sort"

	model "github.com/beerappa88/University-Finance-Application/internals/features/users/user/model"
)

// Allowed reports whether at least one role carries an active permission
// matching (resource, action).
func Allowed(roles []model.Role, resource, action string) bool {
	for i := range roles {
		if !roles[i].IsActive {
			continue
		}
		for j := range roles[i].Permissions {
			p := &roles[i].Permissions[j]
			if p.IsActive && p.Resource == resource && p.Action == action {
				return true
			}
		}
	}
	return false
}

// EffectivePermissions returns the deduplicated union of "resource:action"
// claims across all active roles, sorted for stable token payloads.
func EffectivePermissions(roles []model.Role) []string {
	seen := map[string]struct{}{}
	for i := range roles {
		if !roles[i].IsActive {
			continue
		}
		for j := range roles[i].Permissions {
			p := &roles[i].Permissions[j]
			if p.IsActive {
				seen[p.Claim()] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(seen))
	for claim := range seen {
		out = append(out, claim)
	}
	sort.Strings(out)
	return out
}
