package authz

import "strings"

// DefaultRolePrefix is prepended to bare role names before comparison against
// granted roles, so that "ADMIN" in a rule matches the granted "ROLE_ADMIN".
const DefaultRolePrefix = "ROLE_"

// HasRole reports whether granted contains the role, applying prefix to role
// when it is not already prefixed. An empty prefix compares names as-is.
func HasRole(granted []string, role, prefix string) bool {
	want := ApplyRolePrefix(role, prefix)
	for _, g := range granted {
		if g == want {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether granted contains at least one of the roles.
func HasAnyRole(granted []string, roles []string, prefix string) bool {
	for _, r := range roles {
		if HasRole(granted, r, prefix) {
			return true
		}
	}
	return false
}

// ApplyRolePrefix prepends prefix to role unless role already carries it.
func ApplyRolePrefix(role, prefix string) string {
	if prefix == "" || strings.HasPrefix(role, prefix) {
		return role
	}
	return prefix + role
}
