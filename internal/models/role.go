package models

import "strings"

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleTutor   UserRole = "tutor"
	RoleAdmin   UserRole = "admin"
)

var roleRank = map[UserRole]int{
	RoleStudent: 1,
	RoleTutor:   2,
	RoleAdmin:   3,
}

// IsValidRole reports whether role is one of the known tiers.
func IsValidRole(role UserRole) bool {
	_, ok := roleRank[role]
	return ok
}

// IsValidRoleList reports whether roles is non-empty and every entry is known.
func IsValidRoleList(roles []UserRole) bool {
	if len(roles) == 0 {
		return false
	}
	for _, role := range roles {
		if !IsValidRole(role) {
			return false
		}
	}
	return true
}

// NormalizeRoles lower-cases, trims and de-duplicates roles, keeping first-seen order.
func NormalizeRoles(roles []UserRole) []UserRole {
	seen := make(map[UserRole]struct{}, len(roles))
	out := make([]UserRole, 0, len(roles))
	for _, role := range roles {
		r := UserRole(strings.ToLower(strings.TrimSpace(string(role))))
		if r == "" {
			continue
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}

// EnsureDefaultRole guarantees every user carries at least the student tier.
func EnsureDefaultRole(roles []UserRole) []UserRole {
	for _, role := range roles {
		if role == RoleStudent {
			return roles
		}
	}
	return append([]UserRole{RoleStudent}, roles...)
}

// HighestRole returns the highest ranked role, or RoleStudent for an empty list.
func HighestRole(roles []UserRole) UserRole {
	highest := RoleStudent
	for _, role := range roles {
		if roleRank[role] > roleRank[highest] {
			highest = role
		}
	}
	return highest
}

// HasAtLeast reports whether any role reaches the required tier.
func HasAtLeast(roles []UserRole, required UserRole) bool {
	need, ok := roleRank[required]
	if !ok {
		return false
	}
	for _, role := range roles {
		if roleRank[role] >= need {
			return true
		}
	}
	return false
}
