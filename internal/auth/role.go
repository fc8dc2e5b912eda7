package auth

import "strings"

// Role is the closed set of authorization tiers. Ordering matters:
// a higher role may do everything a lower one may.
type Role uint8

const (
	RoleUser Role = iota
	RoleAdmin
)

func ParseRole(s string) Role {
	if strings.EqualFold(s, "Admin") {
		return RoleAdmin
	}
	return RoleUser
}

func (r Role) String() string {
	if r == RoleAdmin {
		return "Admin"
	}
	return "User"
}

// Allows reports whether a principal holding r satisfies the required tier.
func (r Role) Allows(required Role) bool {
	return r >= required
}
