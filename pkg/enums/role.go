package enums

import (
	"fmt"
	"strings"
)

// Role represents a system-wide permissions role.
type Role string

const (
	RoleUser           Role = "USER"
	RoleAdmin          Role = "ADMIN"
	RoleUserAdmin      Role = "UADMIN"
	RoleInventoryAdmin Role = "IADMIN"
)

var validRoles = []Role{
	RoleUser,
	RoleAdmin,
	RoleUserAdmin,
	RoleInventoryAdmin,
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// IsValid reports whether the value is a known Role.
func (r Role) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRole converts raw input into a Role, uppercasing case-insensitive
// spellings at the boundary.
func ParseRole(value string) (Role, error) {
	normalized := Role(strings.ToUpper(strings.TrimSpace(value)))
	for _, candidate := range validRoles {
		if candidate == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", value)
}
