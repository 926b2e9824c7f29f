package enums

import "fmt"

// StaffRole describes the access level carried in access tokens.
type StaffRole string

const (
	StaffRoleOwner  StaffRole = "owner"
	StaffRoleWaiter StaffRole = "waiter"
)

var validStaffRoles = []StaffRole{
	StaffRoleOwner,
	StaffRoleWaiter,
}

// IsValid reports whether the value matches the canonical staff role enum.
func (r StaffRole) IsValid() bool {
	for _, candidate := range validStaffRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseStaffRole converts the raw string to StaffRole.
func ParseStaffRole(value string) (StaffRole, error) {
	for _, candidate := range validStaffRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid staff role %q", value)
}
