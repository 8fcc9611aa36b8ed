// Copyright (c) 2026 Agrio India. All rights reserved.

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted back-office access, including admin management
	RoleSuperAdmin UserRole = "super_admin"

	// Can manage the catalog, coupons, and user records
	RoleAdmin UserRole = "admin"

	// Read-only back-office access
	RoleViewer UserRole = "viewer"

	// Default role for registered farmers
	RoleFarmer UserRole = "farmer"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale (10-40) allows for future intermediate roles
	switch r {
	case RoleSuperAdmin:
		return 40
	case RoleAdmin:
		return 30
	case RoleViewer:
		return 20
	case RoleFarmer:
		return 10
	default:
		return 0
	}
}
