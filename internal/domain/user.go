package domain

import (
	"time"
)

type Role string

const (
	RoleAdmin     Role = "Admin"
	RoleManager   Role = "Manager"
	RoleEstimator Role = "Estimator"
	RoleViewer    Role = "Viewer"
)

type Permission string

const (
	PermissionViewCustomers  Permission = "View Customers"
	PermissionEditCustomers  Permission = "Edit Customers"
	PermissionViewProjects   Permission = "View Projects"
	PermissionEditProjects   Permission = "Edit Projects"
	PermissionViewQuotations Permission = "View Quotations"
	PermissionEditQuotations Permission = "Edit Quotations"
	PermissionViewReports    Permission = "View Reports"
	PermissionViewMaterials  Permission = "View Materials"
	PermissionEditMaterials  Permission = "Edit Materials"
	PermissionBulkUpload     Permission = "Bulk Upload"
	PermissionUserManagement Permission = "User Management"
)

// AllPermissions is the full permission universe, which is exactly the
// Admin set.
var AllPermissions = []Permission{
	PermissionViewCustomers,
	PermissionEditCustomers,
	PermissionViewProjects,
	PermissionEditProjects,
	PermissionViewQuotations,
	PermissionEditQuotations,
	PermissionViewReports,
	PermissionViewMaterials,
	PermissionEditMaterials,
	PermissionBulkUpload,
	PermissionUserManagement,
}

// rolePermissions is built once so that the role -> permission mapping is a
// fixed table rather than branching logic repeated on every lookup.
var rolePermissions = map[Role][]Permission{
	RoleAdmin: AllPermissions,
	RoleManager: {
		PermissionViewCustomers,
		PermissionEditCustomers,
		PermissionViewProjects,
		PermissionEditProjects,
		PermissionViewQuotations,
		PermissionEditQuotations,
		PermissionViewReports,
		PermissionViewMaterials,
		PermissionEditMaterials,
		PermissionBulkUpload,
	},
	RoleEstimator: {
		PermissionViewCustomers,
		PermissionViewProjects,
		PermissionEditProjects,
		PermissionViewQuotations,
		PermissionEditQuotations,
		PermissionViewReports,
		PermissionViewMaterials,
	},
	RoleViewer: {
		PermissionViewCustomers,
		PermissionViewProjects,
		PermissionViewQuotations,
		PermissionViewReports,
		PermissionViewMaterials,
	},
}

// Permissions returns the permission set of the role. Unknown roles get no
// permissions. The returned slice is a copy, callers may mutate it freely.
func (r Role) Permissions() []Permission {
	perms := rolePermissions[r]
	out := make([]Permission, len(perms))
	copy(out, perms)
	return out
}

// HasPermission answers whether the given user may perform the action guarded
// by perm. A nil user (no authenticated session) never has any permission.
func HasPermission(user *User, perm Permission) bool {
	if user == nil {
		return false
	}
	for _, p := range rolePermissions[user.Role] {
		if p == perm {
			return true
		}
	}
	return false
}

type User struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	Email        string     `json:"email"`
	Role         Role       `json:"role"`
	IsActive     bool       `json:"isActive"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastLoginAt  *time.Time `json:"lastLoginAt"`
	Version      int32      `json:"-"`
}
