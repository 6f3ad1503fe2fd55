package domain

import (
	"testing"
)

func TestRolePermissions(t *testing.T) {
	tests := []struct {
		role    Role
		granted []Permission
		denied  []Permission
	}{
		{
			role:    RoleAdmin,
			granted: AllPermissions,
		},
		{
			role: RoleManager,
			granted: []Permission{
				PermissionEditCustomers,
				PermissionEditMaterials,
				PermissionBulkUpload,
			},
			denied: []Permission{PermissionUserManagement},
		},
		{
			role: RoleEstimator,
			granted: []Permission{
				PermissionViewCustomers,
				PermissionEditProjects,
				PermissionEditQuotations,
				PermissionViewMaterials,
			},
			denied: []Permission{
				PermissionEditCustomers,
				PermissionEditMaterials,
				PermissionBulkUpload,
				PermissionUserManagement,
			},
		},
		{
			role: RoleViewer,
			granted: []Permission{
				PermissionViewCustomers,
				PermissionViewProjects,
				PermissionViewQuotations,
				PermissionViewReports,
				PermissionViewMaterials,
			},
			denied: []Permission{
				PermissionEditCustomers,
				PermissionEditProjects,
				PermissionEditQuotations,
				PermissionEditMaterials,
				PermissionBulkUpload,
				PermissionUserManagement,
			},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			user := &User{Role: tt.role}
			for _, perm := range tt.granted {
				if !HasPermission(user, perm) {
					t.Errorf("%s should have %q", tt.role, perm)
				}
			}
			for _, perm := range tt.denied {
				if HasPermission(user, perm) {
					t.Errorf("%s should not have %q", tt.role, perm)
				}
			}
		})
	}
}

func TestHasPermissionNilUser(t *testing.T) {
	for _, perm := range AllPermissions {
		if HasPermission(nil, perm) {
			t.Errorf("nil user should not have %q", perm)
		}
	}
}

func TestHasPermissionUnknownRole(t *testing.T) {
	user := &User{Role: Role("Intern")}
	if HasPermission(user, PermissionViewCustomers) {
		t.Error("unknown role should have no permissions")
	}
}

func TestViewerPermissionCount(t *testing.T) {
	if got := len(RoleViewer.Permissions()); got != 5 {
		t.Errorf("expected Viewer to hold exactly 5 permissions, got %d", got)
	}
}

func TestPermissionsReturnsCopy(t *testing.T) {
	perms := RoleAdmin.Permissions()
	if len(perms) != len(AllPermissions) {
		t.Fatalf("expected %d admin permissions, got %d", len(AllPermissions), len(perms))
	}

	perms[0] = Permission("tampered")
	if RoleAdmin.Permissions()[0] != AllPermissions[0] {
		t.Error("mutating the returned slice must not affect the role table")
	}
}
