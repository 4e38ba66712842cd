package constants

// PermissionRoles maps each permission to roles allowed to perform it.
var PermissionRoles = map[string][]string{
	VerifyGatePass: {Verifier, Admin, Superadmin},
	ManageClusters: {Admin, Superadmin},
	ManageColleges: {Superadmin},
	ViewAudit:      {Admin, Superadmin},
	ViewRoster:     {CollegeAdmin, Admin, Superadmin},
}

// AllowedRole returns true if role is in the list of allowed roles for the permission.
func AllowedRole(permission, role string) bool {
	roles, ok := PermissionRoles[permission]
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
