package model

// Role is the coarse authorization tag carried by admin users and sessions.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleSuperadmin
}

// Roles lists every valid role, in privilege order.
func Roles() []string {
	return []string{string(RoleAdmin), string(RoleSuperadmin)}
}
