package domain

import "slices"

type UserRole string

const (
	RoleUser       UserRole = "user"
	RoleTechnician UserRole = "technician"
	RoleAdmin      UserRole = "admin"
)

// UserRoles is shared by the user schema and the request rules.
var UserRoles = []string{string(RoleUser), string(RoleTechnician), string(RoleAdmin)}

// Access is the closed set of authorization levels a route can require.
type Access int

const (
	AccessPublic Access = iota
	AccessAuthenticated
	AccessTechnician
	AccessAdmin
)

func (a Access) String() string {
	switch a {
	case AccessPublic:
		return "public"
	case AccessAuthenticated:
		return "authenticated"
	case AccessTechnician:
		return "technician"
	case AccessAdmin:
		return "admin"
	}
	return "unknown"
}

// Allows reports whether a caller holding role satisfies level. An empty role
// means an anonymous caller.
func Allows(level Access, role string) bool {
	switch level {
	case AccessPublic:
		return true
	case AccessAuthenticated:
		return slices.Contains(UserRoles, role)
	case AccessTechnician:
		return role == string(RoleTechnician) || role == string(RoleAdmin)
	case AccessAdmin:
		return role == string(RoleAdmin)
	}
	return false
}

func IsAdmin(role string) bool { return role == string(RoleAdmin) }
