package domain

// Role is a label granting access to protected operations. The set is open
// ended; these are the labels the service itself assigns.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// DefaultRoles is the role set assigned to accounts created without an
// explicit one.
func DefaultRoles() []Role {
	return []Role{RoleUser}
}

// RolesFromStrings converts raw labels as stored or received on the wire.
func RolesFromStrings(labels []string) []Role {
	roles := make([]Role, 0, len(labels))
	for _, l := range labels {
		roles = append(roles, Role(l))
	}
	return roles
}

// RolesToStrings converts role labels for storage.
func RolesToStrings(roles []Role) []string {
	labels := make([]string, 0, len(roles))
	for _, r := range roles {
		labels = append(labels, string(r))
	}
	return labels
}
