package models

type UserRole string

const (
	RoleAdmin     UserRole = "admin"
	RoleOrganizer UserRole = "organizer"
	RolePlayer    UserRole = "player"
)

// CanManageBrackets reports whether the role may generate or edit brackets.
func (r UserRole) CanManageBrackets() bool {
	return r == RoleAdmin || r == RoleOrganizer
}
