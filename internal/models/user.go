package models

// UserRole mirrors the backend roles.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleTeacher UserRole = "professeur"
	RoleStudent UserRole = "eleve"
)

// Viewer is the signed-in user a page is rendered for.
type Viewer struct {
	UserID   int64    `json:"user_id"`
	Role     UserRole `json:"role"`
	FullName string   `json:"full_name"`
	Token    string   `json:"-"`
}

// IsAdmin reports whether admin-only actions are shown.
func (v *Viewer) IsAdmin() bool {
	return v != nil && v.Role == RoleAdmin
}

// CanManageEvents reports whether the viewer may create or delete events and classrooms.
func (v *Viewer) CanManageEvents() bool {
	return v != nil && (v.Role == RoleAdmin || v.Role == RoleTeacher)
}
