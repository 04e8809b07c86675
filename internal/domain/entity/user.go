package entity

// User is the authenticated profile returned by GET /auth/me/.
type User struct {
	ID          int    `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
}

// IsAdmin reports whether the user carries back-office privileges.
func (u *User) IsAdmin() bool {
	if u == nil {
		return false
	}
	return u.IsStaff || u.IsSuperuser
}
