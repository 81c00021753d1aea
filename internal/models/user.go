package models

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleAdmin   UserRole = "admin"
)

// User is a portal account. Passwords are kept and compared in plain text;
// the admin screens display them as entered.
type User struct {
	ID       string   `json:"id"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Role     UserRole `json:"role"`
}

func (u User) GetID() string { return u.ID }

// IsAdmin reports whether the user carries the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Session identifies the signed-in principal. There is at most one per store
// scope; an absent session means anonymous.
type Session struct {
	Email  string   `json:"email"`
	Role   UserRole `json:"role"`
	UserID string   `json:"userId"`
}

// NewSession builds the session record persisted on login.
func NewSession(u *User) Session {
	return Session{
		Email:  u.Email,
		Role:   u.Role,
		UserID: u.ID,
	}
}
