package models

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// User is the account returned by the complaint API at login. Anything else the
// API sends with it (the password hash, for one) is dropped on decode.
type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"` // student or admin
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
