package domain

import "time"

// Role classifies a user's position in the platform.
type Role string

const (
	RoleUser    Role = "USER"
	RoleAdmin   Role = "ADMIN"
	RoleFaculty Role = "FACULTY"
	RoleStudent Role = "STUDENT"
	RoleTA      Role = "TA"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleFaculty, RoleStudent, RoleTA:
		return true
	}
	return false
}

// User models an account holder. IDs are externally assignable at signup and
// generated otherwise. Password holds a bcrypt hash and is never serialized
// to JSON.
type User struct {
	ID            string    `json:"_id" bson:"_id"`
	Username      string    `json:"username" bson:"username"`
	Password      string    `json:"-" bson:"password"`
	FirstName     string    `json:"firstName,omitempty" bson:"firstName,omitempty"`
	LastName      string    `json:"lastName,omitempty" bson:"lastName,omitempty"`
	Email         string    `json:"email,omitempty" bson:"email,omitempty"`
	Role          Role      `json:"role" bson:"role"`
	LoginID       string    `json:"loginId" bson:"loginId"`
	Section       string    `json:"section" bson:"section"`
	LastActivity  time.Time `json:"lastActivity" bson:"lastActivity"`
	TotalActivity string    `json:"totalActivity" bson:"totalActivity"`
}

// PublicUser is the trimmed projection returned on signup. Internal fields
// and the credential hash stay server-side.
type PublicUser struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	LoginID  string `json:"loginId"`
	Section  string `json:"section"`
}

// Public returns the trimmed projection of u.
func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:       u.ID,
		Username: u.Username,
		Role:     u.Role,
		LoginID:  u.LoginID,
		Section:  u.Section,
	}
}
