package domain

import "time"

// UserType is the access level the backend assigns to an account.
type UserType string

const (
	UserTypeAdministrator UserType = "ADMINISTRATOR"
	UserTypeRegular       UserType = "REGULAR"
)

// IsValid reports whether t is one of the known user types.
func (t UserType) IsValid() bool {
	return t == UserTypeAdministrator || t == UserTypeRegular
}

// User mirrors the backend's user resource.
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Password     string    `json:"password,omitempty"`
	Type         UserType  `json:"type"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
	LastModified time.Time `json:"lastModified"`
}

// IsAdministrator reports whether the user may manage other accounts.
func (u *User) IsAdministrator() bool {
	return u != nil && u.Type == UserTypeAdministrator
}

// WithoutPassword returns a copy of u that is safe to keep in a session or
// hand to a view.
func (u User) WithoutPassword() User {
	u.Password = ""
	return u
}
