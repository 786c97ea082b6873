package models

import (
	"strings"
	"time"
)

const (
	RoleAdmin       = "admin"
	RoleParticipant = "participant"
)

// User is the profile returned by GET /users/profile.
type User struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// RoleLabel is the badge text on the profile page.
func (u User) RoleLabel() string {
	if u.Role == RoleAdmin {
		return "Admin (Organizer)"
	}
	return "User (Participant)"
}

// Initial is the avatar letter.
func (u User) Initial() string {
	for _, r := range u.Name {
		return strings.ToUpper(string(r))
	}
	return "?"
}

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the register payload.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}
