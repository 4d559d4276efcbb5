package model

import (
	"strings"
	"time"
)

// User represents an application account. New registrations start inactive
// and must be activated by an administrator before they can log in.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Role         string    `json:"role,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

// Roles. The role is optional: a user with no role has guest-level access.
const (
	RoleAdmin  = "ADMIN"
	RoleLeader = "LEADER"
	RoleMember = "MEMBER"
	RoleGuest  = "GUEST"
)

// RoleAtLeast checks if role meets or exceeds the minimum required role.
func RoleAtLeast(role, minimum string) bool {
	levels := map[string]int{
		RoleAdmin:  4,
		RoleLeader: 3,
		RoleMember: 2,
		RoleGuest:  1,
	}
	return levels[role] >= levels[minimum]
}

// FullName returns "First Last", falling back to the username when the
// profile has no name set.
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}
