// Package model defines the data structures used throughout the application.
package model

import "strings"

// User is a registered member who can like films and befriend other users.
//
// Identity is the ID alone: two users with the same email are still two
// users. Set membership and friend-set intersections compare IDs only.
type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Login    string `json:"login"`
	Name     string `json:"name"`
	Birthday *Date  `json:"birthday,omitempty"`
}

// ApplyDefaultName sets the display name to the login when the name is blank.
// It reports whether the name was replaced.
func (u *User) ApplyDefaultName() bool {
	if strings.TrimSpace(u.Name) != "" {
		return false
	}
	u.Name = u.Login
	return true
}
