// Package domain defines the entities the Parley client keeps in local state.
package domain

import "time"

// Role represents a user's access level.
type Role string

const (
	// RoleUser is a regular forum member.
	RoleUser Role = "user"
	// RoleAdmin can moderate users, topics, comments, and categories.
	RoleAdmin Role = "admin"
)

// Valid reports whether the role is a known value.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is a forum member as seen by the admin views.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	AvatarURL string    `json:"avatarUrl"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	BanStatus BanStatus `json:"banStatus"`
}

// BanStatus describes a user's moderation state.
// A nil BanExpires with IsBanned set denotes a permanent ban.
type BanStatus struct {
	IsBanned   bool       `json:"isBanned"`
	BanExpires *time.Time `json:"banExpires"`
	BanReason  string     `json:"banReason"`
}

// Banned reports whether the ban is in effect at the given instant.
func (b BanStatus) Banned(now time.Time) bool {
	if !b.IsBanned {
		return false
	}
	if b.BanExpires == nil {
		return true // permanent
	}
	return now.Before(*b.BanExpires)
}

// Profile is the authenticated user's own record, carried in the session.
type Profile struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	AvatarURL string `json:"avatarUrl"`
}
