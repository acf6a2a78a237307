package entity

import (
	"time"
)

// User is the aggregate root for the user domain and a node in the follow
// graph. Passwords are stored as bcrypt hashes in PasswordHash.
//
// Followers and Following are two views of one relation: u2 is in
// u1.Following exactly when u1 is in u2.Followers. Both sides are mutated
// together by the follow-graph operations.
type User struct {
	ID             string
	Name           string
	Username       string
	Email          string
	PasswordHash   string
	ProfilePicture string
	Location       string
	DateOfBirth    *time.Time
	Followers      IDSet
	Following      IDSet
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// UserSummary is the short public representation embedded in tweets and
// follow lists. It carries no credential material by construction.
type UserSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"userName"`
	Email    string `json:"email"`
}

// PublicUser is the full public representation of a user. Every User that
// leaves the system boundary goes through Public() or Summary(); neither
// type has a hash field, so the credential hash cannot leak.
type PublicUser struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Username       string     `json:"userName"`
	Email          string     `json:"email"`
	ProfilePicture string     `json:"profilePicture,omitempty"`
	Location       string     `json:"location,omitempty"`
	DateOfBirth    *time.Time `json:"dateOfBirth,omitempty"`
	Followers      []string   `json:"followers"`
	Following      []string   `json:"following"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// Summary returns the redacted short view of the user.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Username: u.Username, Email: u.Email}
}

// Public returns the redacted full view of the user with raw follower and
// following id lists.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:             u.ID,
		Name:           u.Name,
		Username:       u.Username,
		Email:          u.Email,
		ProfilePicture: u.ProfilePicture,
		Location:       u.Location,
		DateOfBirth:    u.DateOfBirth,
		Followers:      append([]string{}, u.Followers...),
		Following:      append([]string{}, u.Following...),
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}
