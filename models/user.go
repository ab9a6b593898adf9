package models

import "time"

// User roles understood by the backend.
const (
	RoleUser   = "user"
	RoleLawyer = "lawyer"
)

// User represents the authenticated account's profile as returned by the backend.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	UserType  string    `json:"userType"` // "user" or "lawyer"
	AvatarURL string    `json:"avatarUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	UserType string `json:"userType"`
}

// ProfileUpdate is a partial profile patch; zero-valued fields are omitted.
type ProfileUpdate struct {
	Name      string `json:"name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// PasswordChange is the change-password request body.
type PasswordChange struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}
