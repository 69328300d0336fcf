package models

import "time"

// User is an account holder.
type User struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateUserRequest is the POST /users payload.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Visibility controls who can see a profile.
type Visibility int

const (
	VisibilityPublic Visibility = iota
	VisibilityPrivate
)
