package models

import "time"

type EditorRole string

const (
	RoleAdmin EditorRole = "admin"
)

// Editor is a content editor account for the admin panel.
type Editor struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Role         EditorRole `json:"role"`
	PasswordHash string     `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
