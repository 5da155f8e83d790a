package models

import "time"

// Lead is a captured visitor contact attempt. Rows are written once at form
// submission and never mutated or deleted by this application.
type Lead struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	BirthDate string    `json:"birth_date"`
	CreatedAt time.Time `json:"created_at"`

	// Legacy marks leads recovered from the old content-table capture path.
	Legacy bool `json:"legacy,omitempty"`
}
