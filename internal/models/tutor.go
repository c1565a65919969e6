package models

import "time"

// Tutor is the teaching profile attached to a user account.
type Tutor struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Color       string     `json:"color"`
	ActivatedAt *time.Time `json:"activated_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// IsActivated reports whether the tutor completed account activation.
func (t Tutor) IsActivated() bool {
	return t.ActivatedAt != nil
}
