package models

import "time"

// CancelledRegularSession suppresses a single dated occurrence of a regular session.
type CancelledRegularSession struct {
	ID            string    `json:"id"`
	InvitationID  string    `json:"invitation_id"`
	CancelledDate time.Time `json:"cancelled_date"`
	Reason        *string   `json:"reason,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// CancelledDate is the read view consumed by calendars.
type CancelledDate struct {
	InvitationID  string    `json:"invitation_id"`
	CancelledDate time.Time `json:"cancelled_date"`
}

// Occurrence is one dated instance of an accepted regular session.
type Occurrence struct {
	InvitationID string    `json:"invitation_id"`
	StudentEmail string    `json:"student_email"`
	StudentID    *string   `json:"student_id"`
	Date         time.Time `json:"date"`
	StartsAt     time.Time `json:"starts_at"`
	Duration     int       `json:"duration"`
	Location     string    `json:"location"`
	Color        *string   `json:"color,omitempty"`
	Cancelled    bool      `json:"cancelled"`
}

// DateLayout is the calendar date format used for cancelled occurrences.
const DateLayout = "2006-01-02"
