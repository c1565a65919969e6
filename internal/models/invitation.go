package models

import (
	"errors"
	"fmt"
	"time"
)

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
	InvitationRemoved  InvitationStatus = "removed"
)

// ErrIllegalTransition is matched by every *TransitionError.
var ErrIllegalTransition = errors.New("illegal invitation status transition")

// TransitionError describes a rejected status change.
type TransitionError struct {
	From InvitationStatus
	To   InvitationStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invitation cannot move from %s to %s", e.From, e.To)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrIllegalTransition
}

var allowedTransitions = map[InvitationStatus][]InvitationStatus{
	InvitationPending:  {InvitationAccepted, InvitationDeclined, InvitationRemoved},
	InvitationAccepted: {InvitationRemoved},
	InvitationDeclined: {InvitationRemoved},
}

// IsValid reports whether s is a known status.
func (s InvitationStatus) IsValid() bool {
	switch s {
	case InvitationPending, InvitationAccepted, InvitationDeclined, InvitationRemoved:
		return true
	}
	return false
}

// CanTransition reports whether moving from s to next is allowed.
func (s InvitationStatus) CanTransition(next InvitationStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transition returns next when the move is legal and a *TransitionError otherwise.
func (s InvitationStatus) Transition(next InvitationStatus) (InvitationStatus, error) {
	if !s.CanTransition(next) {
		return s, &TransitionError{From: s, To: next}
	}
	return next, nil
}

// RegularInvitation is a recurring weekly session offered to a student.
type RegularInvitation struct {
	ID           string           `json:"id"`
	TokenHash    string           `json:"-"`
	TutorID      string           `json:"tutor_id"`
	StudentEmail string           `json:"student_email"`
	StudentID    *string          `json:"student_id"`
	DayOfWeek    int              `json:"day_of_week"`
	StartTime    string           `json:"start_time"`
	Duration     int              `json:"duration"`
	Location     string           `json:"location"`
	Description  *string          `json:"description,omitempty"`
	Color        *string          `json:"color,omitempty"`
	Status       InvitationStatus `json:"status"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// Key returns the natural key used to de-duplicate offers.
func (i RegularInvitation) Key() InvitationKey {
	return InvitationKey{
		TutorID:      i.TutorID,
		StudentEmail: i.StudentEmail,
		DayOfWeek:    i.DayOfWeek,
		StartTime:    i.StartTime,
	}
}

// InvitationKey identifies one offered slot per tutor and student.
type InvitationKey struct {
	TutorID      string
	StudentEmail string
	DayOfWeek    int
	StartTime    string
}

// OwnedInvitation is an invitation joined with the tutor that issued it.
type OwnedInvitation struct {
	RegularInvitation
	TutorName   string
	TutorUserID string
}
