package models

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

type SessionType string

const (
	SessionTypeRegulars SessionType = "regulars"
	SessionTypePrivate  SessionType = "private"
	SessionTypeGroup    SessionType = "group"
	SessionTypeWorkshop SessionType = "workshop"
)

// TimeSlot is one cell of a tutor's weekly grid.
type TimeSlot struct {
	StartTime   string      `json:"start_time"` // HH:MM
	Duration    int         `json:"duration"`   // minutes
	Location    string      `json:"location"`
	SessionType SessionType `json:"session_type"`
	StudentID   string      `json:"student_id,omitempty"`
	Email       string      `json:"email,omitempty"`
	Color       string      `json:"color,omitempty"`
	Description string      `json:"description,omitempty"`
}

// IsRegularOffer reports whether the slot asks for a recurring-session invitation.
func (s TimeSlot) IsRegularOffer() bool {
	return s.SessionType == SessionTypeRegulars &&
		strings.TrimSpace(s.Email) != "" &&
		strings.TrimSpace(s.StudentID) != ""
}

// DaySchedule holds the slots of one weekday, 0 = Sunday.
type DaySchedule struct {
	Day       int        `json:"day"`
	TimeSlots []TimeSlot `json:"time_slots"`
}

// WeeklySchedule is the ordered document persisted per owner.
type WeeklySchedule []DaySchedule

// Validate checks day indexes, start times, durations and the student fields of regulars offers.
func (w WeeklySchedule) Validate() error {
	_, err := w.Normalize()
	return err
}

// Normalize validates the schedule and returns a copy whose start times are
// zero-padded HH:MM, so "9:00" and "09:00" name the same weekly slot.
func (w WeeklySchedule) Normalize() (WeeklySchedule, error) {
	if w == nil {
		return nil, nil
	}
	out := make(WeeklySchedule, 0, len(w))
	for _, day := range w {
		if day.Day < 0 || day.Day > 6 {
			return nil, fmt.Errorf("day %d is out of range 0-6", day.Day)
		}
		slots := make([]TimeSlot, 0, len(day.TimeSlots))
		for i, slot := range day.TimeSlots {
			minutes, err := ParseClock(slot.StartTime)
			if err != nil {
				return nil, fmt.Errorf("day %d slot %d: %w", day.Day, i, err)
			}
			slot.StartTime = FormatClock(minutes)
			if slot.Duration <= 0 {
				return nil, fmt.Errorf("day %d slot %d: duration must be positive", day.Day, i)
			}
			if slot.IsRegularOffer() {
				if err := validateOffer(&slot); err != nil {
					return nil, fmt.Errorf("day %d slot %d: %w", day.Day, i, err)
				}
			}
			slots = append(slots, slot)
		}
		day.TimeSlots = slots
		out = append(out, day)
	}
	return out, nil
}

func validateOffer(slot *TimeSlot) error {
	id, err := uuid.Parse(strings.TrimSpace(slot.StudentID))
	if err != nil {
		return fmt.Errorf("invalid student id %q", slot.StudentID)
	}
	slot.StudentID = id.String()

	email := strings.TrimSpace(slot.Email)
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("invalid student email %q", slot.Email)
	}
	slot.Email = email
	return nil
}

type Schedule struct {
	ID        string         `json:"id"`
	OwnerID   string         `json:"owner_id"`
	Days      WeeklySchedule `json:"schedule"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// ParseClock parses an HH:MM wall-clock time into minutes after midnight.
func ParseClock(value string) (int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid start time %q, expected HH:MM", value)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock renders minutes after midnight as zero-padded HH:MM.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

var weekdayNames = [...]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// WeekdayName returns the English name for a 0-6 day index.
func WeekdayName(day int) string {
	if day < 0 || day >= len(weekdayNames) {
		return "Unknown"
	}
	return weekdayNames[day]
}
