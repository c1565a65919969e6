package models

import "time"

type TimeblockStatus string

const (
	TimeblockBooked    TimeblockStatus = "booked"
	TimeblockAvailable TimeblockStatus = "available"
	TimeblockCancelled TimeblockStatus = "cancelled"
	TimeblockCompleted TimeblockStatus = "completed"
	TimeblockNoShow    TimeblockStatus = "no-show"
)

// Timeblock is a one-off dated session on a tutor's calendar.
type Timeblock struct {
	ID          string          `json:"id"`
	TutorID     string          `json:"tutor_id"`
	StartTime   time.Time       `json:"start_time"`
	Duration    int             `json:"duration"`
	Status      TimeblockStatus `json:"status"`
	SessionType SessionType     `json:"session_type"`
	Location    string          `json:"location"`
	StudentID   *string         `json:"student_id"`
}
