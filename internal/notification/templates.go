package notification

import (
	"fmt"
	"strings"
	"time"

	"github.com/stanstork/tutoring-api/internal/models"
)

const (
	KindInvitation       = "regular_invitation"
	KindSessionCancelled = "session_cancelled"
	KindScheduleRemoved  = "schedule_removed"
)

// SessionDetails describes the recurring slot an email refers to.
type SessionDetails struct {
	TutorName string
	DayOfWeek int
	StartTime string
	Duration  int
	Location  string
}

// SessionFromInvitation copies the slot fields of inv.
func SessionFromInvitation(tutorName string, inv models.RegularInvitation) SessionDetails {
	return SessionDetails{
		TutorName: tutorName,
		DayOfWeek: inv.DayOfWeek,
		StartTime: inv.StartTime,
		Duration:  inv.Duration,
		Location:  inv.Location,
	}
}

// InvitationEmail asks the student to accept or decline a recurring session.
func InvitationEmail(to string, session SessionDetails, acceptURL, declineURL string) Email {
	body := strings.Builder{}
	body.WriteString("Hello,\n\n")
	body.WriteString(fmt.Sprintf("%s has invited you to a weekly tutoring session.\n\n", session.TutorName))
	writeSession(&body, session)
	body.WriteString("\nAccept the invitation:\n")
	body.WriteString(acceptURL + "\n\n")
	body.WriteString("Decline the invitation:\n")
	body.WriteString(declineURL + "\n\n")
	body.WriteString("If you did not expect this email, you can ignore it.\n")

	return Email{
		Kind:    KindInvitation,
		To:      to,
		Subject: fmt.Sprintf("%s invited you to a recurring session", session.TutorName),
		Body:    body.String(),
	}
}

// SessionCancelledEmail tells the student a single occurrence will not take place.
func SessionCancelledEmail(to string, session SessionDetails, date time.Time, reason *string) Email {
	formatted := date.Format("Monday, January 2, 2006")

	body := strings.Builder{}
	body.WriteString("Hello,\n\n")
	body.WriteString(fmt.Sprintf("Your session with %s on %s has been cancelled.\n\n", session.TutorName, formatted))
	writeSession(&body, session)
	if reason != nil && strings.TrimSpace(*reason) != "" {
		body.WriteString(fmt.Sprintf("\nReason: %s\n", strings.TrimSpace(*reason)))
	}
	body.WriteString("\nYour other weekly sessions are not affected.\n")

	return Email{
		Kind:    KindSessionCancelled,
		To:      to,
		Subject: fmt.Sprintf("Session cancelled for %s", formatted),
		Body:    body.String(),
	}
}

// ScheduleRemovedEmail tells the student the recurring session has been discontinued.
func ScheduleRemovedEmail(to string, session SessionDetails) Email {
	body := strings.Builder{}
	body.WriteString("Hello,\n\n")
	body.WriteString(fmt.Sprintf("%s has discontinued the following recurring session:\n\n", session.TutorName))
	writeSession(&body, session)
	body.WriteString("\nNo further sessions will take place in this slot.\n")

	return Email{
		Kind:    KindScheduleRemoved,
		To:      to,
		Subject: fmt.Sprintf("Your recurring sessions with %s have been discontinued", session.TutorName),
		Body:    body.String(),
	}
}

func writeSession(body *strings.Builder, session SessionDetails) {
	body.WriteString(fmt.Sprintf("Day: every %s\n", models.WeekdayName(session.DayOfWeek)))
	body.WriteString(fmt.Sprintf("Time: %s\n", session.StartTime))
	body.WriteString(fmt.Sprintf("Duration: %s\n", FormatDuration(session.Duration)))
	if loc := strings.TrimSpace(session.Location); loc != "" {
		body.WriteString(fmt.Sprintf("Location: %s\n", loc))
	}
}

// FormatDuration renders minutes as "45 min", "1h" or "1h 30m".
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	if rest := minutes % 60; rest > 0 {
		return fmt.Sprintf("%dh %dm", minutes/60, rest)
	}
	return fmt.Sprintf("%dh", minutes/60)
}
