package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stanstork/tutoring-api/internal/models"
)

var invitationRowColumns = []string{
	"id", "token_hash", "tutor_id", "student_email", "student_id", "day_of_week", "start_time",
	"duration", "location", "description", "color", "status", "created_at", "updated_at",
}

func invitationRow(status string) *sqlmock.Rows {
	now := time.Date(2025, 1, 28, 9, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(invitationRowColumns).
		AddRow("inv-1", "hash-1", "tutor-1", "ana@example.com", "student-1", 2, "10:00", 60, "Room 4", nil, "#ff0000", status, now, now)
}

func TestInvitationRepository_InsertIfAbsentCreates(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInvitationRepository(db)

	studentID := "student-1"
	color := "#ff0000"
	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (tutor_id, student_email, day_of_week, start_time) DO NOTHING")).
		WithArgs("hash-1", "tutor-1", "ana@example.com", "student-1", 2, "10:00", 60, "Room 4", nil, "#ff0000").
		WillReturnRows(invitationRow("pending"))

	inv, created, err := repo.InsertIfAbsent(context.Background(), models.RegularInvitation{
		TokenHash:    "hash-1",
		TutorID:      "tutor-1",
		StudentEmail: " Ana@Example.com ",
		StudentID:    &studentID,
		DayOfWeek:    2,
		StartTime:    "10:00",
		Duration:     60,
		Location:     "Room 4",
		Color:        &color,
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, models.InvitationPending, inv.Status)
	require.NotNil(t, inv.StudentID)
	assert.Equal(t, "student-1", *inv.StudentID)
	assert.Nil(t, inv.Description)
}

func TestInvitationRepository_InsertIfAbsentReturnsExisting(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInvitationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO tutoring.regular_invitations")).
		WillReturnRows(sqlmock.NewRows(invitationRowColumns))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE tutor_id = $1 AND student_email = $2 AND day_of_week = $3 AND start_time = $4")).
		WithArgs("tutor-1", "ana@example.com", 2, "10:00").
		WillReturnRows(invitationRow("declined"))

	inv, created, err := repo.InsertIfAbsent(context.Background(), models.RegularInvitation{
		TokenHash:    "hash-2",
		TutorID:      "tutor-1",
		StudentEmail: "ana@example.com",
		DayOfWeek:    2,
		StartTime:    "10:00",
		Duration:     60,
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, models.InvitationDeclined, inv.Status)
	assert.Equal(t, "hash-1", inv.TokenHash)
}

func TestInvitationRepository_TransitionStatusLostRace(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInvitationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1 AND status = $2")).
		WithArgs("inv-1", "pending", "accepted", nil).
		WillReturnRows(sqlmock.NewRows(invitationRowColumns))

	_, err := repo.TransitionStatus(context.Background(), "inv-1", models.InvitationPending, models.InvitationAccepted, nil)
	assert.True(t, IsNotFound(err))
}

func TestInvitationRepository_GetOwnedJoinsTutor(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInvitationRepository(db)

	now := time.Now()
	columns := append(append([]string{}, invitationRowColumns...), "name", "user_id")
	mock.ExpectQuery(regexp.QuoteMeta("JOIN tutoring.tutors t ON t.id = i.tutor_id")).
		WithArgs("inv-1", "user-1").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("inv-1", "hash-1", "tutor-1", "ana@example.com", nil, 2, "10:00", 60, "", "Algebra", nil, "accepted", now, now, "Maja Novak", "user-1"))

	owned, err := repo.GetOwned(context.Background(), " inv-1 ", "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Maja Novak", owned.TutorName)
	assert.Equal(t, "user-1", owned.TutorUserID)
	assert.Nil(t, owned.StudentID)
	require.NotNil(t, owned.Description)
	assert.Equal(t, "Algebra", *owned.Description)
}

func TestInvitationRepository_GetOwnedForeignOwner(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInvitationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE i.id = $1 AND t.user_id = $2")).
		WithArgs("inv-1", "intruder").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetOwned(context.Background(), "inv-1", "intruder")
	assert.True(t, IsNotFound(err))
}

func TestInvitationRepository_ListByOwnerEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInvitationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("($2 = '' OR i.status = $2)")).
		WithArgs("user-1", "accepted").
		WillReturnRows(sqlmock.NewRows(invitationRowColumns))

	invitations, err := repo.ListByOwner(context.Background(), "user-1", models.InvitationAccepted)
	require.NoError(t, err)
	assert.NotNil(t, invitations)
	assert.Empty(t, invitations)
}

func TestCancellationRepository_AppendKeepsReason(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCancellationRepository(db)

	date := time.Date(2025, 2, 4, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO tutoring.cancelled_regular_sessions")).
		WithArgs("inv-1", "2025-02-04", "sick").
		WillReturnRows(sqlmock.NewRows([]string{"id", "invitation_id", "cancelled_date", "reason", "created_at"}).
			AddRow("c-1", "inv-1", date, "sick", time.Now()))

	reason := "sick"
	session, err := repo.Append(context.Background(), "inv-1", date, &reason)
	require.NoError(t, err)
	assert.Equal(t, date, session.CancelledDate)
	require.NotNil(t, session.Reason)
	assert.Equal(t, "sick", *session.Reason)
}

func TestCancellationRepository_ListDatesByOwner(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCancellationRepository(db)

	date := time.Date(2025, 2, 4, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("JOIN tutoring.regular_invitations i ON i.id = c.invitation_id")).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"invitation_id", "cancelled_date"}).
			AddRow("inv-1", date).
			AddRow("inv-1", date))

	dates, err := repo.ListDatesByOwner(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, dates, 2)
}
