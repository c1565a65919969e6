package scheduling

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/stanstork/tutoring-api/internal/models"
	"github.com/stanstork/tutoring-api/internal/notification"
)

type memStore struct {
	mu            sync.Mutex
	seq           int
	schedules     map[string]models.Schedule
	tutors        map[string]models.Tutor
	users         map[string]models.User
	invitations   []*models.RegularInvitation
	cancellations []models.CancelledRegularSession

	failInsertFor    string
	failTutorLookup  bool
	beforeTransition func(inv *models.RegularInvitation)
}

func newMemStore() *memStore {
	return &memStore{
		schedules: map[string]models.Schedule{},
		tutors:    map[string]models.Tutor{},
		users:     map[string]models.User{},
	}
}

func (m *memStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

func (m *memStore) invitationByID(id string) *models.RegularInvitation {
	for _, inv := range m.invitations {
		if inv.ID == id {
			return inv
		}
	}
	return nil
}

type scheduleRepo struct{ *memStore }

func (r scheduleRepo) Upsert(_ context.Context, ownerID string, days models.WeeklySchedule) (models.Schedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.schedules[ownerID]
	if !ok {
		existing = models.Schedule{ID: r.nextID("sch"), OwnerID: ownerID, CreatedAt: time.Now()}
	}
	existing.Days = days
	existing.UpdatedAt = time.Now()
	r.schedules[ownerID] = existing
	return existing, nil
}

func (r scheduleRepo) GetByOwner(_ context.Context, ownerID string) (models.Schedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	schedule, ok := r.schedules[ownerID]
	if !ok {
		return models.Schedule{}, sql.ErrNoRows
	}
	return schedule, nil
}

type tutorRepo struct{ *memStore }

func (r tutorRepo) GetByID(_ context.Context, tutorID string) (models.Tutor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tutor, ok := r.tutors[tutorID]
	if !ok {
		return models.Tutor{}, sql.ErrNoRows
	}
	return tutor, nil
}

func (r tutorRepo) GetByUserID(_ context.Context, userID string) (models.Tutor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failTutorLookup {
		return models.Tutor{}, fmt.Errorf("connection refused")
	}
	for _, tutor := range r.tutors {
		if tutor.UserID == userID {
			return tutor, nil
		}
	}
	return models.Tutor{}, sql.ErrNoRows
}

func (r tutorRepo) Activate(_ context.Context, userID, name, email, color string) (models.Tutor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, tutor := range r.tutors {
		if tutor.UserID == userID {
			return tutor, nil
		}
	}
	now := time.Now()
	tutor := models.Tutor{ID: r.nextID("tutor"), UserID: userID, Name: name, Email: email, Color: color, ActivatedAt: &now}
	r.tutors[tutor.ID] = tutor
	return tutor, nil
}

type invitationRepo struct{ *memStore }

func (r invitationRepo) InsertIfAbsent(_ context.Context, inv models.RegularInvitation) (models.RegularInvitation, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failInsertFor != "" && inv.StudentEmail == r.failInsertFor {
		return models.RegularInvitation{}, false, fmt.Errorf("insert failed")
	}
	inv.StudentEmail = strings.ToLower(strings.TrimSpace(inv.StudentEmail))
	for _, existing := range r.invitations {
		if existing.Key() == inv.Key() {
			return *existing, false, nil
		}
	}
	inv.ID = r.nextID("inv")
	inv.Status = models.InvitationPending
	inv.CreatedAt = time.Now()
	inv.UpdatedAt = inv.CreatedAt
	stored := inv
	r.invitations = append(r.invitations, &stored)
	return stored, true, nil
}

func (r invitationRepo) GetByTokenHash(_ context.Context, tokenHash string) (models.RegularInvitation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inv := range r.invitations {
		if inv.TokenHash == tokenHash {
			return *inv, nil
		}
	}
	return models.RegularInvitation{}, sql.ErrNoRows
}

func (r invitationRepo) GetOwned(_ context.Context, invitationID, ownerUserID string) (models.OwnedInvitation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv := r.invitationByID(invitationID)
	if inv == nil {
		return models.OwnedInvitation{}, sql.ErrNoRows
	}
	tutor, ok := r.tutors[inv.TutorID]
	if !ok || tutor.UserID != ownerUserID {
		return models.OwnedInvitation{}, sql.ErrNoRows
	}
	return models.OwnedInvitation{RegularInvitation: *inv, TutorName: tutor.Name, TutorUserID: tutor.UserID}, nil
}

func (r invitationRepo) TransitionStatus(_ context.Context, invitationID string, from, to models.InvitationStatus, studentID *string) (models.RegularInvitation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv := r.invitationByID(invitationID)
	if inv == nil {
		return models.RegularInvitation{}, sql.ErrNoRows
	}
	if r.beforeTransition != nil {
		hook := r.beforeTransition
		r.beforeTransition = nil
		hook(inv)
	}
	if inv.Status != from {
		return models.RegularInvitation{}, sql.ErrNoRows
	}
	inv.Status = to
	if studentID != nil {
		id := *studentID
		inv.StudentID = &id
	}
	inv.UpdatedAt = time.Now()
	return *inv, nil
}

func (r invitationRepo) RotateToken(_ context.Context, invitationID, tokenHash string) (models.RegularInvitation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv := r.invitationByID(invitationID)
	if inv == nil || inv.Status != models.InvitationPending {
		return models.RegularInvitation{}, sql.ErrNoRows
	}
	inv.TokenHash = tokenHash
	return *inv, nil
}

func (r invitationRepo) ListByOwner(_ context.Context, ownerUserID string, status models.InvitationStatus) ([]models.RegularInvitation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.RegularInvitation
	for _, inv := range r.invitations {
		tutor := r.tutors[inv.TutorID]
		if tutor.UserID != ownerUserID {
			continue
		}
		if status != "" && inv.Status != status {
			continue
		}
		out = append(out, *inv)
	}
	return out, nil
}

type cancellationRepo struct{ *memStore }

func (r cancellationRepo) Append(_ context.Context, invitationID string, date time.Time, reason *string) (models.CancelledRegularSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry := models.CancelledRegularSession{
		ID:            r.nextID("cxl"),
		InvitationID:  invitationID,
		CancelledDate: date,
		Reason:        reason,
		CreatedAt:     time.Now(),
	}
	r.cancellations = append(r.cancellations, entry)
	return entry, nil
}

func (r cancellationRepo) ListDatesByOwner(_ context.Context, ownerUserID string) ([]models.CancelledDate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.CancelledDate
	for _, c := range r.cancellations {
		inv := r.invitationByID(c.InvitationID)
		if inv == nil || r.tutors[inv.TutorID].UserID != ownerUserID {
			continue
		}
		out = append(out, models.CancelledDate{InvitationID: c.InvitationID, CancelledDate: c.CancelledDate})
	}
	return out, nil
}

type timeblockRepo struct{ *memStore }

func (r timeblockRepo) ListByOwner(context.Context, string, *time.Time, *time.Time) ([]models.Timeblock, error) {
	return nil, nil
}

func (r timeblockRepo) HoursByType(context.Context, *time.Time, *time.Time) ([]models.TutorHoursByType, error) {
	return nil, nil
}

type userDirectory struct{ *memStore }

func (d userDirectory) GetUserByEmail(_ context.Context, email string) (models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	user, ok := d.users[strings.ToLower(email)]
	if !ok {
		return models.User{}, sql.ErrNoRows
	}
	return user, nil
}

func (d userDirectory) GetUserByID(_ context.Context, userID string) (models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, user := range d.users {
		if user.ID == userID {
			return user, nil
		}
	}
	return models.User{}, sql.ErrNoRows
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notification.Email
	err  error
}

func (n *recordingNotifier) Notify(_ context.Context, email notification.Email) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, email)
	return n.err
}

func (n *recordingNotifier) count(kind string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	total := 0
	for _, email := range n.sent {
		if email.Kind == kind {
			total++
		}
	}
	return total
}

type fakeInbox struct {
	mu        sync.Mutex
	responded []models.RegularInvitation
}

func (f *fakeInbox) Publish(context.Context, notification.Event) (models.Notification, error) {
	return models.Notification{}, nil
}

func (f *fakeInbox) NotifyInvitationResponded(_ context.Context, _ string, inv models.RegularInvitation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responded = append(f.responded, inv)
	return nil
}

func (f *fakeInbox) ListRecent(context.Context, string, int) ([]models.Notification, error) {
	return nil, nil
}

func (f *fakeInbox) MarkRead(context.Context, string, string) (models.Notification, error) {
	return models.Notification{}, nil
}
