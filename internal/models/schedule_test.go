package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeeklyScheduleValidate(t *testing.T) {
	valid := WeeklySchedule{
		{Day: 2, TimeSlots: []TimeSlot{{StartTime: "10:00", Duration: 60, SessionType: SessionTypeRegulars}}},
		{Day: 0},
	}
	require.NoError(t, valid.Validate())

	assert.Error(t, WeeklySchedule{{Day: 7}}.Validate())
	assert.Error(t, WeeklySchedule{{Day: -1}}.Validate())
	assert.Error(t, WeeklySchedule{{Day: 1, TimeSlots: []TimeSlot{{StartTime: "25:00", Duration: 30}}}}.Validate())
	assert.Error(t, WeeklySchedule{{Day: 1, TimeSlots: []TimeSlot{{StartTime: "09:30", Duration: 0}}}}.Validate())
}

func TestTimeSlotIsRegularOffer(t *testing.T) {
	slot := TimeSlot{SessionType: SessionTypeRegulars, Email: "ana@example.com", StudentID: "u-1"}
	assert.True(t, slot.IsRegularOffer())

	slot.StudentID = ""
	assert.False(t, slot.IsRegularOffer())

	slot = TimeSlot{SessionType: SessionTypePrivate, Email: "ana@example.com", StudentID: "u-1"}
	assert.False(t, slot.IsRegularOffer())
}

func TestParseClock(t *testing.T) {
	minutes, err := ParseClock("10:30")
	require.NoError(t, err)
	assert.Equal(t, 630, minutes)

	_, err = ParseClock("10.30")
	assert.Error(t, err)
}

func TestWeekdayName(t *testing.T) {
	assert.Equal(t, "Sunday", WeekdayName(0))
	assert.Equal(t, "Tuesday", WeekdayName(2))
	assert.Equal(t, "Unknown", WeekdayName(9))
}

func TestWeeklyScheduleNormalizePadsStartTimes(t *testing.T) {
	days := WeeklySchedule{
		{Day: 2, TimeSlots: []TimeSlot{
			{StartTime: "9:00", Duration: 60, SessionType: SessionTypePrivate},
			{StartTime: " 09:30 ", Duration: 30, SessionType: SessionTypeGroup},
		}},
	}

	normalized, err := days.Normalize()
	require.NoError(t, err)
	assert.Equal(t, "09:00", normalized[0].TimeSlots[0].StartTime)
	assert.Equal(t, "09:30", normalized[0].TimeSlots[1].StartTime)
	assert.Equal(t, "9:00", days[0].TimeSlots[0].StartTime)
}

func TestWeeklyScheduleValidateRegularOffers(t *testing.T) {
	offer := func(studentID, email string) WeeklySchedule {
		return WeeklySchedule{{Day: 2, TimeSlots: []TimeSlot{{
			StartTime: "10:00", Duration: 60, SessionType: SessionTypeRegulars, StudentID: studentID, Email: email,
		}}}}
	}

	tests := []struct {
		name      string
		studentID string
		email     string
		wantErr   bool
	}{
		{name: "valid", studentID: "0b6f1d2e-3c4a-4b5c-8d9e-1f2a3b4c5d6e", email: "ana@example.com"},
		{name: "student id not a uuid", studentID: "s-ana", email: "ana@example.com", wantErr: true},
		{name: "email without domain", studentID: "0b6f1d2e-3c4a-4b5c-8d9e-1f2a3b4c5d6e", email: "ana", wantErr: true},
		{name: "display name form", studentID: "0b6f1d2e-3c4a-4b5c-8d9e-1f2a3b4c5d6e", email: "Ana <ana@example.com>", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := offer(tt.studentID, tt.email).Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}

	// Slots that are not regulars offers keep free-form student fields.
	other := WeeklySchedule{{Day: 2, TimeSlots: []TimeSlot{{StartTime: "10:00", Duration: 60, SessionType: SessionTypeGroup, StudentID: "s-ana", Email: "ana"}}}}
	assert.NoError(t, other.Validate())
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "09:05", FormatClock(545))
	assert.Equal(t, "23:59", FormatClock(23*60+59))
}
