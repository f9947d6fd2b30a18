package schedule

import (
	"context"

	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jazyl/booking-service/internal/httperr"
)

func TestReplaceWeekly_RejectsBadInput(t *testing.T) {
	s := NewStore(nil)
	masterID := uuid.New()

	cases := []struct {
		name string
		days []WeekdayHours
	}{
		{"day out of range", []WeekdayHours{{DayOfWeek: 7, StartTime: "09:00", EndTime: "18:00", IsWorking: true}}},
		{"duplicate day", []WeekdayHours{
			{DayOfWeek: 1, StartTime: "09:00", EndTime: "18:00", IsWorking: true},
			{DayOfWeek: 1, StartTime: "10:00", EndTime: "19:00", IsWorking: true},
		}},
		{"end before start", []WeekdayHours{{DayOfWeek: 1, StartTime: "18:00", EndTime: "09:00", IsWorking: true}}},
		{"unparseable time", []WeekdayHours{{DayOfWeek: 1, StartTime: "9am", EndTime: "6pm", IsWorking: true}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := s.ReplaceWeekly(context.Background(), masterID, tc.days)
			assert.Equal(t, httperr.CodeValidation, httperr.BusinessCode(err))
		})
	}
}

func TestValidHM(t *testing.T) {
	assert.True(t, validHM("09:00", "18:00"))
	assert.False(t, validHM("18:00", "18:00"))
	assert.False(t, validHM("", "18:00"))
}
