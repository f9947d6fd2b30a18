package booking

import (
	"context"
	"time"

	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/jazyl/booking-service/internal/domain/booking"
	"github.com/jazyl/booking-service/internal/httperr"
)

// Monday in the fixture's calendar.
var slotsDay = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func slotsAt(f *fixture, now time.Time, date time.Time) ([]string, error) {
	uc := NewGetAvailableSlots(f.repo)
	uc.now = func() time.Time { return now }
	return uc.Execute(context.Background(), domain.AvailabilityInput{
		TenantID:  f.tenant.ID,
		MasterID:  f.master.ID,
		ServiceID: f.service.ID,
		Date:      date,
	})
}

func TestGetAvailableSlots_GridAndMinAdvance(t *testing.T) {
	f := newFixture()
	f.setSchedule(0, "09:00", "12:00", true)

	// 08:00 same day, 2h min advance: 09:00 and 09:30 fall inside the
	// advance window, 11:30 would overrun the 12:00 close with a 45-minute
	// service.
	now := slotsDay.Add(8 * time.Hour)

	slots, err := slotsAt(f, now, slotsDay)
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00", "10:30", "11:00"}, slots)
}

func TestGetAvailableSlots_ExcludesActiveBookings(t *testing.T) {
	f := newFixture()
	f.setSchedule(0, "09:00", "18:00", true)

	// Confirmed 10:00-10:45 knocks out every candidate that would touch it.
	f.addBooking(slotsDay.Add(10*time.Hour), slotsDay.Add(10*time.Hour+45*time.Minute), domain.StatusConfirmed)

	now := slotsDay.Add(-24 * time.Hour)
	slots, err := slotsAt(f, now, slotsDay)
	require.NoError(t, err)

	assert.Contains(t, slots, "09:00")
	assert.NotContains(t, slots, "09:30")
	assert.NotContains(t, slots, "10:00")
	assert.NotContains(t, slots, "10:30")
	assert.Contains(t, slots, "11:00")
}

func TestGetAvailableSlots_CancelledBookingFreesSlot(t *testing.T) {
	f := newFixture()
	f.setSchedule(0, "09:00", "18:00", true)
	f.addBooking(slotsDay.Add(10*time.Hour), slotsDay.Add(10*time.Hour+45*time.Minute), domain.StatusCancelled)

	slots, err := slotsAt(f, slotsDay.Add(-24*time.Hour), slotsDay)
	require.NoError(t, err)
	assert.Contains(t, slots, "10:00")
}

func TestGetAvailableSlots_ExcludesBlockTimes(t *testing.T) {
	f := newFixture()
	f.setSchedule(0, "09:00", "18:00", true)

	// Lunch 12:00-13:00.
	f.addBlock(slotsDay.Add(12*time.Hour), slotsDay.Add(13*time.Hour), "lunch")

	slots, err := slotsAt(f, slotsDay.Add(-24*time.Hour), slotsDay)
	require.NoError(t, err)

	assert.NotContains(t, slots, "11:30")
	assert.NotContains(t, slots, "12:00")
	assert.NotContains(t, slots, "12:30")
	assert.Contains(t, slots, "13:00")
}

func TestGetAvailableSlots_MondayIndexedWeekday(t *testing.T) {
	f := newFixture()

	// Day 0 is Monday, day 6 is Sunday. A schedule stored under day 1
	// belongs to Tuesday and must not leak into a Monday lookup.
	f.setSchedule(1, "09:00", "18:00", true)
	slots, err := slotsAt(f, slotsDay.Add(-24*time.Hour), slotsDay)
	require.NoError(t, err)
	assert.Empty(t, slots)

	f.setSchedule(0, "09:00", "18:00", true)
	slots, err = slotsAt(f, slotsDay.Add(-24*time.Hour), slotsDay)
	require.NoError(t, err)
	assert.Contains(t, slots, "09:00")

	sunday := slotsDay.AddDate(0, 0, 6)
	f.setSchedule(6, "10:00", "14:00", true)
	slots, err = slotsAt(f, slotsDay.Add(-24*time.Hour), sunday)
	require.NoError(t, err)
	assert.Contains(t, slots, "10:00")
}

func TestGetAvailableSlots_MalformedScheduleTimes(t *testing.T) {
	f := newFixture()
	f.setSchedule(0, "9am", "18:00", true)

	// A corrupt stored start time closes the day rather than defaulting to
	// midnight.
	slots, err := slotsAt(f, slotsDay.Add(-24*time.Hour), slotsDay)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGetAvailableSlots_NonWorkingDay(t *testing.T) {
	f := newFixture()
	f.setSchedule(0, "09:00", "18:00", false)

	slots, err := slotsAt(f, slotsDay.Add(-24*time.Hour), slotsDay)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGetAvailableSlots_NoScheduleRow(t *testing.T) {
	f := newFixture()

	slots, err := slotsAt(f, slotsDay.Add(-24*time.Hour), slotsDay)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGetAvailableSlots_PastDay(t *testing.T) {
	f := newFixture()
	f.setSchedule(0, "09:00", "18:00", true)

	slots, err := slotsAt(f, slotsDay.Add(48*time.Hour), slotsDay)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGetAvailableSlots_BeyondHorizon(t *testing.T) {
	f := newFixture()
	f.setSchedule(0, "09:00", "18:00", true)

	// 31 days out with the default 30-day horizon.
	now := slotsDay.Add(-31 * 24 * time.Hour)
	slots, err := slotsAt(f, now, slotsDay)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGetAvailableSlots_ServiceLongerThanGrid(t *testing.T) {
	f := newFixture()
	f.setSchedule(0, "09:00", "10:00", true)

	// 45 minutes in a one-hour window leaves exactly one candidate.
	slots, err := slotsAt(f, slotsDay.Add(-24*time.Hour), slotsDay)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00"}, slots)
}

func TestGetAvailableSlots_InactiveMaster(t *testing.T) {
	f := newFixture()
	f.setSchedule(0, "09:00", "18:00", true)
	f.master.IsActive = false

	_, err := slotsAt(f, slotsDay.Add(-24*time.Hour), slotsDay)
	assert.Equal(t, httperr.CodeNotFound, httperr.BusinessCode(err))
}

func TestGetAvailableSlots_CrossTenantMaster(t *testing.T) {
	f := newFixture()
	f.setSchedule(0, "09:00", "18:00", true)

	other := newFixture()
	uc := NewGetAvailableSlots(f.repo)
	uc.now = func() time.Time { return slotsDay.Add(-24 * time.Hour) }

	_, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		TenantID:  f.tenant.ID,
		MasterID:  other.master.ID,
		ServiceID: f.service.ID,
		Date:      slotsDay,
	})
	assert.Equal(t, httperr.CodeNotFound, httperr.BusinessCode(err))
}

func TestGetAvailableSlots_UnknownTenant(t *testing.T) {
	f := newFixture()

	uc := NewGetAvailableSlots(f.repo)
	_, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		TenantID:  uuid.New(),
		MasterID:  f.master.ID,
		ServiceID: f.service.ID,
		Date:      slotsDay,
	})
	assert.Equal(t, httperr.CodeNotFound, httperr.BusinessCode(err))
}
