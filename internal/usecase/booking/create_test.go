package booking

import (
	"context"
	"time"

	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/jazyl/booking-service/internal/domain/booking"
	"github.com/jazyl/booking-service/internal/httperr"
	"github.com/jazyl/booking-service/internal/models"
)

func createAt(f *fixture, now time.Time, date string) (*models.Booking, error) {
	uc := NewCreateBooking(f.repo, nil, nil)
	uc.now = func() time.Time { return now }

	return uc.Execute(context.Background(), CreateBookingInput{
		TenantID:    f.tenant.ID,
		MasterID:    f.master.ID,
		ServiceID:   f.service.ID,
		ClientName:  "Jamie Rivera",
		ClientEmail: "jamie@example.com",
		ClientPhone: "+15550001111",
		Date:        date,
	})
}

func TestCreateBooking_HappyPath(t *testing.T) {
	f := newFixture()
	f.setSchedule(0, "09:00", "18:00", true)

	now := slotsDay.Add(8 * time.Hour)
	b, err := createAt(f, now, "2026-03-02 10:30:00")
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPending), b.Status)
	assert.Equal(t, slotsDay.Add(10*time.Hour+30*time.Minute), b.Date.UTC())
	assert.Equal(t, b.Date.Add(45*time.Minute), b.EndTime)
	assert.Equal(t, 50.0, b.Price)
	assert.Len(t, b.ConfirmationToken, 43)
	assert.Len(t, b.CancellationToken, 43)
	assert.NotEqual(t, b.ConfirmationToken, b.CancellationToken)

	// Guest identity was created under the tenant.
	require.Len(t, f.repo.clients, 1)
	assert.Equal(t, "jamie@example.com", f.repo.clients[0].Email)
	assert.Equal(t, b.ClientID, f.repo.clients[0].ID)
}

func TestCreateBooking_ReusesExistingClient(t *testing.T) {
	f := newFixture()
	f.setSchedule(0, "09:00", "18:00", true)

	now := slotsDay.Add(8 * time.Hour)
	_, err := createAt(f, now, "2026-03-02 10:30:00")
	require.NoError(t, err)
	_, err = createAt(f, now, "2026-03-02 14:00:00")
	require.NoError(t, err)

	assert.Len(t, f.repo.clients, 1)
}

func TestCreateBooking_TakenSlotConflicts(t *testing.T) {
	f := newFixture()
	f.setSchedule(0, "09:00", "18:00", true)
	f.addBooking(slotsDay.Add(10*time.Hour+30*time.Minute), slotsDay.Add(11*time.Hour+15*time.Minute), domain.StatusPending)

	_, err := createAt(f, slotsDay.Add(8*time.Hour), "2026-03-02 11:00:00")
	assert.Equal(t, httperr.CodeSlotUnavailable, httperr.BusinessCode(err))
}

func TestCreateBooking_OffGridStart(t *testing.T) {
	f := newFixture()
	f.setSchedule(0, "09:00", "18:00", true)

	_, err := createAt(f, slotsDay.Add(8*time.Hour), "2026-03-02 10:10:00")
	assert.Equal(t, httperr.CodeSlotUnavailable, httperr.BusinessCode(err))
}

func TestCreateBooking_InsideMinAdvanceWindow(t *testing.T) {
	f := newFixture()
	f.setSchedule(0, "09:00", "18:00", true)

	// 09:30 start requested at 08:00 with a 2-hour minimum.
	_, err := createAt(f, slotsDay.Add(8*time.Hour), "2026-03-02 09:30:00")
	assert.Equal(t, httperr.CodeSlotUnavailable, httperr.BusinessCode(err))
}

func TestCreateBooking_OutsideWorkingHours(t *testing.T) {
	f := newFixture()
	f.setSchedule(0, "09:00", "12:00", true)

	// Fits the grid but overruns the 12:00 close.
	_, err := createAt(f, slotsDay.Add(8*time.Hour), "2026-03-02 11:30:00")
	assert.Equal(t, httperr.CodeSlotUnavailable, httperr.BusinessCode(err))
}

func TestCreateBooking_BlockedInterval(t *testing.T) {
	f := newFixture()
	f.setSchedule(0, "09:00", "18:00", true)
	f.addBlock(slotsDay.Add(14*time.Hour), slotsDay.Add(15*time.Hour), "break")

	_, err := createAt(f, slotsDay.Add(8*time.Hour), "2026-03-02 14:30:00")
	assert.Equal(t, httperr.CodeSlotUnavailable, httperr.BusinessCode(err))
}

func TestCreateBooking_MalformedScheduleTimes(t *testing.T) {
	f := newFixture()
	f.setSchedule(0, "09:00", "6pm", true)

	_, err := createAt(f, slotsDay.Add(8*time.Hour), "2026-03-02 10:30:00")
	assert.Equal(t, httperr.CodeSlotUnavailable, httperr.BusinessCode(err))
}

func TestCreateBooking_MalformedDate(t *testing.T) {
	f := newFixture()
	f.setSchedule(0, "09:00", "18:00", true)

	_, err := createAt(f, slotsDay.Add(8*time.Hour), "02/03/2026 10:30")
	assert.Equal(t, httperr.CodeValidation, httperr.BusinessCode(err))
}

func TestCreateBooking_InactiveService(t *testing.T) {
	f := newFixture()
	f.setSchedule(0, "09:00", "18:00", true)
	f.service.IsActive = false

	_, err := createAt(f, slotsDay.Add(8*time.Hour), "2026-03-02 10:30:00")
	assert.Equal(t, httperr.CodeNotFound, httperr.BusinessCode(err))
}
