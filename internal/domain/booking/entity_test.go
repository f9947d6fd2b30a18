package booking

import (
	"time"

	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jazyl/booking-service/internal/httperr"
	"github.com/jazyl/booking-service/internal/models"
)

func testBooking(status Status) *models.Booking {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	return &models.Booking{
		Date:    start,
		EndTime: start.Add(45 * time.Minute),
		Status:  string(status),
	}
}

func TestConfirm(t *testing.T) {
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	b := testBooking(StatusPending)
	require.NoError(t, Confirm(b, now))
	assert.Equal(t, string(StatusConfirmed), b.Status)
	require.NotNil(t, b.ConfirmedAt)
	assert.Equal(t, now, *b.ConfirmedAt)

	// Confirming again is a no-op, the original timestamp survives.
	require.NoError(t, Confirm(b, now.Add(time.Hour)))
	assert.Equal(t, now, *b.ConfirmedAt)

	b = testBooking(StatusCancelled)
	err := Confirm(b, now)
	assert.Equal(t, httperr.CodeInvalidTransition, httperr.BusinessCode(err))
}

func TestCancel(t *testing.T) {
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	b := testBooking(StatusConfirmed)
	require.NoError(t, Cancel(b, now, "sick"))
	assert.Equal(t, string(StatusCancelled), b.Status)
	assert.Equal(t, "sick", b.CancellationReason)
	require.NotNil(t, b.CancelledAt)
}

func TestComplete_TimeGate(t *testing.T) {
	b := testBooking(StatusConfirmed)

	// Before the appointment ends.
	err := Complete(b, b.EndTime.Add(-time.Minute))
	assert.Equal(t, httperr.CodeValidation, httperr.BusinessCode(err))
	assert.Equal(t, string(StatusConfirmed), b.Status)

	require.NoError(t, Complete(b, b.EndTime))
	assert.Equal(t, string(StatusCompleted), b.Status)
	assert.NotNil(t, b.CompletedAt)
}

func TestMarkNoShow_TimeGate(t *testing.T) {
	b := testBooking(StatusPending)

	err := MarkNoShow(b, b.EndTime.Add(-time.Minute))
	assert.Equal(t, httperr.CodeValidation, httperr.BusinessCode(err))

	require.NoError(t, MarkNoShow(b, b.EndTime.Add(time.Minute)))
	assert.Equal(t, string(StatusNoShow), b.Status)
}

func TestOverlaps(t *testing.T) {
	b := testBooking(StatusConfirmed)

	touchBefore := b.Date.Add(-30 * time.Minute)
	assert.False(t, Overlaps(b, touchBefore, b.Date))
	assert.False(t, Overlaps(b, b.EndTime, b.EndTime.Add(30*time.Minute)))

	assert.True(t, Overlaps(b, b.Date.Add(15*time.Minute), b.Date.Add(20*time.Minute)))
	assert.True(t, Overlaps(b, b.Date.Add(-15*time.Minute), b.Date.Add(15*time.Minute)))
	assert.True(t, Overlaps(b, b.Date.Add(30*time.Minute), b.EndTime.Add(30*time.Minute)))
}
