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
	"github.com/jazyl/booking-service/internal/tokens"
)

func TestConfirmBooking_HappyPath(t *testing.T) {
	f := newFixture()
	b := f.addBooking(slotsDay.Add(10*time.Hour), slotsDay.Add(10*time.Hour+45*time.Minute), domain.StatusPending)
	b.ConfirmationToken = tokens.New()

	uc := NewConfirmBooking(f.repo, nil)
	uc.now = func() time.Time { return slotsDay.Add(8 * time.Hour) }

	got, err := uc.Execute(context.Background(), b.ID, b.ConfirmationToken)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), got.Status)
	require.NotNil(t, got.ConfirmedAt)

	stored := f.repo.bookings[b.ID]
	assert.Equal(t, string(domain.StatusConfirmed), stored.Status)
}

func TestConfirmBooking_Idempotent(t *testing.T) {
	f := newFixture()
	b := f.addBooking(slotsDay.Add(10*time.Hour), slotsDay.Add(10*time.Hour+45*time.Minute), domain.StatusConfirmed)
	b.ConfirmationToken = tokens.New()

	uc := NewConfirmBooking(f.repo, nil)
	uc.now = func() time.Time { return slotsDay.Add(8 * time.Hour) }

	got, err := uc.Execute(context.Background(), b.ID, b.ConfirmationToken)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), got.Status)
}

func TestConfirmBooking_WrongToken(t *testing.T) {
	f := newFixture()
	b := f.addBooking(slotsDay.Add(10*time.Hour), slotsDay.Add(10*time.Hour+45*time.Minute), domain.StatusPending)
	b.ConfirmationToken = tokens.New()

	uc := NewConfirmBooking(f.repo, nil)
	uc.now = func() time.Time { return slotsDay.Add(8 * time.Hour) }

	_, err := uc.Execute(context.Background(), b.ID, tokens.New())
	assert.Equal(t, httperr.CodeInvalidToken, httperr.BusinessCode(err))

	// The booking stays pending.
	assert.Equal(t, string(domain.StatusPending), f.repo.bookings[b.ID].Status)
}

func TestConfirmBooking_StaleAfterStart(t *testing.T) {
	f := newFixture()
	b := f.addBooking(slotsDay.Add(10*time.Hour), slotsDay.Add(10*time.Hour+45*time.Minute), domain.StatusPending)
	b.ConfirmationToken = tokens.New()

	uc := NewConfirmBooking(f.repo, nil)
	uc.now = func() time.Time { return slotsDay.Add(11 * time.Hour) }

	_, err := uc.Execute(context.Background(), b.ID, b.ConfirmationToken)
	assert.Equal(t, httperr.CodeInvalidToken, httperr.BusinessCode(err))
}

func TestConfirmBooking_CancelledBooking(t *testing.T) {
	f := newFixture()
	b := f.addBooking(slotsDay.Add(10*time.Hour), slotsDay.Add(10*time.Hour+45*time.Minute), domain.StatusCancelled)
	b.ConfirmationToken = tokens.New()

	uc := NewConfirmBooking(f.repo, nil)
	uc.now = func() time.Time { return slotsDay.Add(8 * time.Hour) }

	_, err := uc.Execute(context.Background(), b.ID, b.ConfirmationToken)
	assert.Equal(t, httperr.CodeInvalidToken, httperr.BusinessCode(err))
}

func TestConfirmBooking_UnknownBooking(t *testing.T) {
	f := newFixture()

	uc := NewConfirmBooking(f.repo, nil)
	_, err := uc.Execute(context.Background(), uuid.New(), tokens.New())
	assert.Equal(t, httperr.CodeNotFound, httperr.BusinessCode(err))
}
