package booking

import (
	"context"
	"time"

	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/jazyl/booking-service/internal/domain/booking"
	"github.com/jazyl/booking-service/internal/httperr"
)

func TestListMyBookings_CanCancelFlag(t *testing.T) {
	f := newFixture()

	client, err := f.repo.GetOrCreateClient(context.Background(), f.tenant.ID, "Jamie Rivera", "+15550001111", "jamie@example.com")
	require.NoError(t, err)

	upcoming := f.addBooking(slotsDay.Add(10*time.Hour), slotsDay.Add(10*time.Hour+45*time.Minute), domain.StatusConfirmed)
	upcoming.ClientID = client.ID

	soon := f.addBooking(slotsDay.Add(5*time.Hour), slotsDay.Add(5*time.Hour+45*time.Minute), domain.StatusConfirmed)
	soon.ClientID = client.ID

	done := f.addBooking(slotsDay.Add(-24*time.Hour), slotsDay.Add(-23*time.Hour), domain.StatusCompleted)
	done.ClientID = client.ID

	uc := NewListMyBookings(f.repo)
	uc.now = func() time.Time { return slotsDay.Add(4 * time.Hour) }

	items, err := uc.Execute(context.Background(), f.tenant.ID, "Jamie@Example.com")
	require.NoError(t, err)
	require.Len(t, items, 3)

	byID := map[string]MyBookingItem{}
	for _, it := range items {
		byID[it.ID.String()] = it
	}

	assert.True(t, byID[upcoming.ID.String()].CanCancel)
	// Inside the 2-hour cancellation window.
	assert.False(t, byID[soon.ID.String()].CanCancel)
	assert.False(t, byID[done.ID.String()].CanCancel)
}

func TestListMyBookings_EmailRequired(t *testing.T) {
	f := newFixture()

	uc := NewListMyBookings(f.repo)
	_, err := uc.Execute(context.Background(), f.tenant.ID, "   ")
	assert.Equal(t, httperr.CodeValidation, httperr.BusinessCode(err))
}

func TestListMyBookings_ScopedToTenant(t *testing.T) {
	f := newFixture()
	other := newFixture()

	client, err := f.repo.GetOrCreateClient(context.Background(), f.tenant.ID, "Jamie", "+15550001111", "jamie@example.com")
	require.NoError(t, err)
	b := f.addBooking(slotsDay.Add(10*time.Hour), slotsDay.Add(11*time.Hour), domain.StatusConfirmed)
	b.ClientID = client.ID

	uc := NewListMyBookings(other.repo)
	items, err := uc.Execute(context.Background(), other.tenant.ID, "jamie@example.com")
	require.NoError(t, err)
	assert.Empty(t, items)
}
