package booking

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	domain "github.com/jazyl/booking-service/internal/domain/booking"
	"github.com/jazyl/booking-service/internal/httperr"
	"github.com/jazyl/booking-service/internal/models"
	"github.com/jazyl/booking-service/internal/timezone"
)

// MyBookingItem flags each booking with the server-authoritative can_cancel
// so clients never re-derive cancellation policy from status and timing.
type MyBookingItem struct {
	models.Booking
	CanCancel bool `json:"can_cancel"`
}

type ListMyBookings struct {
	repo domain.Repository
	now  func() time.Time
}

func NewListMyBookings(repo domain.Repository) *ListMyBookings {
	return &ListMyBookings{
		repo: repo,
		now:  time.Now,
	}
}

func (uc *ListMyBookings) Execute(
	ctx context.Context,
	tenantID uuid.UUID,
	email string,
) ([]MyBookingItem, error) {

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}

	tenant, err := uc.repo.GetTenantByID(ctx, tenantID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	bookings, err := uc.repo.ListBookingsByClientEmail(ctx, tenantID, email)
	if err != nil {
		return nil, err
	}

	now := uc.now().In(timezone.Location(tenant.Timezone))

	items := make([]MyBookingItem, 0, len(bookings))
	for i := range bookings {
		items = append(items, MyBookingItem{
			Booking:   bookings[i],
			CanCancel: CanCancelNow(tenant, &bookings[i], now),
		})
	}

	return items, nil
}
