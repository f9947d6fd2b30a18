package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jazyl/booking-service/internal/audit"
	domain "github.com/jazyl/booking-service/internal/domain/booking"
	"github.com/jazyl/booking-service/internal/httperr"
	"github.com/jazyl/booking-service/internal/models"
	"github.com/jazyl/booking-service/internal/timezone"
	"github.com/jazyl/booking-service/internal/tokens"
)

type ConfirmBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewConfirmBooking(repo domain.Repository, auditDisp *audit.Dispatcher) *ConfirmBooking {
	return &ConfirmBooking{
		repo:  repo,
		audit: auditDisp,
		now:   time.Now,
	}
}

// Execute confirms a pending booking via its emailed token. Idempotent for
// an already-confirmed booking with the right token, so double-clicks and
// email-client prefetching don't surface errors. Tokens for cancelled,
// finished or past-dated bookings are expired.
func (uc *ConfirmBooking) Execute(
	ctx context.Context,
	bookingID uuid.UUID,
	token string,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	if !tokens.Match(token, b.ConfirmationToken) {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidToken)
	}

	tenant, err := uc.repo.GetTenantByID(ctx, b.TenantID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	now := uc.now().In(timezone.Location(tenant.Timezone))

	// Confirming a booking whose start already passed is stale.
	if now.After(b.Date) {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidToken)
	}

	switch domain.Status(b.Status) {
	case domain.StatusConfirmed:
		return b, nil
	case domain.StatusPending:
	default:
		return nil, httperr.ErrBusiness(httperr.CodeInvalidToken)
	}

	if err := domain.Confirm(b, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: b.TenantID,
		Action:   "booking_confirmed",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
