package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jazyl/booking-service/internal/audit"
	domain "github.com/jazyl/booking-service/internal/domain/booking"
	"github.com/jazyl/booking-service/internal/httperr"
	"github.com/jazyl/booking-service/internal/models"
	"github.com/jazyl/booking-service/internal/notify"
	"github.com/jazyl/booking-service/internal/timezone"
	"github.com/jazyl/booking-service/internal/tokens"
)

type CancelBooking struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier *notify.Dispatcher
	now      func() time.Time
}

func NewCancelBooking(
	repo domain.Repository,
	auditDisp *audit.Dispatcher,
	notifier *notify.Dispatcher,
) *CancelBooking {
	return &CancelBooking{
		repo:     repo,
		audit:    auditDisp,
		notifier: notifier,
		now:      time.Now,
	}
}

// Execute cancels via the emailed cancellation token. The token stays
// usable exactly as long as cancellation is logically permitted: tenant
// policy allows it and the cancellation window has not closed.
func (uc *CancelBooking) Execute(
	ctx context.Context,
	bookingID uuid.UUID,
	token string,
	reason string,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	if !tokens.Match(token, b.CancellationToken) {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidToken)
	}

	// Status check comes before the window check so a double cancel reports
	// invalid_transition, not a closed window.
	if err := domain.CanCancel(domain.Status(b.Status)); err != nil {
		return nil, err
	}

	tenant, err := uc.repo.GetTenantByID(ctx, b.TenantID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	now := uc.now().In(timezone.Location(tenant.Timezone))

	if !cancellationOpen(tenant, b, now) {
		return nil, httperr.ErrBusiness(httperr.CodeCancellationForbidden)
	}

	if err := domain.Cancel(b, now, reason); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: b.TenantID,
		Action:   "booking_cancelled",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{"reason": reason},
	})

	// GetBookingByID preloads client/master/service for exactly this.
	uc.notifier.EnqueueCancellation(notify.BookingEmail{
		To:          b.Client.Email,
		ClientName:  b.Client.FullName(),
		TenantName:  tenant.Name,
		Subdomain:   tenant.Subdomain,
		MasterName:  b.Master.DisplayName,
		ServiceName: b.Service.Name,
		Date:        b.Date,
		BookingID:   b.ID,
	})

	return b, nil
}

// cancellationOpen is the single authority for the can_cancel rule; the
// my-bookings listing exposes the same computation.
func cancellationOpen(tenant *models.Tenant, b *models.Booking, now time.Time) bool {
	settings := normalizeSettings(tenant.BookingSettings.Data())
	if !settings.AllowCancellation {
		return false
	}

	deadline := b.Date.Add(-time.Duration(settings.CancellationHours) * time.Hour)
	return now.Before(deadline)
}

// CanCancelNow reports whether a guest could cancel the booking at this
// instant. Listing endpoints expose it so clients never recompute policy.
func CanCancelNow(tenant *models.Tenant, b *models.Booking, now time.Time) bool {
	if domain.CanCancel(domain.Status(b.Status)) != nil {
		return false
	}
	return cancellationOpen(tenant, b, now)
}
