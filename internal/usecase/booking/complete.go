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
)

type CompleteBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewCompleteBooking(repo domain.Repository, auditDisp *audit.Dispatcher) *CompleteBooking {
	return &CompleteBooking{
		repo:  repo,
		audit: auditDisp,
		now:   time.Now,
	}
}

func (uc *CompleteBooking) Execute(
	ctx context.Context,
	tenantID uuid.UUID,
	userID uuid.UUID,
	bookingID uuid.UUID,
) (*models.Booking, error) {

	tenant, err := uc.repo.GetTenantByID(ctx, tenantID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	b, err := uc.repo.GetBooking(ctx, tenantID, bookingID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	now := uc.now().In(timezone.Location(tenant.Timezone))
	if err := domain.Complete(b, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		UserID:   &userID,
		Action:   "booking_completed",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
