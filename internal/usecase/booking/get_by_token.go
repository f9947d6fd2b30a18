package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/jazyl/booking-service/internal/domain/booking"
	"github.com/jazyl/booking-service/internal/httperr"
	"github.com/jazyl/booking-service/internal/timezone"
	"github.com/jazyl/booking-service/internal/tokens"
)

// GetByCancellationToken backs the cancellation confirmation page: it shows
// the booking being cancelled and whether cancelling is still possible.
type GetByCancellationToken struct {
	repo domain.Repository
	now  func() time.Time
}

func NewGetByCancellationToken(repo domain.Repository) *GetByCancellationToken {
	return &GetByCancellationToken{
		repo: repo,
		now:  time.Now,
	}
}

func (uc *GetByCancellationToken) Execute(
	ctx context.Context,
	bookingID uuid.UUID,
	token string,
) (*MyBookingItem, error) {

	b, err := uc.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	if !tokens.Match(token, b.CancellationToken) {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidToken)
	}

	tenant, err := uc.repo.GetTenantByID(ctx, b.TenantID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	now := uc.now().In(timezone.Location(tenant.Timezone))

	return &MyBookingItem{
		Booking:   *b,
		CanCancel: CanCancelNow(tenant, b, now),
	}, nil
}
