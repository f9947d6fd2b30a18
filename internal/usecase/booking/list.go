package booking

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/jazyl/booking-service/internal/domain/booking"
	"github.com/jazyl/booking-service/internal/models"
)

// ListBookings is the staff-facing listing with date/master/status filters.
type ListBookings struct {
	repo domain.Repository
}

func NewListBookings(repo domain.Repository) *ListBookings {
	return &ListBookings{repo: repo}
}

func (uc *ListBookings) Execute(
	ctx context.Context,
	tenantID uuid.UUID,
	filter domain.BookingFilter,
) ([]models.Booking, error) {
	return uc.repo.ListBookings(ctx, tenantID, filter)
}
