package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jazyl/booking-service/internal/models"
)

type BookingFilter struct {
	DateFrom *time.Time
	DateTo   *time.Time
	MasterID *uuid.UUID
	Status   *Status
}

// Repository is the storage contract of the booking core. Every lookup is
// tenant-scoped: an id that exists under another tenant behaves exactly like
// an id that does not exist.
type Repository interface {
	// -------- Tenant --------
	GetTenantByID(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Tenant, error)

	// -------- Master / Service --------
	GetMaster(
		ctx context.Context,
		tenantID uuid.UUID,
		masterID uuid.UUID,
	) (*models.Master, error)

	GetService(
		ctx context.Context,
		tenantID uuid.UUID,
		serviceID uuid.UUID,
	) (*models.Service, error)

	// -------- Schedule --------
	GetSchedule(
		ctx context.Context,
		masterID uuid.UUID,
		dayOfWeek int,
	) (*models.MasterSchedule, error)

	ListBlockTimes(
		ctx context.Context,
		masterID uuid.UUID,
		start time.Time,
		end time.Time,
	) ([]models.BlockTime, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		tenantID uuid.UUID,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// -------- Booking (create / conflict) --------

	// CreateBookingIfFree re-reads conflicting active bookings and block
	// times under lock and inserts atomically. Returns a slot_unavailable
	// business error when the interval is taken.
	CreateBookingIfFree(
		ctx context.Context,
		b *models.Booking,
	) error

	// ListActiveBookings returns pending/confirmed bookings whose start
	// falls in [start, end), ordered by start time.
	ListActiveBookings(
		ctx context.Context,
		masterID uuid.UUID,
		start time.Time,
		end time.Time,
	) ([]models.Booking, error)

	// -------- Booking (state change) --------

	// GetBookingByID is for the tokenized confirm/cancel flows, where the
	// token itself is the capability and no tenant context is available.
	GetBookingByID(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Booking, error)

	GetBooking(
		ctx context.Context,
		tenantID uuid.UUID,
		id uuid.UUID,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Booking (queries) --------
	ListBookings(
		ctx context.Context,
		tenantID uuid.UUID,
		filter BookingFilter,
	) ([]models.Booking, error)

	ListBookingsByClientEmail(
		ctx context.Context,
		tenantID uuid.UUID,
		email string,
	) ([]models.Booking, error)
}
