package dto

import (
	"github.com/google/uuid"

	"github.com/jazyl/booking-service/internal/models"
)

type CreateBookingRequest struct {
	MasterID  uuid.UUID `json:"master_id" binding:"required"`
	ServiceID uuid.UUID `json:"service_id" binding:"required"`

	ClientName  string `json:"client_name" binding:"required"`
	ClientEmail string `json:"client_email" binding:"required,email"`
	ClientPhone string `json:"client_phone" binding:"required"`

	// "YYYY-MM-DD HH:MM[:SS]" in the tenant's time zone.
	Date  string `json:"date" binding:"required"`
	Notes string `json:"notes"`
}

// BookingCreatedResponse is the only payload that ever carries the
// capability tokens besides the confirmation email.
type BookingCreatedResponse struct {
	*models.Booking
	ConfirmationToken string `json:"confirmation_token"`
	CancellationToken string `json:"cancellation_token"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason"`
}
