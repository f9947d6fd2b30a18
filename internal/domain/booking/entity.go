package booking

import (
	"time"

	"github.com/jazyl/booking-service/internal/httperr"
	"github.com/jazyl/booking-service/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Confirm transitions pending → confirmed. Confirming an already-confirmed
// booking is a no-op success so double-clicked email links don't error.
func Confirm(b *models.Booking, now time.Time) error {
	if Status(b.Status) == StatusConfirmed {
		return nil
	}

	if err := CanConfirm(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusConfirmed)
	b.ConfirmedAt = &now
	return nil
}

func Cancel(b *models.Booking, now time.Time, reason string) error {
	if err := CanCancel(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCancelled)
	b.CancelledAt = &now
	b.CancellationReason = reason
	return nil
}

// Complete is a staff action, legal only once the appointment has ended.
func Complete(b *models.Booking, now time.Time) error {
	if err := CanComplete(Status(b.Status)); err != nil {
		return err
	}

	if now.Before(b.EndTime) {
		return httperr.ErrBusiness(httperr.CodeValidation)
	}

	b.Status = string(StatusCompleted)
	b.CompletedAt = &now
	return nil
}

func MarkNoShow(b *models.Booking, now time.Time) error {
	if err := CanMarkNoShow(Status(b.Status)); err != nil {
		return err
	}

	if now.Before(b.EndTime) {
		return httperr.ErrBusiness(httperr.CodeValidation)
	}

	b.Status = string(StatusNoShow)
	return nil
}

// Overlaps reports whether [start, end) intersects the booking's interval.
func Overlaps(b *models.Booking, start, end time.Time) bool {
	return start.Before(b.EndTime) && end.After(b.Date)
}
