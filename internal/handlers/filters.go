package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domain "github.com/jazyl/booking-service/internal/domain/booking"
)

// parseBookingFilter reads the staff listing query params. date_to is
// inclusive at day granularity, so it becomes an exclusive next-midnight
// bound.
func parseBookingFilter(c *gin.Context) (domain.BookingFilter, error) {
	var filter domain.BookingFilter

	if raw := c.Query("date_from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, errors.New("date_from must be YYYY-MM-DD")
		}
		filter.DateFrom = &t
	}

	if raw := c.Query("date_to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, errors.New("date_to must be YYYY-MM-DD")
		}
		end := t.Add(24 * time.Hour)
		filter.DateTo = &end
	}

	if raw := c.Query("master_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, errors.New("master_id must be a UUID")
		}
		filter.MasterID = &id
	}

	if raw := c.Query("status"); raw != "" {
		s := domain.Status(raw)
		switch s {
		case domain.StatusPending, domain.StatusConfirmed, domain.StatusCompleted,
			domain.StatusCancelled, domain.StatusNoShow:
			filter.Status = &s
		default:
			return filter, errors.New("unknown status")
		}
	}

	return filter, nil
}
