package booking

import (
	"time"

	"github.com/google/uuid"
)

type AvailabilityInput struct {
	TenantID  uuid.UUID
	MasterID  uuid.UUID
	ServiceID uuid.UUID

	// Date is a calendar day: midnight in the tenant's local time zone.
	Date time.Time
}

// SlotTimeFormat is the wire format for slot start times.
const SlotTimeFormat = "15:04"
