package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Booking struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	TenantID  uuid.UUID `gorm:"type:uuid;not null;index" json:"tenant_id"`
	MasterID  uuid.UUID `gorm:"type:uuid;not null;index:idx_booking_master_date" json:"master_id"`
	ClientID  uuid.UUID `gorm:"type:uuid;not null" json:"client_id"`
	ServiceID uuid.UUID `gorm:"type:uuid;not null" json:"service_id"`

	Master  Master  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"master,omitempty"`
	Client  Client  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client,omitempty"`
	Service Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service,omitempty"`

	// Date is the start instant; EndTime = Date + service duration at
	// booking time. Price is a snapshot of the service price.
	Date    time.Time `gorm:"not null;index:idx_booking_master_date" json:"date"`
	EndTime time.Time `gorm:"not null" json:"end_time"`
	Price   float64   `gorm:"not null" json:"price"`

	Status string `gorm:"size:20;default:'pending';index" json:"status"`
	Notes  string `gorm:"type:text" json:"notes"`

	// Capability tokens, returned only on creation and via email links.
	ConfirmationToken string `gorm:"size:255" json:"-"`
	CancellationToken string `gorm:"size:255" json:"-"`

	ConfirmedAt        *time.Time `json:"confirmed_at"`
	CompletedAt        *time.Time `json:"completed_at"`
	CancelledAt        *time.Time `json:"cancelled_at"`
	CancellationReason string     `gorm:"type:text" json:"cancellation_reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
