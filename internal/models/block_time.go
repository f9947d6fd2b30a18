package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BlockTime is a one-off unavailability window layered over a master's
// recurring schedule (break, lunch, vacation...).
type BlockTime struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	MasterID uuid.UUID `gorm:"type:uuid;not null;index" json:"master_id"`

	StartTime time.Time `gorm:"not null" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`

	Reason      string `gorm:"size:255" json:"reason"`
	Description string `gorm:"type:text" json:"description"`

	CreatedAt time.Time `json:"created_at"`
}

func (b *BlockTime) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
