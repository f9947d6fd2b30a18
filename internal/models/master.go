package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Master struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;index" json:"tenant_id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`

	DisplayName    string                      `gorm:"size:255;not null" json:"display_name"`
	Description    string                      `gorm:"type:text" json:"description"`
	PhotoURL       string                      `gorm:"size:500" json:"photo_url"`
	Specialization datatypes.JSONType[[]string] `json:"specialization"`

	Rating       float64 `gorm:"default:0" json:"rating"`
	ReviewsCount int     `gorm:"default:0" json:"reviews_count"`

	IsActive  bool `gorm:"default:true" json:"is_active"`
	IsVisible bool `gorm:"default:true" json:"is_visible"`

	Schedules []MasterSchedule `gorm:"constraint:OnDelete:CASCADE" json:"schedules,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *Master) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// MasterSchedule is the recurring weekly availability: one row per weekday.
// DayOfWeek is Monday-indexed (0 = Monday .. 6 = Sunday), matching what the
// schedule editor in the storefront writes.
type MasterSchedule struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	MasterID uuid.UUID `gorm:"type:uuid;not null;index:idx_schedule_master_day,unique" json:"master_id"`

	DayOfWeek int    `gorm:"not null;index:idx_schedule_master_day,unique" json:"day_of_week"`
	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`

	IsWorking bool `gorm:"default:true" json:"is_working"`
}

func (s *MasterSchedule) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
