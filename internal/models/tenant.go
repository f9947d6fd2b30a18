package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type WorkingDay struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

type BookingSettings struct {
	MinAdvanceHours   int  `json:"min_advance_hours"`
	MaxAdvanceDays    int  `json:"max_advance_days"`
	SlotDuration      int  `json:"slot_duration"`
	AllowCancellation bool `json:"allow_cancellation"`
	CancellationHours int  `json:"cancellation_hours"`
}

type NotificationSettings struct {
	EmailEnabled  bool  `json:"email_enabled"`
	SMSEnabled    bool  `json:"sms_enabled"`
	ReminderHours []int `json:"reminder_hours"`
}

type Tenant struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Subdomain string    `gorm:"size:63;uniqueIndex;not null" json:"subdomain"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;not null" json:"email"`
	Phone     string    `gorm:"size:20" json:"phone"`
	Address   string    `gorm:"type:text" json:"address"`
	Timezone  string    `gorm:"size:64" json:"timezone"`

	LogoURL        string `gorm:"size:500" json:"logo_url"`
	PrimaryColor   string `gorm:"size:7;default:'#000000'" json:"primary_color"`
	SecondaryColor string `gorm:"size:7;default:'#FFFFFF'" json:"secondary_color"`

	WorkingHours         datatypes.JSONType[map[string]WorkingDay] `json:"working_hours"`
	BookingSettings      datatypes.JSONType[BookingSettings]       `json:"booking_settings"`
	NotificationSettings datatypes.JSONType[NotificationSettings]  `json:"notification_settings"`

	IsActive   bool `gorm:"default:true" json:"is_active"`
	IsVerified bool `gorm:"default:false" json:"is_verified"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func DefaultWorkingHours() map[string]WorkingDay {
	return map[string]WorkingDay{
		"monday":    {Open: "09:00", Close: "20:00"},
		"tuesday":   {Open: "09:00", Close: "20:00"},
		"wednesday": {Open: "09:00", Close: "20:00"},
		"thursday":  {Open: "09:00", Close: "20:00"},
		"friday":    {Open: "09:00", Close: "20:00"},
		"saturday":  {Open: "10:00", Close: "18:00"},
		"sunday":    {Open: "10:00", Close: "18:00"},
	}
}

func DefaultBookingSettings() BookingSettings {
	return BookingSettings{
		MinAdvanceHours:   2,
		MaxAdvanceDays:    30,
		SlotDuration:      30,
		AllowCancellation: true,
		CancellationHours: 2,
	}
}

func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		EmailEnabled:  true,
		SMSEnabled:    false,
		ReminderHours: []int{24, 2},
	}
}
