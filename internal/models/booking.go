package models

import (
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// Booking is a tenant committing to rent a property. The token amount is
// the deposit captured when the booking is placed; it feeds revenue in the
// owner analytics.
type Booking struct {
	BaseModel
	TenantID    string        `gorm:"size:36;index;not null" json:"tenantId"`
	PropertyID  string        `gorm:"size:36;index;not null" json:"propertyId"`
	OwnerID     string        `gorm:"size:36;index;not null" json:"ownerId"`
	TokenAmount float64       `json:"tokenAmount"`
	MonthlyRent float64       `json:"monthlyRent"`
	MoveInDate  time.Time     `json:"moveInDate"`
	Status      BookingStatus `gorm:"size:20;default:'pending'" json:"status"`
	Notes       string        `gorm:"type:text" json:"notes"`

	Tenant   User     `gorm:"foreignKey:TenantID" json:"-"`
	Property Property `gorm:"foreignKey:PropertyID" json:"-"`
}
