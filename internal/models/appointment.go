package models

import (
	"time"
)

// AppointmentKind distinguishes property visits from expert consultations.
type AppointmentKind string

const (
	KindVisit        AppointmentKind = "visit"
	KindConsultation AppointmentKind = "consultation"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusScheduled AppointmentStatus = "scheduled"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
	StatusRejected  AppointmentStatus = "rejected"
	StatusNoShow    AppointmentStatus = "no_show"
)

// Appointment represents a scheduled property visit or expert consultation.
// Rows are never deleted; the status carries the full lifecycle.
type Appointment struct {
	BaseModel
	Kind        AppointmentKind   `gorm:"size:20;not null;index:idx_resource_day" json:"kind"`
	ResourceID  string            `gorm:"size:36;not null;index:idx_resource_day" json:"resourceId"` // property for visits, expert for consultations
	RequesterID string            `gorm:"size:36;index" json:"requesterId"`
	Date        string            `gorm:"size:10;not null;index:idx_resource_day" json:"date"` // YYYY-MM-DD
	StartTime   time.Time         `json:"startTime"`
	EndTime     time.Time         `json:"endTime"`
	Status      AppointmentStatus `gorm:"size:20;default:'pending'" json:"status"`
	Reason      string            `gorm:"size:255" json:"reason"`
	Notes       string            `gorm:"type:text" json:"notes"`

	Requester User `gorm:"foreignKey:RequesterID" json:"-"`
}
