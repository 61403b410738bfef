package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// BaseModel contains common columns for all tables
type BaseModel struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate will set a UUID rather than numeric ID
func (base *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if base.ID == "" {
		base.ID = uuid.New().String()
	}
	return nil
}

// AllModels lists every model registered for auto migration.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&RefreshToken{},
		&ExpertProfile{},
		&Property{},
		&PropertyView{},
		&Favorite{},
		&Enquiry{},
		&EnquiryReply{},
		&Booking{},
		&Review{},
		&Appointment{},
		&ChatMessage{},
		&SupportTicket{},
		&TicketMessage{},
		&FAQ{},
	}
}

// InitDB opens a MySQL connection and migrates the schema.
func InitDB(config DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(config.DSN), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(AllModels()...); err != nil {
		return nil, err
	}

	return db, nil
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	DSN string
}
