package models

import (
	"time"
)

// ChatStatus represents the delivery state of a chat message
type ChatStatus string

const (
	ChatSent ChatStatus = "sent"
	ChatRead ChatStatus = "read"
)

// ChatMessage is a direct message between two users, optionally attached to
// the property the conversation is about.
type ChatMessage struct {
	BaseModel
	SenderID   string     `gorm:"size:36;index" json:"senderId"`
	ReceiverID string     `gorm:"size:36;index" json:"receiverId"`
	PropertyID string     `gorm:"size:36;index" json:"propertyId,omitempty"`
	Content    string     `gorm:"type:text" json:"content"`
	Status     ChatStatus `gorm:"size:20;default:'sent'" json:"status"`
	ReadAt     *time.Time `json:"readAt,omitempty"`

	Sender   User `gorm:"foreignKey:SenderID" json:"sender"`
	Receiver User `gorm:"foreignKey:ReceiverID" json:"receiver"`
}
