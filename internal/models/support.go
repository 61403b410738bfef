package models

// TicketStatus represents the handling state of a support ticket
type TicketStatus string

const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in_progress"
	TicketResolved   TicketStatus = "resolved"
	TicketClosed     TicketStatus = "closed"
)

// TicketPriority ranks a support ticket
type TicketPriority string

const (
	PriorityLow    TicketPriority = "low"
	PriorityMedium TicketPriority = "medium"
	PriorityHigh   TicketPriority = "high"
)

// SupportTicket is a user-raised issue handled by admins.
type SupportTicket struct {
	BaseModel
	UserID      string         `gorm:"size:36;index;not null" json:"userId"`
	Subject     string         `gorm:"size:255;not null" json:"subject"`
	Description string         `gorm:"type:text" json:"description"`
	Category    string         `gorm:"size:50" json:"category"`
	Status      TicketStatus   `gorm:"size:20;default:'open'" json:"status"`
	Priority    TicketPriority `gorm:"size:10;default:'medium'" json:"priority"`

	User     User            `gorm:"foreignKey:UserID" json:"-"`
	Messages []TicketMessage `gorm:"foreignKey:TicketID" json:"messages,omitempty"`
}

// TicketMessage is one entry in a ticket's conversation thread.
type TicketMessage struct {
	BaseModel
	TicketID  string `gorm:"size:36;index;not null" json:"ticketId"`
	AuthorID  string `gorm:"size:36;not null" json:"authorId"`
	Message   string `gorm:"type:text;not null" json:"message"`
	FromStaff bool   `gorm:"default:false" json:"fromStaff"`
}

// FAQ is a published question/answer entry shown on the public site.
type FAQ struct {
	BaseModel
	Question  string `gorm:"size:512;not null" json:"question"`
	Answer    string `gorm:"type:text;not null" json:"answer"`
	Category  string `gorm:"size:50;index" json:"category"`
	SortOrder int    `gorm:"default:0" json:"sortOrder"`
	Published bool   `gorm:"default:true" json:"published"`
}
