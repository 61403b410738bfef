package models

// Favorite marks a property as saved by a user. One row per user/property.
type Favorite struct {
	BaseModel
	UserID     string `gorm:"size:36;not null;uniqueIndex:idx_user_property" json:"userId"`
	PropertyID string `gorm:"size:36;not null;uniqueIndex:idx_user_property" json:"propertyId"`

	User     User     `gorm:"foreignKey:UserID" json:"-"`
	Property Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
}

// EnquiryStatus tracks the owner-side handling of an enquiry.
type EnquiryStatus string

const (
	EnquiryOpen    EnquiryStatus = "open"
	EnquiryReplied EnquiryStatus = "replied"
	EnquiryClosed  EnquiryStatus = "closed"
)

// Enquiry is a tenant question about a property, with a reply thread.
type Enquiry struct {
	BaseModel
	TenantID   string        `gorm:"size:36;index;not null" json:"tenantId"`
	PropertyID string        `gorm:"size:36;index;not null" json:"propertyId"`
	OwnerID    string        `gorm:"size:36;index;not null" json:"ownerId"`
	Message    string        `gorm:"type:text;not null" json:"message"`
	Status     EnquiryStatus `gorm:"size:20;default:'open'" json:"status"`

	Tenant   User           `gorm:"foreignKey:TenantID" json:"-"`
	Property Property       `gorm:"foreignKey:PropertyID" json:"-"`
	Replies  []EnquiryReply `gorm:"foreignKey:EnquiryID" json:"replies,omitempty"`
}

// EnquiryReply is a single message in an enquiry thread.
type EnquiryReply struct {
	BaseModel
	EnquiryID string `gorm:"size:36;index;not null" json:"enquiryId"`
	AuthorID  string `gorm:"size:36;not null" json:"authorId"`
	Message   string `gorm:"type:text;not null" json:"message"`
}
