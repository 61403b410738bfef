package models

// ReviewVisibility is the moderation state of a review. Hidden reviews stay
// stored but are excluded from listings and rating aggregates.
type ReviewVisibility string

const (
	ReviewVisible ReviewVisibility = "visible"
	ReviewHidden  ReviewVisibility = "hidden"
)

// Review is a tenant rating of a property, 1 to 5.
type Review struct {
	BaseModel
	TenantID   string           `gorm:"size:36;not null;uniqueIndex:idx_tenant_property_review" json:"tenantId"`
	PropertyID string           `gorm:"size:36;not null;uniqueIndex:idx_tenant_property_review" json:"propertyId"`
	OwnerID    string           `gorm:"size:36;index;not null" json:"ownerId"`
	Rating     int              `gorm:"not null" json:"rating"`
	Comment    string           `gorm:"type:text" json:"comment"`
	Visibility ReviewVisibility `gorm:"size:20;default:'visible'" json:"visibility"`

	Tenant   User     `gorm:"foreignKey:TenantID" json:"-"`
	Property Property `gorm:"foreignKey:PropertyID" json:"-"`
}
