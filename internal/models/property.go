package models

// PropertyLifecycle is the listing lifecycle state. Archived listings are
// hidden from search and excluded from portfolio analytics, but their
// bookings and reviews remain readable.
type PropertyLifecycle string

const (
	PropertyActive   PropertyLifecycle = "active"
	PropertyArchived PropertyLifecycle = "archived"
)

// PropertyType categorizes a listing.
type PropertyType string

const (
	PropertyApartment PropertyType = "apartment"
	PropertyHouse     PropertyType = "house"
	PropertyVilla     PropertyType = "villa"
	PropertyStudio    PropertyType = "studio"
	PropertyRoom      PropertyType = "room"
)

// Property represents a rental listing owned by an owner account.
type Property struct {
	BaseModel
	OwnerID     string            `gorm:"size:36;index;not null" json:"ownerId"`
	Title       string            `gorm:"size:255;not null" json:"title"`
	Description string            `gorm:"type:text" json:"description"`
	Type        PropertyType      `gorm:"size:30;default:'apartment'" json:"type"`
	MonthlyRent float64           `gorm:"not null" json:"monthlyRent"`
	TokenAmount float64           `json:"tokenAmount"` // deposit collected at booking time
	State       string            `gorm:"size:100" json:"state"`
	City        string            `gorm:"size:100;index" json:"city"`
	Address     string            `gorm:"size:255" json:"address"`
	AreaSqFt    float64           `json:"areaSqFt"`
	Bedrooms    int               `json:"bedrooms"`
	Bathrooms   int               `json:"bathrooms"`
	Amenities   string            `gorm:"size:512" json:"amenities"`  // comma separated
	Facilities  string            `gorm:"size:512" json:"facilities"` // comma separated
	Furnished   bool              `gorm:"default:false" json:"furnished"`
	Lifecycle   PropertyLifecycle `gorm:"size:20;default:'active';index" json:"lifecycle"`
	IsVisible   bool              `gorm:"default:true" json:"isVisible"`

	// Denormalized interaction counters. Views is maintained by the view
	// dedup writer; the rest are kept in step by their handlers.
	Views      int64 `gorm:"default:0" json:"views"`
	Enquiries  int64 `gorm:"default:0" json:"enquiries"`
	BookingCnt int64 `gorm:"column:booking_cnt;default:0" json:"bookings"`
	FavoriteCnt int64 `gorm:"column:favorite_cnt;default:0" json:"favorites"`

	// Relations
	Owner User `gorm:"foreignKey:OwnerID" json:"-"`
}

// PropertyView is the per-user view ledger used to deduplicate view counts
// for authenticated viewers. Anonymous viewers are deduplicated by IP in a
// time-bounded store instead of this table.
type PropertyView struct {
	BaseModel
	PropertyID string `gorm:"size:36;not null;uniqueIndex:idx_property_viewer" json:"propertyId"`
	UserID     string `gorm:"size:36;not null;uniqueIndex:idx_property_viewer" json:"userId"`
	IP         string `gorm:"size:45" json:"-"`

	Property Property `gorm:"foreignKey:PropertyID" json:"-"`
}
