package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Role enum
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleOwner  Role = "owner"
	RoleTenant Role = "tenant"
	RoleExpert Role = "expert"
)

// Capability names an action a role may perform.
type Capability string

const (
	CapListProperty      Capability = "property:list"
	CapBookProperty      Capability = "property:book"
	CapReviewProperty    Capability = "property:review"
	CapViewAnalytics     Capability = "analytics:view"
	CapOfferConsultation Capability = "consultation:offer"
	CapModerate          Capability = "moderate"
)

var roleCapabilities = map[Role][]Capability{
	RoleTenant: {CapBookProperty, CapReviewProperty},
	RoleOwner:  {CapListProperty, CapViewAnalytics},
	RoleExpert: {CapOfferConsultation},
	RoleAdmin:  {CapListProperty, CapBookProperty, CapReviewProperty, CapViewAnalytics, CapOfferConsultation, CapModerate},
}

// Can reports whether a role holds the given capability.
func Can(role Role, cap Capability) bool {
	for _, c := range roleCapabilities[role] {
		if c == cap {
			return true
		}
	}
	return false
}

// AccountStatus is the lifecycle of a user account.
type AccountStatus string

const (
	AccountActive      AccountStatus = "active"
	AccountDeactivated AccountStatus = "deactivated"
)

// User represents a user in the system
type User struct {
	BaseModel
	Email        string        `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password     string        `gorm:"size:255;not null" json:"-"` // Never send password in JSON
	FirstName    string        `gorm:"size:100" json:"firstName"`
	LastName     string        `gorm:"size:100" json:"lastName"`
	Role         Role          `gorm:"size:20;default:'tenant'" json:"role"`
	PhoneNumber  string        `json:"phoneNumber,omitempty"`
	City         string        `gorm:"size:100" json:"city,omitempty"`
	ProfileImage string        `json:"profileImage,omitempty"`
	Status       AccountStatus `gorm:"size:20;default:'active'" json:"status"`

	// Relations (not always preloaded)
	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID" json:"-"`
	Properties    []Property     `gorm:"foreignKey:OwnerID" json:"-"`
	Favorites     []Favorite     `gorm:"foreignKey:UserID" json:"-"`
	Bookings      []Booking      `gorm:"foreignKey:TenantID" json:"-"`
	Reviews       []Review       `gorm:"foreignKey:TenantID" json:"-"`
	Appointments  []Appointment  `gorm:"foreignKey:RequesterID" json:"-"`
	Tickets       []SupportTicket `gorm:"foreignKey:UserID" json:"-"`
}

// UserSanitized represents the user data that is safe to send in API responses.
type UserSanitized struct {
	ID           string        `json:"id"`
	Email        string        `json:"email"`
	FirstName    string        `json:"firstName"`
	LastName     string        `json:"lastName"`
	Role         Role          `json:"role"`
	PhoneNumber  string        `json:"phoneNumber,omitempty"`
	City         string        `json:"city,omitempty"`
	ProfileImage string        `json:"profileImage,omitempty"`
	Status       AccountStatus `json:"status"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// SetPassword hashes a password and sets it on the user
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword compares a password with the user's hashed password
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// Sanitize creates a UserSanitized struct from a User model, excluding sensitive data.
func (u *User) Sanitize() UserSanitized {
	return UserSanitized{
		ID:           u.ID,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Role:         u.Role,
		PhoneNumber:  u.PhoneNumber,
		City:         u.City,
		ProfileImage: u.ProfileImage,
		Status:       u.Status,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
