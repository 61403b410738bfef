package models

// ExpertProfile is the consultation-side profile of a user with the expert
// role. Consultation appointments reference the expert's user id.
type ExpertProfile struct {
	BaseModel
	UserID     string  `gorm:"size:36;uniqueIndex;not null" json:"userId"`
	Specialty  string  `gorm:"size:100" json:"specialty"`
	Bio        string  `gorm:"type:text" json:"bio"`
	HourlyRate float64 `json:"hourlyRate"`
	Languages  string  `gorm:"size:255" json:"languages"` // comma separated

	User User `gorm:"foreignKey:UserID" json:"-"`
}
