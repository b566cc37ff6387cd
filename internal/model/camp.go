package model

import "time"

// Camp represents one bookable surf-camp week.
type Camp struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	Name      string    `gorm:"size:128;not null" json:"name"`
	Week      string    `gorm:"size:16;index" json:"week"` // ISO week label, e.g. "2026-W31"
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	CreatedAt time.Time `gorm:"not null" json:"-"`
	UpdatedAt time.Time `gorm:"not null" json:"-"`

	// Associations
	Bookings []Booking `gorm:"foreignKey:CampID" json:"-"`
}
