package model

import "time"

// Participant represents one guest on a camp's roster. The assignment
// board never creates or deletes participants; it only places them.
type Participant struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	BookingID string    `gorm:"index;not null" json:"bookingId"`
	Name      string    `gorm:"size:128;not null" json:"name"`
	Email     string    `gorm:"size:256" json:"email"`
	SurfLevel string    `gorm:"size:32" json:"surfLevel"`
	CreatedAt time.Time `gorm:"not null" json:"-"`
	UpdatedAt time.Time `gorm:"not null" json:"-"`

	// Associations
	Booking Booking `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
