package model

import "time"

// Booking statuses as delivered by the upstream booking provider. Only
// confirmed bookings contribute participants to a camp's roster.
const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusPending   = "pending"
	BookingStatusCancelled = "cancelled"
)

// Booking represents one reservation within a camp. A booking may cover
// several guests; each guest becomes a Participant.
type Booking struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	CampID    string    `gorm:"index;not null" json:"campId"`
	Reference string    `gorm:"uniqueIndex;size:32;not null" json:"reference"`
	Status    string    `gorm:"size:16;not null" json:"status"`
	CreatedAt time.Time `gorm:"not null" json:"-"`
	UpdatedAt time.Time `gorm:"not null" json:"-"`

	// Associations
	Camp         Camp          `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Participants []Participant `gorm:"foreignKey:BookingID" json:"-"`
}
