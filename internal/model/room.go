package model

import "time"

// Room types as delivered by the upstream property feed.
const (
	RoomTypePrivate = "private"
	RoomTypeDorm    = "dorm"
)

// Room represents an assignable room. Capacity is advisory for the
// assignment board: occupancy above it is flagged, never rejected.
type Room struct {
	ID        string   `gorm:"primaryKey;size:64" json:"id"`
	Name      string   `gorm:"uniqueIndex;size:128;not null" json:"name"`
	Type      string   `gorm:"size:16;not null" json:"type"`
	Capacity  int      `gorm:"not null" json:"capacity"`
	Amenities []string `gorm:"serializer:json" json:"amenities"`

	CreatedAt time.Time `gorm:"not null" json:"-"`
	UpdatedAt time.Time `gorm:"not null" json:"-"`
}
