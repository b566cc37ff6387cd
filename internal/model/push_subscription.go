package model

import "time"

// PushSubscription holds the information for a browser push subscription.
// Operators subscribe to camps and are notified when a camp's roster or
// room assignments change.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey"`
	P256DH    string    `gorm:"column:p256dh;not null"`
	Auth      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`

	// Associations
	Camps []*Camp `gorm:"many2many:subscription_camp_mapping;"`
}
