package model

import "time"

// RoomAssignment is one row of the persisted room→participant relation for
// a camp. The composite primary key (camp_id, participant_id) means a
// participant can hold at most one room per camp; Position preserves the
// insertion order within a room's occupant list.
type RoomAssignment struct {
	CampID        string    `gorm:"primaryKey;size:64"`
	ParticipantID string    `gorm:"primaryKey;size:64"`
	RoomID        string    `gorm:"size:64;not null;index"`
	Position      int       `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}
