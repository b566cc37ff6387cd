package board

import "fmt"

// Op identifies a board gesture.
type Op string

const (
	OpAssign   Op = "assign"   // drop a participant card onto a room
	OpUnassign Op = "unassign" // remove a participant from a room
	OpMove     Op = "move"     // relocate between two rooms
)

// Command is one gesture against the board in data form, so the HTTP
// layer and tests can drive the engine without a UI harness.
type Command struct {
	Op            Op     `json:"op" binding:"required"`
	ParticipantID string `json:"participant_id" binding:"required"`
	RoomID        string `json:"room_id,omitempty"`
	FromRoomID    string `json:"from_room_id,omitempty"`
	ToRoomID      string `json:"to_room_id,omitempty"`
}

// Apply executes a command against the board. Only a malformed command
// (unknown op) is an error; unknown room or participant references are
// tolerated as no-ops like everywhere else in the engine.
func (b *Board) Apply(cmd Command) error {
	switch cmd.Op {
	case OpAssign:
		b.Assign(cmd.RoomID, cmd.ParticipantID)
	case OpUnassign:
		b.Unassign(cmd.RoomID, cmd.ParticipantID)
	case OpMove:
		b.Move(cmd.ParticipantID, cmd.FromRoomID, cmd.ToRoomID)
	default:
		return fmt.Errorf("unknown board op %q", cmd.Op)
	}
	return nil
}
