// Package board implements the room-assignment board: an in-memory
// room→participant relation for one camp, the operations that mutate it,
// and the derived views the admin UI renders. Capacity is advisory: a room
// can be overfilled while the operator reshuffles, and the board only
// flags it.
package board

// Participant is one guest on the camp's roster, as loaded at session
// open. The board never modifies participant attributes.
type Participant struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	SurfLevel string `json:"surfLevel"`
	BookingID string `json:"bookingId"`
}

// Room is one assignable room, as loaded at session open.
type Room struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	Capacity  int      `json:"capacity"`
	Amenities []string `json:"amenities"`
}

// OccupancyStats summarizes the board for the dashboard header.
type OccupancyStats struct {
	TotalParticipants int `json:"totalParticipants"`
	RoomsAssigned     int `json:"roomsAssigned"`
	Unassigned        int `json:"unassigned"`
}

// Board holds the canonical room→participants relation for one camp
// together with the roster and room list it was opened against.
//
// Two invariants hold after every operation: a participant appears in at
// most one room's occupant list, and the relation never retains a room
// with an empty occupant list. IDs that do not reference the loaded
// roster or room list are ignored; reference validation belongs to the
// persistence boundary, not the board.
//
// Board is not safe for concurrent use; Session serializes access.
type Board struct {
	rosterOrder []string
	roster      map[string]Participant
	roomOrder   []string
	rooms       map[string]Room

	members map[string][]string // roomID -> participantIDs, insertion order
	roomOf  map[string]string   // participantID -> roomID
}

// New creates an empty board for the given roster and rooms. Duplicate
// IDs in either list are dropped, first occurrence wins.
func New(roster []Participant, rooms []Room) *Board {
	b := &Board{
		roster:  make(map[string]Participant, len(roster)),
		rooms:   make(map[string]Room, len(rooms)),
		members: make(map[string][]string),
		roomOf:  make(map[string]string),
	}
	for _, p := range roster {
		if _, seen := b.roster[p.ID]; seen {
			continue
		}
		b.roster[p.ID] = p
		b.rosterOrder = append(b.rosterOrder, p.ID)
	}
	for _, r := range rooms {
		if _, seen := b.rooms[r.ID]; seen {
			continue
		}
		b.rooms[r.ID] = r
		b.roomOrder = append(b.roomOrder, r.ID)
	}
	return b
}

// Restore seeds the board from a previously saved relation by replaying
// it through Assign, so the invariants hold even if the stored data has
// gone stale (dangling IDs are dropped, duplicates collapse to the last
// room that claims the participant).
func (b *Board) Restore(rel map[string][]string, roomOrder []string) {
	for _, roomID := range roomOrder {
		for _, pid := range rel[roomID] {
			b.Assign(roomID, pid)
		}
	}
}

// Assign places a participant into a room. If the participant is already
// assigned anywhere (including this room), it is removed from that room
// first, so a second Assign relocates rather than duplicates. Assigning a
// participant to the room it already occupies is a no-op. Capacity is not
// checked.
func (b *Board) Assign(roomID, participantID string) {
	if _, ok := b.rooms[roomID]; !ok {
		return
	}
	if _, ok := b.roster[participantID]; !ok {
		return
	}
	if b.roomOf[participantID] == roomID {
		return
	}
	b.remove(participantID)
	b.members[roomID] = append(b.members[roomID], participantID)
	b.roomOf[participantID] = roomID
}

// Unassign removes a participant from a room. It is a no-op when the
// participant is not in that room.
func (b *Board) Unassign(roomID, participantID string) {
	if b.roomOf[participantID] != roomID {
		return
	}
	b.remove(participantID)
}

// Move relocates a participant between rooms. Assign already relocates,
// so the source room only matters as a guard: the move is a no-op when
// the participant is not currently in fromRoomID.
func (b *Board) Move(participantID, fromRoomID, toRoomID string) {
	if b.roomOf[participantID] != fromRoomID {
		return
	}
	b.Assign(toRoomID, participantID)
}

// remove detaches a participant from whatever room holds it and prunes
// the room's entry when it becomes empty.
func (b *Board) remove(participantID string) {
	roomID, ok := b.roomOf[participantID]
	if !ok {
		return
	}
	occupants := b.members[roomID]
	for i, pid := range occupants {
		if pid == participantID {
			occupants = append(occupants[:i], occupants[i+1:]...)
			break
		}
	}
	if len(occupants) == 0 {
		delete(b.members, roomID)
	} else {
		b.members[roomID] = occupants
	}
	delete(b.roomOf, participantID)
}

// AssignedParticipants returns the participants currently in a room, in
// insertion order. Unknown rooms and rooms without an entry yield an
// empty slice.
func (b *Board) AssignedParticipants(roomID string) []Participant {
	occupants := b.members[roomID]
	out := make([]Participant, 0, len(occupants))
	for _, pid := range occupants {
		out = append(out, b.roster[pid])
	}
	return out
}

// UnassignedParticipants returns every roster member not currently in any
// room, in roster order. It is recomputed from the relation on every
// call.
func (b *Board) UnassignedParticipants() []Participant {
	out := make([]Participant, 0, len(b.rosterOrder))
	for _, pid := range b.rosterOrder {
		if _, assigned := b.roomOf[pid]; !assigned {
			out = append(out, b.roster[pid])
		}
	}
	return out
}

// Occupancy returns the number of participants currently in a room.
func (b *Board) Occupancy(roomID string) int {
	return len(b.members[roomID])
}

// OverCapacity reports whether a room holds more participants than its
// declared capacity. Advisory only.
func (b *Board) OverCapacity(roomID string) bool {
	room, ok := b.rooms[roomID]
	if !ok {
		return false
	}
	return len(b.members[roomID]) > room.Capacity
}

// Stats returns the summary counters for the board header. RoomsAssigned
// counts rooms with at least one occupant, not total rooms.
func (b *Board) Stats() OccupancyStats {
	assigned := 0
	for _, occupants := range b.members {
		assigned += len(occupants)
	}
	return OccupancyStats{
		TotalParticipants: len(b.rosterOrder),
		RoomsAssigned:     len(b.members),
		Unassigned:        len(b.rosterOrder) - assigned,
	}
}

// Rooms returns the session's room list in load order.
func (b *Board) Rooms() []Room {
	out := make([]Room, 0, len(b.roomOrder))
	for _, id := range b.roomOrder {
		out = append(out, b.rooms[id])
	}
	return out
}

// Relation returns a copy of the current room→participantIDs relation,
// suitable for handing to the persistence gateway. Rooms without
// occupants are absent.
func (b *Board) Relation() map[string][]string {
	rel := make(map[string][]string, len(b.members))
	for roomID, occupants := range b.members {
		rel[roomID] = append([]string(nil), occupants...)
	}
	return rel
}
