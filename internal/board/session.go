package board

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// RoomView is one room with its current occupants and occupancy flags.
type RoomView struct {
	Room
	Occupants    []Participant `json:"occupants"`
	Occupancy    int           `json:"occupancy"`
	OverCapacity bool          `json:"overCapacity"`
}

// View is a consistent snapshot of a board session, built under the
// session lock so no participant can appear in two places within one
// snapshot.
type View struct {
	CampID     string         `json:"campId"`
	Rooms      []RoomView     `json:"rooms"`
	Unassigned []Participant  `json:"unassigned"`
	Stats      OccupancyStats `json:"stats"`
	Dirty      bool           `json:"dirty"`
	OpenedAt   time.Time      `json:"openedAt"`
}

// Session is one operator's editing session for a camp's board. Local
// state is not authoritative until saved; the caller discards it by
// letting the session expire or closing it explicitly.
type Session struct {
	CampID string

	mu       sync.Mutex
	board    *Board
	openedAt time.Time
	dirty    bool
}

// Apply runs one gesture against the session's board.
func (s *Session) Apply(cmd Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.board.Apply(cmd); err != nil {
		return err
	}
	s.dirty = true
	return nil
}

// Relation returns a copy of the current relation for saving.
func (s *Session) Relation() map[string][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Relation()
}

// MarkSaved clears the dirty flag after a successful save.
func (s *Session) MarkSaved() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirty = false
}

// View renders a consistent snapshot of the session.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	rooms := s.board.Rooms()
	roomViews := make([]RoomView, 0, len(rooms))
	for _, r := range rooms {
		roomViews = append(roomViews, RoomView{
			Room:         r,
			Occupants:    s.board.AssignedParticipants(r.ID),
			Occupancy:    s.board.Occupancy(r.ID),
			OverCapacity: s.board.OverCapacity(r.ID),
		})
	}
	return View{
		CampID:     s.CampID,
		Rooms:      roomViews,
		Unassigned: s.board.UnassignedParticipants(),
		Stats:      s.board.Stats(),
		Dirty:      s.dirty,
		OpenedAt:   s.openedAt,
	}
}

// SessionManager keeps at most one live board session per camp, expiring
// abandoned sessions after a TTL. One operator edits one camp's board at
// a time; the per-session mutex serializes whatever slips through.
type SessionManager struct {
	sessions *cache.Cache
}

// NewSessionManager creates a manager whose sessions expire after ttl of
// inactivity.
func NewSessionManager(ttl time.Duration) *SessionManager {
	return &SessionManager{
		sessions: cache.New(ttl, 2*ttl),
	}
}

// Open starts a fresh session for a camp, replacing any existing one.
func (m *SessionManager) Open(campID string, b *Board) *Session {
	s := &Session{
		CampID:   campID,
		board:    b,
		openedAt: time.Now().UTC(),
	}
	m.sessions.Set(campID, s, cache.DefaultExpiration)
	return s
}

// Get returns the live session for a camp, refreshing its TTL.
func (m *SessionManager) Get(campID string) (*Session, bool) {
	v, found := m.sessions.Get(campID)
	if !found {
		return nil, false
	}
	s := v.(*Session)
	// Sliding expiration: editing keeps the session alive.
	m.sessions.Set(campID, s, cache.DefaultExpiration)
	return s, true
}

// Discard drops a camp's session without saving.
func (m *SessionManager) Discard(campID string) {
	m.sessions.Delete(campID)
}
