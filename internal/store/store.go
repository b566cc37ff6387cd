package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"surfcamp-backend/internal/board"
	"surfcamp-backend/internal/model"
	"surfcamp-backend/internal/parse"
)

// ErrInvalidReference is returned when a saved assignment references a
// room or participant unknown to the camp, or lists a participant twice.
// The board engine tolerates bad references; the persistence boundary
// does not.
var ErrInvalidReference = errors.New("assignment references unknown room or participant")

// BoardData is everything needed to open an assignment-board session for
// one camp: the roster, the room list, and any previously saved relation.
type BoardData struct {
	Roster    []board.Participant
	Rooms     []board.Room
	Relation  map[string][]string
	RoomOrder []string
}

// Store defines the interface for all database operations.
type Store interface {
	DB() *gorm.DB
	ListCamps(ctx context.Context) ([]model.Camp, error)
	GetCamp(ctx context.Context, campID string) (*model.Camp, error)
	ListRooms(ctx context.Context) ([]model.Room, error)
	Roster(ctx context.Context, campID string) ([]model.Participant, error)
	LoadBoard(ctx context.Context, campID string) (*BoardData, error)
	LoadAssignment(ctx context.Context, campID string) (map[string][]string, error)
	SaveAssignment(ctx context.Context, campID string, rel map[string][]string) error
	UpsertCampsAndBookings(ctx context.Context, items []BookingItem) ([]string, error)
	UpsertRooms(ctx context.Context, items []RoomItem) error
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

func (s *gormStore) ListCamps(ctx context.Context) ([]model.Camp, error) {
	var camps []model.Camp
	if err := s.db.WithContext(ctx).Order("start_date").Find(&camps).Error; err != nil {
		return nil, fmt.Errorf("failed to list camps: %w", err)
	}
	return camps, nil
}

func (s *gormStore) GetCamp(ctx context.Context, campID string) (*model.Camp, error) {
	var camp model.Camp
	if err := s.db.WithContext(ctx).First(&camp, "id = ?", campID).Error; err != nil {
		return nil, err
	}
	return &camp, nil
}

func (s *gormStore) ListRooms(ctx context.Context) ([]model.Room, error) {
	var rooms []model.Room
	if err := s.db.WithContext(ctx).Order("name").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

// Roster returns the participants eligible for assignment in a camp:
// every guest of a confirmed booking, in booking order.
func (s *gormStore) Roster(ctx context.Context, campID string) ([]model.Participant, error) {
	var participants []model.Participant
	err := s.db.WithContext(ctx).
		Joins("JOIN bookings ON bookings.id = participants.booking_id").
		Where("bookings.camp_id = ? AND bookings.status = ?", campID, model.BookingStatusConfirmed).
		Order("bookings.reference, participants.name").
		Find(&participants).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load roster for camp %s: %w", campID, err)
	}
	return participants, nil
}

// LoadBoard fetches the roster, room list and saved relation for a camp.
// The relation is returned as stored; dangling references (a cancelled
// booking's guest, a retired room) are repaired when the board replays it.
func (s *gormStore) LoadBoard(ctx context.Context, campID string) (*BoardData, error) {
	participants, err := s.Roster(ctx, campID)
	if err != nil {
		return nil, err
	}

	rooms, err := s.ListRooms(ctx)
	if err != nil {
		return nil, err
	}

	rel, roomOrder, err := s.loadAssignmentRows(ctx, campID)
	if err != nil {
		return nil, err
	}

	data := &BoardData{
		Relation:  rel,
		RoomOrder: roomOrder,
		Roster:    make([]board.Participant, 0, len(participants)),
		Rooms:     make([]board.Room, 0, len(rooms)),
	}
	for _, p := range participants {
		data.Roster = append(data.Roster, board.Participant{
			ID:        p.ID,
			Name:      p.Name,
			Email:     p.Email,
			SurfLevel: p.SurfLevel,
			BookingID: p.BookingID,
		})
	}
	for _, r := range rooms {
		data.Rooms = append(data.Rooms, board.Room{
			ID:        r.ID,
			Name:      r.Name,
			Type:      r.Type,
			Capacity:  r.Capacity,
			Amenities: r.Amenities,
		})
	}
	return data, nil
}

func (s *gormStore) LoadAssignment(ctx context.Context, campID string) (map[string][]string, error) {
	rel, _, err := s.loadAssignmentRows(ctx, campID)
	return rel, err
}

func (s *gormStore) loadAssignmentRows(ctx context.Context, campID string) (map[string][]string, []string, error) {
	var rows []model.RoomAssignment
	err := s.db.WithContext(ctx).
		Where("camp_id = ?", campID).
		Order("room_id, position").
		Find(&rows).Error
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load assignment for camp %s: %w", campID, err)
	}

	rel := make(map[string][]string)
	var roomOrder []string
	for _, row := range rows {
		if _, seen := rel[row.RoomID]; !seen {
			roomOrder = append(roomOrder, row.RoomID)
		}
		rel[row.RoomID] = append(rel[row.RoomID], row.ParticipantID)
	}
	return rel, roomOrder, nil
}

// SaveAssignment atomically replaces a camp's persisted relation. The
// whole relation is validated against the camp's roster and the room list
// before anything is written; a bad payload leaves the stored relation
// untouched.
func (s *gormStore) SaveAssignment(ctx context.Context, campID string, rel map[string][]string) error {
	now := time.Now().UTC()

	var rows []model.RoomAssignment
	seen := make(map[string]bool)
	roomIDs := make([]string, 0, len(rel))
	for roomID, participantIDs := range rel {
		if len(participantIDs) == 0 {
			continue // empty entries are never persisted
		}
		roomIDs = append(roomIDs, roomID)
		for pos, pid := range participantIDs {
			if seen[pid] {
				return fmt.Errorf("participant %s listed in two rooms: %w", pid, ErrInvalidReference)
			}
			seen[pid] = true
			rows = append(rows, model.RoomAssignment{
				CampID:        campID,
				ParticipantID: pid,
				RoomID:        roomID,
				Position:      pos,
				UpdatedAt:     now,
			})
		}
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(roomIDs) > 0 {
			var roomCount int64
			if err := tx.Model(&model.Room{}).Where("id IN ?", roomIDs).Count(&roomCount).Error; err != nil {
				return fmt.Errorf("failed to verify rooms: %w", err)
			}
			if int(roomCount) != len(roomIDs) {
				return ErrInvalidReference
			}
		}

		if len(rows) > 0 {
			participantIDs := make([]string, 0, len(rows))
			for _, row := range rows {
				participantIDs = append(participantIDs, row.ParticipantID)
			}
			var participantCount int64
			err := tx.Model(&model.Participant{}).
				Joins("JOIN bookings ON bookings.id = participants.booking_id").
				Where("bookings.camp_id = ? AND participants.id IN ?", campID, participantIDs).
				Count(&participantCount).Error
			if err != nil {
				return fmt.Errorf("failed to verify participants: %w", err)
			}
			if int(participantCount) != len(rows) {
				return ErrInvalidReference
			}
		}

		if err := tx.Where("camp_id = ?", campID).Delete(&model.RoomAssignment{}).Error; err != nil {
			return fmt.Errorf("failed to clear assignment for camp %s: %w", campID, err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("failed to save assignment for camp %s: %w", campID, err)
		}
		return nil
	})
}

// UpsertCampsAndBookings mirrors the upstream booking feed into the local
// database and returns the IDs of camps that gained new participants, so
// subscribed operators can be notified.
func (s *gormStore) UpsertCampsAndBookings(ctx context.Context, items []BookingItem) ([]string, error) {
	existing, err := s.fetchAllParticipantIDs(ctx)
	if err != nil {
		log.Printf("Warning: could not pre-fetch participants: %v", err)
		existing = make(map[string]bool)
	}

	campMap, err := s.processAndSaveCamps(ctx, items)
	if err != nil {
		return nil, fmt.Errorf("failed to process camps: %w", err)
	}

	var bookings []model.Booking
	var participants []model.Participant
	changed := make(map[string]bool)
	for _, item := range items {
		camp, ok := campMap[item.CampID]
		if !ok {
			log.Printf("Error: could not find camp %q in map after upserting. Skipping booking %s.", item.CampID, item.Reference)
			continue
		}

		bookingID := bookingIDFor(item)
		bookings = append(bookings, model.Booking{
			ID:        bookingID,
			CampID:    camp.ID,
			Reference: item.Reference,
			Status:    normalizeStatus(item.Status),
		})

		for _, guest := range item.Guests {
			id := guest.ID
			if id == "" {
				id = uuid.NewString()
			}
			participants = append(participants, model.Participant{
				ID:        id,
				BookingID: bookingID,
				Name:      guest.Name,
				Email:     guest.Email,
				SurfLevel: guest.SurfLevel,
			})
			if !existing[id] {
				changed[camp.ID] = true
			}
		}
	}

	if len(bookings) > 0 {
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"camp_id", "reference", "status", "updated_at"}),
			}).Create(&bookings).Error; err != nil {
				return fmt.Errorf("batch upsert bookings failed: %w", err)
			}
			if len(participants) == 0 {
				return nil
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"booking_id", "name", "email", "surf_level", "updated_at"}),
			}).Create(&participants).Error; err != nil {
				return fmt.Errorf("batch upsert participants failed: %w", err)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	campIDs := make([]string, 0, len(changed))
	for id := range changed {
		campIDs = append(campIDs, id)
	}
	return campIDs, nil
}

// UpsertRooms mirrors the upstream property feed into the local room
// table. Rooms whose labels cannot be parsed are skipped.
func (s *gormStore) UpsertRooms(ctx context.Context, items []RoomItem) error {
	var rooms []model.Room
	for _, item := range items {
		parsed, err := parse.ParseRoomLabel(item.Label)
		if err != nil {
			log.Printf("Error parsing label for room %s (%q): %v", item.ID, item.Label, err)
			continue
		}
		rooms = append(rooms, model.Room{
			ID:        item.ID,
			Name:      parsed.Name,
			Type:      parsed.Type,
			Capacity:  parsed.Capacity,
			Amenities: item.Amenities,
		})
	}

	if len(rooms) == 0 {
		return nil
	}

	log.Printf("Batch upserting %d rooms...", len(rooms))
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "type", "capacity", "amenities", "updated_at"}),
		}).Create(&rooms).Error
	})
}

// --- Helpers ---

func (s *gormStore) fetchAllParticipantIDs(ctx context.Context) (map[string]bool, error) {
	var ids []string
	if err := s.db.WithContext(ctx).Model(&model.Participant{}).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	idSet := make(map[string]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
	}
	return idSet, nil
}

func (s *gormStore) processAndSaveCamps(ctx context.Context, items []BookingItem) (map[string]model.Camp, error) {
	campsToUpsert := make(map[string]model.Camp)
	for _, item := range items {
		if item.CampID == "" {
			continue
		}
		if _, exists := campsToUpsert[item.CampID]; exists {
			continue
		}
		camp := model.Camp{
			ID:   item.CampID,
			Name: item.CampName,
			Week: item.Week,
		}
		if item.StartDate != nil {
			if t, err := time.Parse("2006-01-02", *item.StartDate); err == nil {
				camp.StartDate = t
			}
		}
		if item.EndDate != nil {
			if t, err := time.Parse("2006-01-02", *item.EndDate); err == nil {
				camp.EndDate = t
			}
		}
		campsToUpsert[item.CampID] = camp
	}

	if len(campsToUpsert) == 0 {
		return make(map[string]model.Camp), nil
	}

	var campList []model.Camp
	for _, c := range campsToUpsert {
		campList = append(campList, c)
	}

	log.Printf("Batch upserting %d camps...", len(campList))
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "week", "start_date", "end_date", "updated_at"}),
	}).Create(&campList).Error; err != nil {
		return nil, fmt.Errorf("batch upsert camps failed: %w", err)
	}

	var allCamps []model.Camp
	if err := s.db.WithContext(ctx).Find(&allCamps).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve camps after upsert: %w", err)
	}

	campMap := make(map[string]model.Camp, len(allCamps))
	for _, c := range allCamps {
		campMap[c.ID] = c
	}
	return campMap, nil
}

// bookingIDFor derives a stable local booking ID from the upstream
// reference, which is unique per booking.
func bookingIDFor(item BookingItem) string {
	return "bk-" + item.Reference
}

func normalizeStatus(status string) string {
	switch status {
	case model.BookingStatusConfirmed, model.BookingStatusPending, model.BookingStatusCancelled:
		return status
	default:
		return model.BookingStatusPending
	}
}
