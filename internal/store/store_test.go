package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"surfcamp-backend/internal/model"
)

func newTestStore(t *testing.T) (Store, *gorm.DB) {
	t.Helper()

	testDB, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, testDB.AutoMigrate(
		&model.Camp{},
		&model.Room{},
		&model.Booking{},
		&model.Participant{},
		&model.RoomAssignment{},
	))
	return NewGormStore(testDB), testDB
}

func seedCampFixtures(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Create(&model.Camp{ID: "camp-1", Name: "Week 31", Week: "2026-W31"}).Error)
	require.NoError(t, db.Create(&[]model.Room{
		{ID: "R1", Name: "Dorm A", Type: model.RoomTypeDorm, Capacity: 4},
		{ID: "R2", Name: "Private 1", Type: model.RoomTypePrivate, Capacity: 2},
	}).Error)
	require.NoError(t, db.Create(&[]model.Booking{
		{ID: "bk-1", CampID: "camp-1", Reference: "1", Status: model.BookingStatusConfirmed},
		{ID: "bk-2", CampID: "camp-1", Reference: "2", Status: model.BookingStatusCancelled},
	}).Error)
	require.NoError(t, db.Create(&[]model.Participant{
		{ID: "P1", BookingID: "bk-1", Name: "Ana"},
		{ID: "P2", BookingID: "bk-1", Name: "Bruno"},
		{ID: "P3", BookingID: "bk-2", Name: "Carla"},
	}).Error)
}

func TestRosterExcludesUnconfirmedBookings(t *testing.T) {
	s, db := newTestStore(t)
	seedCampFixtures(t, db)

	roster, err := s.Roster(context.Background(), "camp-1")
	require.NoError(t, err)
	require.Len(t, roster, 2)
	assert.Equal(t, "P1", roster[0].ID)
	assert.Equal(t, "P2", roster[1].ID)
}

func TestSaveAndLoadAssignment(t *testing.T) {
	s, _ := newTestStore(t)
	db := s.DB()
	seedCampFixtures(t, db)
	ctx := context.Background()

	err := s.SaveAssignment(ctx, "camp-1", map[string][]string{
		"R1": {"P2", "P1"},
	})
	require.NoError(t, err)

	rel, err := s.LoadAssignment(ctx, "camp-1")
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"R1": {"P2", "P1"}}, rel, "insertion order must survive the round trip")

	// A second save replaces the whole relation.
	err = s.SaveAssignment(ctx, "camp-1", map[string][]string{
		"R2": {"P1"},
		"R1": {}, // emptied rooms are simply absent from storage
	})
	require.NoError(t, err)

	rel, err = s.LoadAssignment(ctx, "camp-1")
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"R2": {"P1"}}, rel)

	// Saving an empty relation clears it.
	require.NoError(t, s.SaveAssignment(ctx, "camp-1", nil))
	rel, err = s.LoadAssignment(ctx, "camp-1")
	require.NoError(t, err)
	assert.Empty(t, rel)
}

func TestSaveAssignmentRejectsBadReferences(t *testing.T) {
	s, db := newTestStore(t)
	seedCampFixtures(t, db)
	ctx := context.Background()

	require.NoError(t, s.SaveAssignment(ctx, "camp-1", map[string][]string{"R1": {"P1"}}))

	testCases := []struct {
		name string
		rel  map[string][]string
	}{
		{"unknown room", map[string][]string{"R9": {"P1"}}},
		{"unknown participant", map[string][]string{"R1": {"P9"}}},
		{"duplicate participant across rooms", map[string][]string{"R1": {"P1"}, "R2": {"P1"}}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := s.SaveAssignment(ctx, "camp-1", tc.rel)
			assert.ErrorIs(t, err, ErrInvalidReference)
		})
	}

	// A rejected save leaves the stored relation untouched.
	rel, err := s.LoadAssignment(ctx, "camp-1")
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"R1": {"P1"}}, rel)
}

func TestLoadBoard(t *testing.T) {
	s, db := newTestStore(t)
	seedCampFixtures(t, db)
	ctx := context.Background()

	require.NoError(t, s.SaveAssignment(ctx, "camp-1", map[string][]string{"R2": {"P1"}}))

	data, err := s.LoadBoard(ctx, "camp-1")
	require.NoError(t, err)
	require.Len(t, data.Roster, 2)
	assert.Equal(t, "Ana", data.Roster[0].Name)
	require.Len(t, data.Rooms, 2)
	assert.Equal(t, "Dorm A", data.Rooms[0].Name)
	assert.Equal(t, map[string][]string{"R2": {"P1"}}, data.Relation)
	assert.Equal(t, []string{"R2"}, data.RoomOrder)
}

func TestUpsertCampsAndBookings(t *testing.T) {
	s, db := newTestStore(t)
	ctx := context.Background()

	start := "2026-07-27"
	end := "2026-08-02"
	items := []BookingItem{
		{
			Reference: "1001",
			CampID:    "camp-1",
			CampName:  "Fuerteventura Week 31",
			Week:      "2026-W31",
			StartDate: &start,
			EndDate:   &end,
			Status:    "confirmed",
			Guests: []Guest{
				{ID: "P1", Name: "Ana", Email: "ana@example.com", SurfLevel: "beginner"},
				{Name: "Walk-in guest"}, // no upstream ID, store mints one
			},
		},
	}

	changed, err := s.UpsertCampsAndBookings(ctx, items)
	require.NoError(t, err)
	assert.Equal(t, []string{"camp-1"}, changed)

	var camp model.Camp
	require.NoError(t, db.First(&camp, "id = ?", "camp-1").Error)
	assert.Equal(t, "Fuerteventura Week 31", camp.Name)
	assert.Equal(t, time.Date(2026, 7, 27, 0, 0, 0, 0, time.UTC), camp.StartDate)

	var participants []model.Participant
	require.NoError(t, db.Order("name").Find(&participants).Error)
	require.Len(t, participants, 2)
	assert.Equal(t, "P1", participants[0].ID)
	assert.NotEmpty(t, participants[1].ID, "guests without an upstream ID get a generated one")

	// A second sync with the same feed is a pure upsert: no new
	// participants, so no camps to notify about.
	items[0].Guests = items[0].Guests[:1]
	changed, err = s.UpsertCampsAndBookings(ctx, items)
	require.NoError(t, err)
	assert.Empty(t, changed)

	var bookingCount int64
	db.Model(&model.Booking{}).Count(&bookingCount)
	assert.Equal(t, int64(1), bookingCount)
}

func TestUpsertCampsAndBookingsNormalizesStatus(t *testing.T) {
	s, db := newTestStore(t)
	ctx := context.Background()

	_, err := s.UpsertCampsAndBookings(ctx, []BookingItem{
		{Reference: "2001", CampID: "camp-2", CampName: "Week 32", Status: "waitlisted"},
	})
	require.NoError(t, err)

	var booking model.Booking
	require.NoError(t, db.First(&booking, "reference = ?", "2001").Error)
	assert.Equal(t, model.BookingStatusPending, booking.Status)
}

func TestUpsertRoomsSkipsUnparseableLabels(t *testing.T) {
	s, db := newTestStore(t)
	ctx := context.Background()

	err := s.UpsertRooms(ctx, []RoomItem{
		{ID: "R1", Label: "Sea View Dorm (8 beds)", Amenities: []string{"sea view", "lockers"}},
		{ID: "R2", Label: "???"},
		{ID: "R3", Label: "Private Double (2 beds)"},
	})
	require.NoError(t, err)

	var rooms []model.Room
	require.NoError(t, db.Order("id").Find(&rooms).Error)
	require.Len(t, rooms, 2)
	assert.Equal(t, "Sea View Dorm", rooms[0].Name)
	assert.Equal(t, model.RoomTypeDorm, rooms[0].Type)
	assert.Equal(t, 8, rooms[0].Capacity)
	assert.Equal(t, []string{"sea view", "lockers"}, rooms[0].Amenities)
	assert.Equal(t, model.RoomTypePrivate, rooms[1].Type)
}
