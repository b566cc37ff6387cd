package store

// BookingItem represents a single booking record from the upstream
// booking provider's feed.
type BookingItem struct {
	Reference string  `json:"reference"`
	CampID    string  `json:"campId"`
	CampName  string  `json:"campName"`
	Week      string  `json:"week"`
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
	Status    string  `json:"status"`
	Guests    []Guest `json:"guests"`
}

// Guest is one guest within an upstream booking. Guests occasionally
// arrive without a stable upstream ID; the store mints one.
type Guest struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	SurfLevel string `json:"surfLevel"`
}

// RoomItem represents a single room record from the upstream property
// feed. Label carries the human-entered name, type and bed count; see
// the parse package for its grammar.
type RoomItem struct {
	ID        string   `json:"id"`
	Label     string   `json:"label"`
	Amenities []string `json:"amenities"`
}
