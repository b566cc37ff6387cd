package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	bedsRe     = regexp.MustCompile(`(?i)\(\s*(\d+)\s*beds?\s*\)\s*$`)
	trailNumRe = regexp.MustCompile(`(?i)x\s*(\d+)\s*$`)
	spaceRe    = regexp.MustCompile(`\s+`)
)

// ParsedLabel holds the structured data parsed from a room's upstream label.
type ParsedLabel struct {
	Name     string
	Type     string // "private" or "dorm"
	Capacity int
}

// ParseRoomLabel extracts name, room type and bed count from a raw room
// label string. Labels are human-entered in the property system and come
// in a few shapes:
//
//	"Sea View Dorm (8 beds)"
//	"Private Double (2 beds)"
//	"Garden Bungalow x2"
//
// The bed count in parentheses wins over a trailing "xN" multiplier. The
// room type is taken from the words "dorm"/"dormitory" or "private" in the
// label; when neither appears, anything sleeping more than two is treated
// as a dorm.
func ParseRoomLabel(raw string) (ParsedLabel, error) {
	s := strings.TrimSpace(spaceRe.ReplaceAllString(raw, " "))
	if s == "" {
		return ParsedLabel{}, fmt.Errorf("empty room label")
	}

	capacity := 0
	name := s
	if loc := bedsRe.FindStringSubmatchIndex(s); loc != nil {
		if n, err := strconv.Atoi(s[loc[2]:loc[3]]); err == nil {
			capacity = n
			name = strings.TrimSpace(s[:loc[0]])
		}
	} else if loc := trailNumRe.FindStringSubmatchIndex(s); loc != nil {
		if n, err := strconv.Atoi(s[loc[2]:loc[3]]); err == nil {
			capacity = n
			name = strings.TrimSpace(s[:loc[0]])
		}
	}

	lower := strings.ToLower(s)
	roomType := ""
	switch {
	case strings.Contains(lower, "dormitory"), strings.Contains(lower, "dorm"):
		roomType = "dorm"
	case strings.Contains(lower, "private"), strings.Contains(lower, "single"),
		strings.Contains(lower, "double"), strings.Contains(lower, "twin"):
		roomType = "private"
	}

	if capacity == 0 {
		// Typed labels without a bed count get a sensible floor; anything
		// else is unusable for the board.
		switch roomType {
		case "private":
			capacity = 2
		case "dorm":
			return ParsedLabel{}, fmt.Errorf("unable to parse bed count from label: %q", raw)
		default:
			return ParsedLabel{}, fmt.Errorf("unable to parse bed count from label: %q", raw)
		}
	}

	if roomType == "" {
		if capacity > 2 {
			roomType = "dorm"
		} else {
			roomType = "private"
		}
	}

	if name == "" {
		return ParsedLabel{}, fmt.Errorf("unable to parse room name from label: %q", raw)
	}

	return ParsedLabel{Name: name, Type: roomType, Capacity: capacity}, nil
}
