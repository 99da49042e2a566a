package models

import (
	"fmt"
	"time"
)

// SortKey selects the ordering applied to filtered candidates.
type SortKey string

const (
	SortByPrice             SortKey = "price"
	SortByEarliestDeparture SortKey = "earliest_depart_time"
	SortByLatestDeparture   SortKey = "latest_depart_time"
)

// DayPart is a bucket of the day used to filter departure times.
type DayPart string

const (
	DayPartMorning   DayPart = "morning"   // 06:00 - 11:59
	DayPartAfternoon DayPart = "afternoon" // 12:00 - 17:59
	DayPartEvening   DayPart = "evening"   // 18:00 - 23:59
	DayPartNight     DayPart = "night"     // 00:00 - 05:59
)

// SelectionMode controls how many filtered candidates are attempted.
type SelectionMode string

const (
	SelectionExhaustive SelectionMode = "exhaustive" // try candidates in order until one books
	SelectionFirst      SelectionMode = "first"      // collapse to the first candidate
	SelectionRandom     SelectionMode = "random"     // collapse to one uniformly chosen candidate
)

// SearchCriteria holds the search parameters and candidate preferences for
// one booking run.
type SearchCriteria struct {
	Origin        string        `json:"origin"`        // Origin station code
	Destination   string        `json:"destination"`   // Destination station code
	DepartureDate time.Time     `json:"departureDate"` // Calendar date, time-of-day ignored
	TrainNames    []string      `json:"trainNames"`    // Optional name substrings, any-match
	MinPrice      *int64        `json:"minPrice"`      // Optional inclusive lower fare bound (IDR)
	MaxPrice      *int64        `json:"maxPrice"`      // Optional inclusive upper fare bound (IDR)
	DepartTimes   []DayPart     `json:"departTimes"`   // Optional day-part buckets
	OnlyDirect    bool          `json:"onlyDirect"`    // Keep only zero-transit candidates
	SortBy        SortKey       `json:"sortBy"`        // Optional sort key; empty keeps remote order
	Selection     SelectionMode `json:"selection"`     // Defaults to exhaustive when empty
}

// Validate rejects malformed criteria before the search is issued.
func (c SearchCriteria) Validate() error {
	if c.Origin == "" || c.Destination == "" {
		return fmt.Errorf("origin and destination station codes are required")
	}
	if c.DepartureDate.IsZero() {
		return fmt.Errorf("departure date is required")
	}
	if c.MinPrice != nil && c.MaxPrice != nil && *c.MinPrice > *c.MaxPrice {
		return fmt.Errorf("minimum price must not exceed maximum price")
	}
	for _, dp := range c.DepartTimes {
		switch dp {
		case DayPartMorning, DayPartAfternoon, DayPartEvening, DayPartNight:
		default:
			return fmt.Errorf("unknown depart time bucket %q", dp)
		}
	}
	switch c.SortBy {
	case "", SortByPrice, SortByEarliestDeparture, SortByLatestDeparture:
	default:
		return fmt.Errorf("unknown sort key %q", c.SortBy)
	}
	switch c.Selection {
	case "", SelectionExhaustive, SelectionFirst, SelectionRandom:
	default:
		return fmt.Errorf("unknown selection mode %q", c.Selection)
	}
	return nil
}
