package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// AvailabilityAvailable is the inventory status of a sellable candidate.
const AvailabilityAvailable = "AVAILABLE"

// HourMinute is a wall-clock time as the remote reports it.
type HourMinute struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// Composite returns the hour composed with the zero-padded minute as one
// integer (e.g. 9:05 -> 905), the sort key for departure-time ordering.
func (hm HourMinute) Composite() int {
	return hm.Hour*100 + hm.Minute
}

// TotalMinutes returns minutes since midnight.
func (hm HourMinute) TotalMinutes() int {
	return hm.Hour*60 + hm.Minute
}

func (hm HourMinute) String() string {
	return fmt.Sprintf("%02d:%02d", hm.Hour, hm.Minute)
}

// flexInt64 decodes a JSON number or a numeric string; the remote is not
// consistent about which it sends for counts and amounts.
type flexInt64 int64

func (f *flexInt64) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("parse numeric field %q: %w", s, err)
	}
	*f = flexInt64(v)
	return nil
}

// candidateSummary is the typed view over the fields of one inventory entry
// the pipeline actually reads.
type candidateSummary struct {
	Availability  string    `json:"availability"`
	Brand         string    `json:"trainBrandLabel"`
	Ticket        string    `json:"ticketLabel"`
	NumTransits   flexInt64 `json:"numTransits"`
	DepartureTime struct {
		HourMinute HourMinute `json:"hourMinute"`
	} `json:"departureTime"`
	ArrivalTime struct {
		HourMinute HourMinute `json:"hourMinute"`
	} `json:"arrivalTime"`
	Fare struct {
		CurrencyValue struct {
			Amount flexInt64 `json:"amount"`
		} `json:"currencyValue"`
	} `json:"fare"`
}

// TrainCandidate is one sellable train/fare option. The typed fields are a
// read-only view used for filtering and ranking; Summary is the exact
// provider payload, which booking calls must forward unmodified.
type TrainCandidate struct {
	Availability string          `json:"availability"`
	BrandLabel   string          `json:"trainBrandLabel"`
	TicketLabel  string          `json:"ticketLabel"`
	NumTransits  int             `json:"numTransits"`
	Departure    HourMinute      `json:"departureTime"`
	Arrival      HourMinute      `json:"arrivalTime"`
	Fare         int64           `json:"fare"`
	Summary      json.RawMessage `json:"-"`
}

// ParseTrainCandidate builds a candidate from one raw inventory entry,
// retaining the entry byte-for-byte for later forwarding.
func ParseTrainCandidate(raw json.RawMessage) (TrainCandidate, error) {
	var view candidateSummary
	if err := json.Unmarshal(raw, &view); err != nil {
		return TrainCandidate{}, fmt.Errorf("parse train inventory entry: %w", err)
	}

	c := TrainCandidate{
		Availability: view.Availability,
		BrandLabel:   view.Brand,
		TicketLabel:  view.Ticket,
		NumTransits:  int(view.NumTransits),
		Departure:    view.DepartureTime.HourMinute,
		Arrival:      view.ArrivalTime.HourMinute,
		Fare:         int64(view.Fare.CurrencyValue.Amount),
		Summary:      append(json.RawMessage(nil), raw...),
	}
	return c, nil
}

// Available reports whether the candidate can be booked.
func (c TrainCandidate) Available() bool {
	return strings.EqualFold(c.Availability, AvailabilityAvailable)
}

// Banner returns the one-line human description logged per attempt.
func (c TrainCandidate) Banner() string {
	return fmt.Sprintf("[%s - %s] [%s] %s - Price: %d",
		c.Departure, c.Arrival, c.TicketLabel, c.BrandLabel, c.Fare)
}
