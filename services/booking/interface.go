package booking

import (
	"context"
	"encoding/json"
	"time"

	"trainbook/models"
)

// SearchProvider lists sellable train candidates for a route and date.
type SearchProvider interface {
	Search(ctx context.Context, origin, destination string, date time.Time, numAdult, numInfant int) ([]models.TrainCandidate, error)
}

// CreateBookingResult carries the identifiers a successful booking returns;
// all three are required to build the payment URL.
type CreateBookingResult struct {
	InvoiceID    string
	Auth         string
	PayAuth      string
	TrackingSpec models.TrackingSpec
}

// BookingAPI is the remote booking contract the orchestrator drives. Each
// step's output feeds the next step's input: PreBook returns the tracking
// spec CreateBooking must echo back.
type BookingAPI interface {
	SearchProvider

	PreBook(ctx context.Context, candidate models.TrainCandidate, date time.Time, tracking models.TrackingSpec) (models.TrackingSpec, json.RawMessage, error)
	CreateBooking(ctx context.Context, passenger models.Passenger, candidate models.TrainCandidate, date time.Time, tracking models.TrackingSpec) (*CreateBookingResult, error)
	PaymentURL(invoiceID, auth, payAuth string) string
}

// AutoBooker runs one booking run end to end.
type AutoBooker interface {
	BookTicket(ctx context.Context, passenger models.Passenger, criteria models.SearchCriteria) models.BookingOutcome
}
