package booking

import (
	"context"
	"math/rand"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"trainbook/models"
	"trainbook/utils"
)

const searchIDLength = 9

// DefaultAutoBooker implements AutoBooker: one search, the filter pipeline,
// then candidates attempted in order until one reaches the payment page.
type DefaultAutoBooker struct {
	API BookingAPI

	// CandidateDelay paces candidate attempts, StepDelay the calls within
	// one attempt. Nil means no pacing.
	CandidateDelay DelayPolicy
	StepDelay      DelayPolicy

	// Rand drives random candidate selection; nil uses the global source.
	Rand *rand.Rand

	Logger *zap.Logger
}

func (b *DefaultAutoBooker) logger() *zap.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return utils.GetLogger()
}

func (b *DefaultAutoBooker) candidateDelay() DelayPolicy {
	if b.CandidateDelay != nil {
		return b.CandidateDelay
	}
	return NoDelay()
}

func (b *DefaultAutoBooker) stepDelay() DelayPolicy {
	if b.StepDelay != nil {
		return b.StepDelay
	}
	return NoDelay()
}

// BookTicket runs one booking run. A search failure is terminal; afterwards,
// attempt-local errors advance to the next candidate while run-fatal errors
// abort the loop. The first candidate whose booking yields a payment URL
// ends the run as success.
func (b *DefaultAutoBooker) BookTicket(ctx context.Context, passenger models.Passenger, criteria models.SearchCriteria) models.BookingOutcome {
	logger := b.logger().With(zap.String("runId", uuid.New().String()))

	if err := passenger.Validate(); err != nil {
		return models.BookingOutcome{Reason: "invalid passenger: " + err.Error()}
	}
	if err := criteria.Validate(); err != nil {
		return models.BookingOutcome{Reason: "invalid search criteria: " + err.Error()}
	}

	logger.Info("Fetching trains",
		zap.String("origin", criteria.Origin),
		zap.String("destination", criteria.Destination),
		zap.String("date", criteria.DepartureDate.Format("2006-01-02")))

	candidates, err := b.API.Search(ctx, criteria.Origin, criteria.Destination, criteria.DepartureDate, 1, 0)
	if err != nil {
		logger.Error("Search failed", zap.Error(err))
		return models.BookingOutcome{Aborted: true, Reason: "search failed: " + err.Error()}
	}
	logger.Info("Processing trains", zap.Int("count", len(candidates)))

	trains := ApplyCriteria(candidates, criteria, b.Rand)
	logger.Info("Found bookable trains", zap.Int("count", len(trains)))

	outcome := models.BookingOutcome{}
	for _, train := range trains {
		if err := b.candidateDelay().Wait(ctx); err != nil {
			outcome.Aborted = true
			outcome.Reason = "run canceled"
			return outcome
		}

		logger.Info(train.Banner())

		result, err := b.attempt(ctx, logger, passenger, train, criteria)
		if err == nil {
			url := b.API.PaymentURL(result.InvoiceID, result.Auth, result.PayAuth)
			logger.Info("Booking succeeded",
				zap.String("train", train.BrandLabel),
				zap.String("invoiceId", result.InvoiceID))

			booked := train
			outcome.Success = true
			outcome.InvoiceID = result.InvoiceID
			outcome.Auth = result.Auth
			outcome.PayAuth = result.PayAuth
			outcome.PaymentURL = url
			outcome.Booked = &booked
			return outcome
		}

		logger.Warn("Failed to book train",
			zap.String("train", train.BrandLabel),
			zap.String("ticket", train.TicketLabel),
			zap.Error(err))
		outcome.Failures = append(outcome.Failures, models.AttemptFailure{
			BrandLabel:  train.BrandLabel,
			TicketLabel: train.TicketLabel,
			Reason:      err.Error(),
		})

		if !ShouldContinue(err) {
			outcome.Aborted = true
			outcome.Reason = "aborted on fatal error: " + err.Error()
			return outcome
		}
	}

	if outcome.Reason == "" {
		outcome.Reason = "exhausted all candidates"
	}
	return outcome
}

// attempt drives the three-step chain for one candidate. The tracking spec is
// regenerated fresh per attempt and replaced by whatever each step returns.
// The remote calls run on a detached context: aborting a booking call
// mid-flight could orphan a booking the remote already created, so
// cancellation is honored only at the delay points between calls.
func (b *DefaultAutoBooker) attempt(ctx context.Context, logger *zap.Logger, passenger models.Passenger, train models.TrainCandidate, criteria models.SearchCriteria) (*CreateBookingResult, error) {
	tracking := models.NewTrackingSpec(utils.RandomString(searchIDLength))
	callCtx := context.WithoutCancel(ctx)

	tracking, _, err := b.API.PreBook(callCtx, train, criteria.DepartureDate, tracking)
	if err != nil {
		return nil, err
	}

	if err := b.stepDelay().Wait(ctx); err != nil {
		return nil, NewRunFatalError("canceled", "run canceled")
	}

	logger.Info("Creating booking",
		zap.String("train", train.BrandLabel),
		zap.String("ticket", train.TicketLabel))

	result, err := b.API.CreateBooking(callCtx, passenger, train, criteria.DepartureDate, tracking)
	if err != nil {
		return nil, err
	}
	return result, nil
}
