package traveloka

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"trainbook/models"
	"trainbook/services/booking"
)

const (
	departDateShortFormat = "Mon, 02 Jan 2006"
	departDateLongFormat  = "Monday, 02 January 2006"
)

// searchIDFrom extracts the searchId the booking payloads repeat inside their
// trackingMap. Everything else in the token stays opaque.
func (c *Client) searchIDFrom(tracking models.TrackingSpec) string {
	var view struct {
		SearchID string `json:"searchId"`
	}
	if err := json.Unmarshal(tracking, &view); err != nil {
		c.logger.Debug("Tracking spec has no readable searchId", zap.Error(err))
	}
	return view.SearchID
}

// productSpecFor embeds the candidate's summary payload unmodified, plus the
// date strings the remote expects alongside it.
func productSpecFor(candidate models.TrainCandidate, date time.Time, searchID string) productSpec {
	return productSpec{
		TrainBookingSpec: trainBookingSpec{
			DepartDetails: departDetails{
				TrainInventorySummary: candidate.Summary,
				DepartureDateString:   date.Format(departDateShortFormat),
			},
			NumOfAdult:  1,
			NumOfInfant: 0,
			TrackingMap: bookingTrackingMap{SearchID: searchID, UtmID: nil, UtmEntryTimeMillis: 0},
			FeSearchFormSpec: feSearchFormSpec{
				DepartureDate: date.Format(departDateLongFormat),
				ReturnDate:    "",
			},
		},
		ProductType: "TRAIN",
	}
}

// PreBook opens the booking page for one candidate. The returned tracking
// spec must be echoed into CreateBooking. Rejection here concerns only this
// candidate; a 202 concerns the whole run.
func (c *Client) PreBook(ctx context.Context, candidate models.TrainCandidate, date time.Time, tracking models.TrackingSpec) (models.TrackingSpec, json.RawMessage, error) {
	payload := bookingPageRequest{
		Fields: []string{},
		Data: bookingPageData{
			SelectedProductSpec: productSpecFor(candidate, date, c.searchIDFrom(tracking)),
			AddOnProductSpecs:   []any{},
			TrackingSpec:        json.RawMessage(tracking),
			SelectedPrice: selectedPriceBlock{
				SelectedPrice: priceValue{Currency: currencyIDR, Amount: candidate.Fare, NullOrEmpty: false},
			},
			Currency:               currencyIDR,
			ViewDescriptionContext: viewDescriptionContext{IsUsingStyledVD: true},
		},
		ClientInterface: "desktop",
	}

	headers := map[string]string{
		"Cache-Control": "no-cache",
		"Pragma":        "no-cache",
		"x-domain":      "trip",
	}

	res, body, err := c.doRequest(ctx, http.MethodPost, c.baseAPIURL+"/trip/booking/bookingPage", headers, payload)
	if err != nil {
		return nil, nil, err
	}
	if res.StatusCode == http.StatusAccepted {
		return nil, nil, booking.NewRunFatalError("rateLimited", "remote is rate limiting the session")
	}

	env, err := decodeEnvelope(body)
	if err != nil {
		return nil, nil, err
	}
	if res.StatusCode != http.StatusOK || !strings.EqualFold(env.Status, statusOK) {
		return nil, nil, booking.NewAttemptError("preBookRejected", env.errorMessage())
	}

	var page bookingPageResponse
	if err := json.Unmarshal(env.Data, &page); err != nil || len(page.TrackingSpec) == 0 {
		return nil, nil, booking.NewAttemptError("noPreBookingData", "no pre-booking data returned")
	}
	return models.TrackingSpec(page.TrackingSpec), env.Data, nil
}

// CreateBooking books the candidate for the passenger. The charged amount is
// the fare plus the fixed service fee. An OK response missing any of
// invoiceId/auth/payAuth is a malformed success and fails the attempt.
func (c *Client) CreateBooking(ctx context.Context, passenger models.Passenger, candidate models.TrainCandidate, date time.Time, tracking models.TrackingSpec) (*booking.CreateBookingResult, error) {
	contact := bookingContact{}
	contact.FormData.TravelerForm = contactTravelerForm{
		Title:         "",
		NameFull:      passenger.FullName,
		NameRegexName: "DEFAULT",
		PhoneNumber: phoneNumberForm{
			CountryCode: passenger.PhoneNumber.CountryCode,
			PhoneNumber: passenger.PhoneNumber.NationalNumber,
		},
		EmailAddress:             passenger.Email,
		TravelerIDType:           "PASSPORT",
		TravelerIDNumber:         "",
		TravelerIDExpirationDate: "",
	}

	payload := createBookingRequest{
		Fields: []string{},
		Data: createBookingData{
			AddOnProductSpecs: []any{},
			BookingContact:    contact,
			CreateBookingTravelerSpecs: travelerSpecs{
				AdultFormData: []adultFormEntry{{
					TravelerForm: adultTravelerForm{
						Title:            passenger.Title,
						NameFull:         passenger.FullName,
						NameRegexName:    "DEFAULT",
						TravelerIDType:   "KTP",
						TravelerIDNumber: passenger.NationalID,
					},
				}},
				ChildFormData:  []any{},
				InfantFormData: []any{},
			},
			CreateBookingProductSpecificAddOns: []any{},
			CreateBookingSimpleAddOns:          []any{},
			CreateBookingCrossSellAddOns:       []any{},
			SelectedPrice: selectedPriceBlock{
				SelectedPrice: priceValue{
					Currency:    currencyIDR,
					Amount:      candidate.Fare + c.serviceFee,
					NullOrEmpty: false,
				},
			},
			SelectedProductSpec: productSpecFor(candidate, date, c.searchIDFrom(tracking)),
			PromptItemContext:   nil,
			Currency:            currencyIDR,
			TrackingSpec:        json.RawMessage(tracking),
			DeviceData: deviceData{
				AvailableScreenResolution: "[0,0]",
				Fonts:                     "[]",
				Languages:                 "[]",
				Plugins:                   "[]",
				ScreenResolution:          "0x0",
				SessionStorage:            true,
				Timezone:                  "UTC",
				TouchSupport:              "null",
				UserAgent:                 c.userAgent,
			},
		},
		ClientInterface: "desktop",
	}

	headers := map[string]string{
		"Cache-Control": "no-cache",
		"Pragma":        "no-cache",
		"x-domain":      "trip",
	}

	res, body, err := c.doRequest(ctx, http.MethodPost, c.baseAPIURL+"/trip/booking/createBooking", headers, payload)
	if err != nil {
		return nil, err
	}
	if res.StatusCode == http.StatusAccepted {
		return nil, booking.NewRunFatalError("rateLimited", "remote is rate limiting the session")
	}

	env, err := decodeEnvelope(body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK || !strings.EqualFold(env.Status, statusOK) {
		return nil, booking.NewAttemptError("createBookingRejected", env.errorMessage())
	}

	var created createBookingResponse
	if err := json.Unmarshal(env.Data, &created); err != nil {
		return nil, booking.NewAttemptError("noBookingData", "no booking data returned")
	}
	if created.InvoiceID == "" || created.Auth == "" || created.PayAuth == "" {
		return nil, booking.NewAttemptError("incompleteBooking", "failed to get booking details")
	}

	return &booking.CreateBookingResult{
		InvoiceID:    created.InvoiceID,
		Auth:         created.Auth,
		PayAuth:      created.PayAuth,
		TrackingSpec: models.TrackingSpec(created.TrackingSpec),
	}, nil
}

// PaymentURL builds the payment-selection URL for a booked invoice. Pure
// construction; the query parameters keep the order the payment page expects.
func (c *Client) PaymentURL(invoiceID, auth, payAuth string) string {
	return c.baseURL + "/payment/selection" +
		"?invoiceId=" + url.QueryEscape(invoiceID) +
		"&auth=" + url.QueryEscape(auth) +
		"&payAuth=" + url.QueryEscape(payAuth)
}
