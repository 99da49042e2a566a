package traveloka

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"trainbook/models"
	"trainbook/services/booking"
	"trainbook/utils"
)

const inventoryProgo = `{
	"availability": "AVAILABLE",
	"trainBrandLabel": "Progo (2)",
	"ticketLabel": "Economy",
	"numTransits": 0,
	"departureTime": {"hourMinute": {"hour": 8, "minute": 15}},
	"arrivalTime": {"hourMinute": {"hour": 15, "minute": 40}},
	"fare": {"currencyValue": {"amount": 60000, "currency": "IDR"}}
}`

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		BaseURL:         server.URL,
		BaseAPIURL:      server.URL + "/api/v2",
		RoutePrefix:     "en-id",
		UserAgent:       "test-agent",
		SecChUA:         `"Testing";v="1"`,
		SecChUAPlatform: `"Linux"`,
		AcceptLang:      "en-US,en;q=0.9",
		ServiceFee:      7500,
		HTTPClient:      server.Client(),
		Logger:          zap.NewNop(),
	})
	return client, server
}

func testDate() time.Time {
	return time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)
}

func TestSearchParsesInventories(t *testing.T) {
	var gotReq searchRequest
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v2/train/search/inventoryv2", r.URL.Path)
		assert.Equal(t, "train", r.Header.Get("x-domain"))
		assert.Contains(t, r.Header.Get("Cookie"), "tv-repeat-visit=true")
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"SUCCESSFUL","data":{"departTrainInventories":[` + inventoryProgo + `]}}`))
	})

	client, _ := newTestClient(t, handler)
	candidates, err := client.Search(context.Background(), "GMR", "SLO", testDate(), 1, 0)

	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "Progo (2)", candidates[0].BrandLabel)
	assert.Equal(t, int64(60000), candidates[0].Fare)
	assert.Equal(t, models.HourMinute{Hour: 8, Minute: 15}, candidates[0].Departure)
	assert.JSONEq(t, inventoryProgo, string(candidates[0].Summary))

	assert.Equal(t, "GMR", gotReq.Data.Origin)
	assert.Equal(t, "SLO", gotReq.Data.Destination)
	assert.Equal(t, dateSpec{Day: 1, Month: 6, Year: 2025}, gotReq.Data.DepartureDate)
	assert.Equal(t, "KAI", gotReq.Data.ProviderType)
	assert.Nil(t, gotReq.Data.ReturnDate)
}

func TestSearchRateLimitIsRunFatal(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{}`))
	})

	client, _ := newTestClient(t, handler)
	_, err := client.Search(context.Background(), "GMR", "SLO", testDate(), 1, 0)

	require.Error(t, err)
	assert.Equal(t, booking.ClassRunFatal, booking.ClassOf(err))
}

func TestSearchRejectedStatusCarriesRemoteMessage(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"FAILED","userErrorMessage":"Route is not served"}`))
	})

	client, _ := newTestClient(t, handler)
	_, err := client.Search(context.Background(), "GMR", "SLO", testDate(), 1, 0)

	require.Error(t, err)
	assert.Equal(t, booking.ClassRunFatal, booking.ClassOf(err))
	assert.Contains(t, err.Error(), "Route is not served")
}

func TestSearchNonJSONBodyIsTransport(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>blocked</html>`))
	})

	client, _ := newTestClient(t, handler)
	_, err := client.Search(context.Background(), "GMR", "SLO", testDate(), 1, 0)

	require.Error(t, err)
	assert.Equal(t, booking.ClassTransport, booking.ClassOf(err))
}

func TestCookiesMergedAcrossCalls(t *testing.T) {
	step := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		step++
		switch step {
		case 1:
			http.SetCookie(w, &http.Cookie{Name: "sid", Value: "abc", Path: "/"})
			_, _ = w.Write([]byte(`{"status":"SUCCESSFUL","data":{"departTrainInventories":[]}}`))
		case 2:
			// The second call must replay the cookie the first call set.
			assert.Contains(t, r.Header.Get("Cookie"), "sid=abc")
			http.SetCookie(w, &http.Cookie{Name: "sid", Value: "xyz"})
			_, _ = w.Write([]byte(`{"status":"SUCCESSFUL","data":{"departTrainInventories":[]}}`))
		}
	})

	client, _ := newTestClient(t, handler)
	_, err := client.Search(context.Background(), "GMR", "SLO", testDate(), 1, 0)
	require.NoError(t, err)
	_, err = client.Search(context.Background(), "GMR", "SLO", testDate(), 1, 0)
	require.NoError(t, err)

	assert.Contains(t, client.Jar().HeaderValue(), "sid=xyz")
	assert.NotContains(t, client.Jar().HeaderValue(), "sid=abc")
}

func TestCookiesMergedEvenOnRejectedCall(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "block", Value: "1"})
		_, _ = w.Write([]byte(`{"status":"FAILED","userErrorMessage":"nope"}`))
	})

	client, _ := newTestClient(t, handler)
	_, err := client.Search(context.Background(), "GMR", "SLO", testDate(), 1, 0)

	require.Error(t, err)
	assert.Contains(t, client.Jar().HeaderValue(), "block=1")
}

func TestPreBookReturnsServerTrackingSpec(t *testing.T) {
	var gotReq bookingPageRequest
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v2/trip/booking/bookingPage", r.URL.Path)
		assert.Equal(t, "trip", r.Header.Get("x-domain"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_, _ = w.Write([]byte(`{"status":"OK","data":{"trackingSpec":{"searchId":"SRV01","contexts":{"a":1}}}}`))
	})

	client, _ := newTestClient(t, handler)
	candidate, err := models.ParseTrainCandidate([]byte(inventoryProgo))
	require.NoError(t, err)

	seed := models.NewTrackingSpec("ABC123XYZ")
	tracking, _, err := client.PreBook(context.Background(), candidate, testDate(), seed)

	require.NoError(t, err)
	assert.JSONEq(t, `{"searchId":"SRV01","contexts":{"a":1}}`, string(tracking))

	// The candidate payload is forwarded unmodified, with the computed date strings.
	spec := gotReq.Data.SelectedProductSpec.TrainBookingSpec
	assert.JSONEq(t, inventoryProgo, string(spec.DepartDetails.TrainInventorySummary))
	assert.Equal(t, "Sun, 01 Jun 2025", spec.DepartDetails.DepartureDateString)
	assert.Equal(t, "Sunday, 01 June 2025", spec.FeSearchFormSpec.DepartureDate)
	assert.Equal(t, "ABC123XYZ", spec.TrackingMap.SearchID)
	assert.Equal(t, int64(60000), gotReq.Data.SelectedPrice.SelectedPrice.Amount)
	assert.Equal(t, "TRAIN", gotReq.Data.SelectedProductSpec.ProductType)
}

func TestPreBookRejectionIsAttemptLocal(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"FARE_UNAVAILABLE","userErrorMessage":"Fare no longer available"}`))
	})

	client, _ := newTestClient(t, handler)
	candidate, err := models.ParseTrainCandidate([]byte(inventoryProgo))
	require.NoError(t, err)

	_, _, err = client.PreBook(context.Background(), candidate, testDate(), models.NewTrackingSpec("X"))

	require.Error(t, err)
	assert.Equal(t, booking.ClassAttempt, booking.ClassOf(err))
	assert.True(t, booking.ShouldContinue(err))
}

func TestPreBookMissingTrackingSpecFailsAttempt(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"OK","data":{}}`))
	})

	client, _ := newTestClient(t, handler)
	candidate, err := models.ParseTrainCandidate([]byte(inventoryProgo))
	require.NoError(t, err)

	_, _, err = client.PreBook(context.Background(), candidate, testDate(), models.NewTrackingSpec("X"))

	require.Error(t, err)
	assert.Equal(t, booking.ClassAttempt, booking.ClassOf(err))
}

func TestPreBookMalformedTrackingSpecDegradesToEmptySearchID(t *testing.T) {
	var gotReq bookingPageRequest
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_, _ = w.Write([]byte(`{"status":"OK","data":{"trackingSpec":{"searchId":"SRV01"}}}`))
	})
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	core, logs := observer.New(zap.DebugLevel)
	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		BaseAPIURL: server.URL + "/api/v2",
		HTTPClient: server.Client(),
		Logger:     zap.New(core),
	})

	candidate, err := models.ParseTrainCandidate([]byte(inventoryProgo))
	require.NoError(t, err)

	// Valid JSON, but not the object shape the searchId lives in.
	_, _, err = client.PreBook(context.Background(), candidate, testDate(), models.TrackingSpec(`[1,2,3]`))
	require.NoError(t, err)

	// The unreadable token degrades to an empty searchId but leaves a trace.
	assert.Equal(t, "", gotReq.Data.SelectedProductSpec.TrainBookingSpec.TrackingMap.SearchID)
	assert.Equal(t, 1, logs.FilterMessage("Tracking spec has no readable searchId").Len())
}

func TestPreBookRateLimitIsRunFatal(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{}`))
	})

	client, _ := newTestClient(t, handler)
	candidate, err := models.ParseTrainCandidate([]byte(inventoryProgo))
	require.NoError(t, err)

	_, _, err = client.PreBook(context.Background(), candidate, testDate(), models.NewTrackingSpec("X"))

	require.Error(t, err)
	assert.False(t, booking.ShouldContinue(err))
}

func TestCreateBookingAddsServiceFee(t *testing.T) {
	var gotReq createBookingRequest
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v2/trip/booking/createBooking", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_, _ = w.Write([]byte(`{"status":"OK","data":{"invoiceId":"INV9","auth":"AU","payAuth":"PAU","trackingSpec":{"searchId":"S"}}}`))
	})

	client, _ := newTestClient(t, handler)
	candidate, err := models.ParseTrainCandidate([]byte(inventoryProgo))
	require.NoError(t, err)

	passenger := models.Passenger{
		Title:      "MRS",
		FullName:   "Siti Aminah",
		Email:      "siti@example.com",
		NationalID: "3201234567890001",
		PhoneNumber: utils.ParsedPhoneNumber{
			CountryCode:    "+62",
			NationalNumber: "81234567890",
		},
	}

	result, err := client.CreateBooking(context.Background(), passenger, candidate, testDate(), models.NewTrackingSpec("X"))

	require.NoError(t, err)
	assert.Equal(t, "INV9", result.InvoiceID)
	assert.Equal(t, "AU", result.Auth)
	assert.Equal(t, "PAU", result.PayAuth)

	// Total charged is fare plus the fixed service fee.
	assert.Equal(t, int64(67500), gotReq.Data.SelectedPrice.SelectedPrice.Amount)

	adult := gotReq.Data.CreateBookingTravelerSpecs.AdultFormData
	require.Len(t, adult, 1)
	assert.Equal(t, "MRS", adult[0].TravelerForm.Title)
	assert.Equal(t, "Siti Aminah", adult[0].TravelerForm.NameFull)
	assert.Equal(t, "KTP", adult[0].TravelerForm.TravelerIDType)
	assert.Equal(t, "3201234567890001", adult[0].TravelerForm.TravelerIDNumber)

	contact := gotReq.Data.BookingContact.FormData.TravelerForm
	assert.Equal(t, "", contact.Title)
	assert.Equal(t, "siti@example.com", contact.EmailAddress)
	assert.Equal(t, "+62", contact.PhoneNumber.CountryCode)
	assert.Equal(t, "81234567890", contact.PhoneNumber.PhoneNumber)
	assert.Equal(t, "PASSPORT", contact.TravelerIDType)
}

func TestCreateBookingMissingTokenIsMalformedSuccess(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"OK","data":{"invoiceId":"INV9","auth":"AU"}}`))
	})

	client, _ := newTestClient(t, handler)
	candidate, err := models.ParseTrainCandidate([]byte(inventoryProgo))
	require.NoError(t, err)

	_, err = client.CreateBooking(context.Background(), testCreatePassenger(), candidate, testDate(), models.NewTrackingSpec("X"))

	require.Error(t, err)
	assert.Equal(t, booking.ClassAttempt, booking.ClassOf(err))
	assert.Contains(t, err.Error(), "booking details")
}

func testCreatePassenger() models.Passenger {
	return models.Passenger{
		Title:      "MR",
		FullName:   "Budi Santoso",
		Email:      "budi@example.com",
		NationalID: "1234567890123456",
		PhoneNumber: utils.ParsedPhoneNumber{
			CountryCode:    "+62",
			NationalNumber: "81234567890",
		},
	}
}

func TestPaymentURLParameterOrder(t *testing.T) {
	client := NewClient(ClientConfig{
		BaseURL:    "https://www.traveloka.com",
		BaseAPIURL: "https://www.traveloka.com/api/v2",
		Logger:     zap.NewNop(),
	})

	url := client.PaymentURL("INV 9", "a/b", "c&d")
	assert.Equal(t,
		"https://www.traveloka.com/payment/selection?invoiceId=INV+9&auth=a%2Fb&payAuth=c%26d",
		url)
}

func TestInitSessionSeedsJar(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v2/user/context/web", r.URL.Path)
		assert.Equal(t, "user", r.Header.Get("x-domain"))

		var req sessionContextRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "MOBILE_WEB", req.Data.Client)

		http.SetCookie(w, &http.Cookie{Name: "tvs", Value: "session-1"})
		_, _ = w.Write([]byte(`{"status":"SUCCESSFUL"}`))
	})

	client, _ := newTestClient(t, handler)
	require.NoError(t, client.InitSession(context.Background()))

	header := client.Jar().HeaderValue()
	assert.Contains(t, header, "tv-repeat-visit=true")
	assert.Contains(t, header, "tvs=session-1")
}
