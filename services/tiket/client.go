// Package tiket is a search-only provider against the tiket.com train API.
// It can list and rank candidates through the shared pipeline; booking is not
// implemented for this provider.
package tiket

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"trainbook/models"
	"trainbook/services/booking"
	"trainbook/utils"
)

// Client implements booking.SearchProvider for tiket.com. It keeps its own
// SessionJar: the two providers are independent sessions.
type Client struct {
	httpClient *http.Client
	baseURL    string
	baseAPIURL string
	userAgent  string

	jar    *booking.SessionJar
	logger *zap.Logger
}

// ClientConfig configures a tiket.com client.
type ClientConfig struct {
	BaseURL    string
	BaseAPIURL string
	UserAgent  string

	HTTPClient *http.Client
	Jar        *booking.SessionJar
	Logger     *zap.Logger
}

func NewClient(cfg ClientConfig) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	jar := cfg.Jar
	if jar == nil {
		jar = booking.NewSessionJar()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = utils.GetLogger()
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		baseAPIURL: strings.TrimRight(cfg.BaseAPIURL, "/"),
		userAgent:  cfg.UserAgent,
		jar:        jar,
		logger:     logger,
	}
}

// Jar exposes the session jar for tests.
func (c *Client) Jar() *booking.SessionJar {
	return c.jar
}

func (c *Client) defaultHeaders() map[string]string {
	return map[string]string{
		"User-Agent":      c.userAgent,
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/png,image/svg+xml,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.5",
		"Cookie":          c.jar.HeaderValue(),
		"Connection":      "keep-alive",
		"Sec-Fetch-Dest":  "document",
		"Sec-Fetch-Mode":  "navigate",
		"Sec-Fetch-Site":  "cross-site",
		"Pragma":          "no-cache",
		"Cache-Control":   "no-cache",
		"Origin":          c.baseURL,
		"Referer":         c.baseURL + "/",
	}
}

// InitSession fetches the landing page once to collect the session cookies
// the search endpoint expects.
func (c *Client) InitSession(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return fmt.Errorf("build handshake request: %w", err)
	}
	for key, val := range c.defaultHeaders() {
		req.Header.Set(key, val)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return booking.NewTransportError("handshakeFailed", err)
	}
	defer res.Body.Close()
	c.jar.Merge(res)
	_, _ = io.Copy(io.Discard, res.Body)

	c.logger.Debug("Session handshake completed", zap.Int("status", res.StatusCode))
	return nil
}

type journeysEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    struct {
		DepartJourneys struct {
			Journeys []json.RawMessage `json:"journeys"`
		} `json:"departJourneys"`
	} `json:"data"`
}

// journeyView is the subset of one journey entry mapped into the shared
// candidate model.
type journeyView struct {
	TrainName     string `json:"trainName"`
	TrainNumber   string `json:"trainNumber"`
	Availability  string `json:"availability"`
	SeatAvailable int    `json:"seatAvailable"`
	DepartureTime string `json:"departureTime"`
	ArrivalTime   string `json:"arrivalTime"`
	AdultFare     int64  `json:"adultFare"`
	Transit       int    `json:"transit"`
}

// Search lists train journeys for one route and date.
func (c *Client) Search(ctx context.Context, origin, destination string, date time.Time, numAdult, numInfant int) ([]models.TrainCandidate, error) {
	if origin == "" || destination == "" || date.IsZero() {
		return nil, booking.NewRunFatalError("badSearchInput", "origin, destination and date are required")
	}

	query := url.Values{}
	query.Set("orig", origin)
	query.Set("otype", "STATION")
	query.Set("dest", destination)
	query.Set("dtype", "STATION")
	query.Set("ttype", "ONE_WAY")
	query.Set("ddate", date.Format("20060102"))
	query.Set("rdate", "")
	query.Set("acount", strconv.Itoa(numAdult))
	query.Set("icount", strconv.Itoa(numInfant))

	searchURL := c.baseAPIURL + "/tix-train-search-v2/v5/train/journeys?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	for key, val := range c.defaultHeaders() {
		req.Header.Set(key, val)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, booking.NewTransportError("requestFailed", err)
	}
	defer res.Body.Close()
	c.jar.Merge(res)

	if res.StatusCode == http.StatusAccepted {
		return nil, booking.NewRunFatalError("rateLimited", "remote is rate limiting the session")
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, booking.NewTransportError("readBodyFailed", err)
	}

	var env journeysEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, booking.NewTransportError("invalidBody", err)
	}
	if !strings.EqualFold(env.Code, "SUCCESS") {
		msg := env.Message
		if msg == "" {
			msg = "code " + env.Code
		}
		return nil, booking.NewRunFatalError("searchRejected", msg)
	}

	journeys := env.Data.DepartJourneys.Journeys
	candidates := make([]models.TrainCandidate, 0, len(journeys))
	for _, raw := range journeys {
		candidate, err := parseJourney(raw)
		if err != nil {
			c.logger.Warn("Skipping unparseable journey entry", zap.Error(err))
			continue
		}
		candidates = append(candidates, candidate)
	}
	return candidates, nil
}

func parseJourney(raw json.RawMessage) (models.TrainCandidate, error) {
	var view journeyView
	if err := json.Unmarshal(raw, &view); err != nil {
		return models.TrainCandidate{}, fmt.Errorf("parse journey entry: %w", err)
	}

	availability := view.Availability
	if availability == "" {
		if view.SeatAvailable > 0 {
			availability = models.AvailabilityAvailable
		} else {
			availability = "UNAVAILABLE"
		}
	}

	departure, err := parseClock(view.DepartureTime)
	if err != nil {
		return models.TrainCandidate{}, err
	}
	arrival, err := parseClock(view.ArrivalTime)
	if err != nil {
		return models.TrainCandidate{}, err
	}

	return models.TrainCandidate{
		Availability: availability,
		BrandLabel:   view.TrainName,
		TicketLabel:  view.TrainNumber,
		NumTransits:  view.Transit,
		Departure:    departure,
		Arrival:      arrival,
		Fare:         view.AdultFare,
		Summary:      append(json.RawMessage(nil), raw...),
	}, nil
}

func parseClock(value string) (models.HourMinute, error) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return models.HourMinute{}, fmt.Errorf("parse clock time %q", value)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return models.HourMinute{}, fmt.Errorf("parse clock time %q: %w", value, err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return models.HourMinute{}, fmt.Errorf("parse clock time %q: %w", value, err)
	}
	return models.HourMinute{Hour: hour, Minute: minute}, nil
}
