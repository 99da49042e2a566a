package traveloka

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"trainbook/services/booking"
	"trainbook/utils"
)

// Client implements booking.BookingAPI against the Traveloka train API,
// impersonating a desktop browser session. All calls share one SessionJar;
// every response is merged into it before the body is read.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	baseAPIURL  string
	routePrefix string

	userAgent       string
	secChUA         string
	secChUAPlatform string
	acceptLang      string

	serviceFee int64

	jar    *booking.SessionJar
	logger *zap.Logger
}

// ClientConfig configures a Client. Zero fields fall back to sane defaults;
// Jar may be supplied to share or inspect session state.
type ClientConfig struct {
	BaseURL     string
	BaseAPIURL  string
	RoutePrefix string

	UserAgent       string
	SecChUA         string
	SecChUAPlatform string
	AcceptLang      string

	ServiceFee int64

	HTTPClient *http.Client
	Jar        *booking.SessionJar
	Logger     *zap.Logger
}

// NewClient builds a client whose jar is seeded with the static cookies a
// first-time browser visit carries.
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

	jar.Seed([]booking.SessionCookie{
		{Name: "tv-repeat-visit", Value: "true"},
		{Name: "tv_user", Value: `{"authorizationLevel":100,"id":null}`},
		{Name: "countryCode", Value: "ID"},
	})

	return &Client{
		httpClient:      httpClient,
		baseURL:         strings.TrimRight(cfg.BaseURL, "/"),
		baseAPIURL:      strings.TrimRight(cfg.BaseAPIURL, "/"),
		routePrefix:     cfg.RoutePrefix,
		userAgent:       cfg.UserAgent,
		secChUA:         cfg.SecChUA,
		secChUAPlatform: cfg.SecChUAPlatform,
		acceptLang:      cfg.AcceptLang,
		serviceFee:      cfg.ServiceFee,
		jar:             jar,
		logger:          logger,
	}
}

// Jar exposes the session jar, mostly for wiring and tests.
func (c *Client) Jar() *booking.SessionJar {
	return c.jar
}

// InitSession performs the context handshake that seeds the remote's session
// cookies. A failed handshake is not fatal: later calls simply start from the
// static seed cookies.
func (c *Client) InitSession(ctx context.Context) error {
	payload := sessionContextRequest{
		ClientInterface: "desktop",
		Data: sessionContextData{
			Client: "MOBILE_WEB",
			Info:   map[string]string{"User-Agent": c.userAgent},
			Query:  map[string]any{},
		},
		Context: map[string]any{},
		Fields:  []string{},
	}

	headers := map[string]string{
		"accept":        "*/*",
		"cache-control": "no-cache",
		"connection":    "keep-alive",
		"pragma":        "no-cache",
		"x-domain":      "user",
	}

	res, _, err := c.doRequest(ctx, http.MethodPost, c.baseAPIURL+"/user/context/web", headers, payload)
	if err != nil {
		return fmt.Errorf("session handshake: %w", err)
	}
	c.logger.Debug("Session handshake completed", zap.Int("status", res.StatusCode))
	return nil
}

// defaultHeaders is the browser-impersonation header set attached to every
// call, Cookie built from the jar's current state.
func (c *Client) defaultHeaders() map[string]string {
	return map[string]string{
		"Accept-Language":    c.acceptLang,
		"Origin":             c.baseURL,
		"Cookie":             c.jar.HeaderValue(),
		"Referer":            c.baseURL + "/" + c.routePrefix,
		"Sec-Fetch-Dest":     "empty",
		"Sec-Fetch-Mode":     "cors",
		"Sec-Fetch-Site":     "same-origin",
		"User-Agent":         c.userAgent,
		"sec-ch-ua":          c.secChUA,
		"sec-ch-ua-mobile":   "?0",
		"sec-ch-ua-platform": c.secChUAPlatform,
		"x-route-prefix":     c.routePrefix,
	}
}

// doRequest sends one JSON call with the default header set plus extras, and
// merges response cookies into the jar before returning the body.
func (c *Client) doRequest(ctx context.Context, method, url string, extraHeaders map[string]string, payload any) (*http.Response, []byte, error) {
	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, fmt.Errorf("marshal request payload: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, nil, fmt.Errorf("build request: %w", err)
	}

	for key, val := range c.defaultHeaders() {
		req.Header.Set(key, val)
	}
	for key, val := range extraHeaders {
		req.Header.Set(key, val)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, booking.NewTransportError("requestFailed", err)
	}
	defer res.Body.Close()

	// Cookies first, body second: subsequent calls must carry the freshest
	// session even when this call is rejected.
	c.jar.Merge(res)

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return res, nil, booking.NewTransportError("readBodyFailed", err)
	}

	c.logger.Debug("API response", zap.String("url", url), zap.Int("status", res.StatusCode))
	return res, body, nil
}

// apiEnvelope is the common response wrapper of the Traveloka API.
type apiEnvelope struct {
	Status           string          `json:"status"`
	UserErrorMessage string          `json:"userErrorMessage"`
	Message          string          `json:"message"`
	Data             json.RawMessage `json:"data"`
}

func (e apiEnvelope) errorMessage() string {
	if e.UserErrorMessage != "" {
		return e.UserErrorMessage
	}
	if e.Message != "" {
		return e.Message
	}
	return "status " + e.Status
}

func decodeEnvelope(body []byte) (apiEnvelope, error) {
	var env apiEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return env, booking.NewTransportError("invalidBody", err)
	}
	return env, nil
}
