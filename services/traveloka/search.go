package traveloka

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"trainbook/models"
	"trainbook/services/booking"
)

const (
	providerKAI   = "KAI"
	currencyIDR   = "IDR"
	statusSuccess = "SUCCESSFUL"
	statusOK      = "OK"
)

// Search lists the sellable train candidates for one route and date. A 202
// response is the remote's backpressure signal and run-fatal; a body whose
// status is not SUCCESSFUL is a run-fatal protocol error carrying the
// remote's user-facing message.
func (c *Client) Search(ctx context.Context, origin, destination string, date time.Time, numAdult, numInfant int) ([]models.TrainCandidate, error) {
	if origin == "" || destination == "" || date.IsZero() {
		return nil, booking.NewRunFatalError("badSearchInput", "origin, destination and date are required")
	}

	payload := searchRequest{
		Fields: []string{},
		Data: searchRequestData{
			DepartureDate: dateSpec{Day: date.Day(), Month: int(date.Month()), Year: date.Year()},
			ReturnDate:    nil,
			Destination:   destination,
			Origin:        origin,
			NumOfAdult:    numAdult,
			NumOfInfant:   numInfant,
			ProviderType:  providerKAI,
			Currency:      currencyIDR,
			TrackingMap:   searchTrackingMap{UtmID: nil, UtmEntryTimeMillis: 0},
		},
		ClientInterface: "desktop",
	}

	headers := map[string]string{
		"x-domain": "train",
		"Referer": fmt.Sprintf("%s/kereta-api/search?st=%s.%s&dt=%s.null&ps=1.0&pd=%s",
			c.baseURL, origin, destination, date.Format("02-01-2006"), providerKAI),
	}

	res, body, err := c.doRequest(ctx, http.MethodPost, c.baseAPIURL+"/train/search/inventoryv2", headers, payload)
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
	if !strings.EqualFold(env.Status, statusSuccess) {
		return nil, booking.NewRunFatalError("searchRejected", env.errorMessage())
	}

	var data searchResponseData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, booking.NewTransportError("invalidSearchData", err)
	}

	candidates := make([]models.TrainCandidate, 0, len(data.DepartTrainInventories))
	for _, raw := range data.DepartTrainInventories {
		candidate, err := models.ParseTrainCandidate(raw)
		if err != nil {
			// One unreadable entry should not sink the whole inventory.
			c.logger.Warn("Skipping unparseable inventory entry", zap.Error(err))
			continue
		}
		candidates = append(candidates, candidate)
	}
	return candidates, nil
}
