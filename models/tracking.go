package models

import "encoding/json"

// TrackingSpec is the opaque correlation token the remote threads through the
// booking steps. Each step's response carries the value the next request must
// echo back, so beyond the initial seed it is never interpreted locally.
type TrackingSpec = json.RawMessage

type marketingContexts struct {
	GaID *string `json:"ga_id"`
	Fbp  *string `json:"fbp"`
}

type marketingContextCapsule struct {
	AmplitudeSessionID *string `json:"amplitude_session_id"`
	GaSessionID        *string `json:"ga_session_id"`
	GaClientID         *string `json:"ga_client_id"`
	AmplitudeDeviceID  *string `json:"amplitude_device_id"`
	FbBrowserIDFbp     *string `json:"fb_browser_id_fbp"`
	ReferrerURL        *string `json:"referrer_url"`
	PageFullURL        *string `json:"page_full_url"`
	ClientUserAgent    *string `json:"client_user_agent"`
}

type trackingSpecSeed struct {
	Contexts                map[string]any          `json:"contexts"`
	SearchID                string                  `json:"searchId"`
	MarketingContexts       marketingContexts       `json:"marketingContexts"`
	MarketingContextCapsule marketingContextCapsule `json:"marketingContextCapsule"`
}

// NewTrackingSpec builds the fresh tracking token for one booking attempt:
// a random search id with empty context and null marketing fields.
func NewTrackingSpec(searchID string) TrackingSpec {
	seed := trackingSpecSeed{
		Contexts: map[string]any{},
		SearchID: searchID,
	}
	raw, _ := json.Marshal(seed)
	return raw
}
