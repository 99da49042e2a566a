package traveloka

import "encoding/json"

// Wire payload shapes. Field names, nesting and constants mirror what the
// web client sends; the remote rejects requests that deviate from them.

type sessionContextRequest struct {
	ClientInterface string             `json:"clientInterface"`
	Data            sessionContextData `json:"data"`
	Context         map[string]any     `json:"context"`
	Fields          []string           `json:"fields"`
}

type sessionContextData struct {
	Client string            `json:"client"`
	Info   map[string]string `json:"info"`
	Query  map[string]any    `json:"query"`
}

type dateSpec struct {
	Day   int `json:"day"`
	Month int `json:"month"`
	Year  int `json:"year"`
}

type searchTrackingMap struct {
	UtmID              *string `json:"utmId"`
	UtmEntryTimeMillis int64   `json:"utmEntryTimeMillis"`
}

type searchRequest struct {
	Fields          []string          `json:"fields"`
	Data            searchRequestData `json:"data"`
	ClientInterface string            `json:"clientInterface"`
}

type searchRequestData struct {
	DepartureDate dateSpec          `json:"departureDate"`
	ReturnDate    *dateSpec         `json:"returnDate"`
	Destination   string            `json:"destination"`
	Origin        string            `json:"origin"`
	NumOfAdult    int               `json:"numOfAdult"`
	NumOfInfant   int               `json:"numOfInfant"`
	ProviderType  string            `json:"providerType"`
	Currency      string            `json:"currency"`
	TrackingMap   searchTrackingMap `json:"trackingMap"`
}

type searchResponseData struct {
	DepartTrainInventories []json.RawMessage `json:"departTrainInventories"`
}

type departDetails struct {
	TrainInventorySummary json.RawMessage `json:"trainInventorySummary"`
	DepartureDateString   string          `json:"departureDateString"`
}

type bookingTrackingMap struct {
	SearchID           string  `json:"searchId"`
	UtmID              *string `json:"utmId"`
	UtmEntryTimeMillis int64   `json:"utmEntryTimeMillis"`
}

type feSearchFormSpec struct {
	DepartureDate string `json:"departureDate"`
	ReturnDate    string `json:"returnDate"`
}

type trainBookingSpec struct {
	DepartDetails    departDetails      `json:"departDetails"`
	NumOfAdult       int                `json:"numOfAdult"`
	NumOfInfant      int                `json:"numOfInfant"`
	TrackingMap      bookingTrackingMap `json:"trackingMap"`
	FeSearchFormSpec feSearchFormSpec   `json:"feSearchFormSpec"`
}

type productSpec struct {
	TrainBookingSpec trainBookingSpec `json:"trainBookingSpec"`
	ProductType      string           `json:"productType"`
}

type priceValue struct {
	Currency    string `json:"currency"`
	Amount      int64  `json:"amount"`
	NullOrEmpty bool   `json:"nullOrEmpty"`
}

type selectedPriceBlock struct {
	SelectedPrice priceValue `json:"selectedPrice"`
}

type viewDescriptionContext struct {
	IsUsingStyledVD bool `json:"isUsingStyledVD"`
}

type bookingPageRequest struct {
	Fields          []string        `json:"fields"`
	Data            bookingPageData `json:"data"`
	ClientInterface string          `json:"clientInterface"`
}

type bookingPageData struct {
	SelectedProductSpec    productSpec            `json:"selectedProductSpec"`
	AddOnProductSpecs      []any                  `json:"addOnProductSpecs"`
	TrackingSpec           json.RawMessage        `json:"trackingSpec"`
	SelectedPrice          selectedPriceBlock     `json:"selectedPrice"`
	Currency               string                 `json:"currency"`
	ViewDescriptionContext viewDescriptionContext `json:"viewDescriptionContext"`
}

type bookingPageResponse struct {
	TrackingSpec json.RawMessage `json:"trackingSpec"`
}

type phoneNumberForm struct {
	CountryCode string `json:"countryCode"`
	PhoneNumber string `json:"phoneNumber"`
}

type contactTravelerForm struct {
	Title                    string          `json:"title"`
	NameFull                 string          `json:"name.full"`
	NameRegexName            string          `json:"name.regexName"`
	PhoneNumber              phoneNumberForm `json:"phoneNumber"`
	EmailAddress             string          `json:"emailAddress"`
	TravelerIDType           string          `json:"travelerID.type"`
	TravelerIDNumber         string          `json:"travelerID.number"`
	TravelerIDExpirationDate string          `json:"travelerID.expirationDate"`
}

type bookingContact struct {
	FormData struct {
		TravelerForm contactTravelerForm `json:"travelerForm"`
	} `json:"formData"`
}

type adultTravelerForm struct {
	Title            string `json:"title"`
	NameFull         string `json:"name.full"`
	NameRegexName    string `json:"name.regexName"`
	TravelerIDType   string `json:"travelerID.type"`
	TravelerIDNumber string `json:"travelerID.number"`
}

type adultFormEntry struct {
	TravelerForm adultTravelerForm `json:"travelerForm"`
}

type travelerSpecs struct {
	AdultFormData  []adultFormEntry `json:"adultFormData"`
	ChildFormData  []any            `json:"childFormData"`
	InfantFormData []any            `json:"infantFormData"`
}

// deviceData is the fingerprint block; the remote accepts placeholder/zero
// values as long as every key is present.
type deviceData struct {
	AudioHashID               int     `json:"audio_hash_id"`
	AvailableScreenResolution string  `json:"available_screen_resolution"`
	ColorDepth                int     `json:"color_depth"`
	CookiesEnabled            bool    `json:"cookies_enabled"`
	EmptyEvalLength           int     `json:"empty_eval_length"`
	ErrorFF                   bool    `json:"error_ff"`
	Fonts                     string  `json:"fonts"`
	HardwareConcurrency       int     `json:"hardware_concurrency"`
	HasAutocomplete           bool    `json:"has_autocomplete"`
	HasAutofill               bool    `json:"has_autofill"`
	IndexedDB                 bool    `json:"indexed_db"`
	IsChrome                  bool    `json:"is_chrome"`
	Languages                 string  `json:"languages"`
	Latitude                  *string `json:"latitude"`
	LocalStorage              bool    `json:"local_storage"`
	Longitude                 *string `json:"longitude"`
	MobilePlatform            *string `json:"mobile_platform"`
	OpenDatabase              bool    `json:"open_database"`
	Platform                  string  `json:"platform"`
	Plugins                   string  `json:"plugins"`
	PluginSupport             bool    `json:"plugin_support"`
	ProductSub                string  `json:"product_sub"`
	ScreenResolution          string  `json:"screen_resolution"`
	SessionStorage            bool    `json:"session_storage"`
	Timezone                  string  `json:"timezone"`
	TimezoneOffset            int     `json:"timezone_offset"`
	TouchSupport              string  `json:"touch_support"`
	UserAgent                 string  `json:"user_agent"`
	Vendor                    string  `json:"vendor"`
}

type createBookingRequest struct {
	Fields          []string          `json:"fields"`
	Data            createBookingData `json:"data"`
	ClientInterface string            `json:"clientInterface"`
}

type createBookingData struct {
	AddOnProductSpecs                  []any              `json:"addOnProductSpecs"`
	BookingContact                     bookingContact     `json:"bookingContact"`
	CreateBookingTravelerSpecs         travelerSpecs      `json:"createBookingTravelerSpecs"`
	CreateBookingProductSpecificAddOns []any              `json:"createBookingProductSpecificAddOns"`
	CreateBookingSimpleAddOns          []any              `json:"createBookingSimpleAddOns"`
	CreateBookingCrossSellAddOns       []any              `json:"createBookingCrossSellAddOns"`
	SelectedPrice                      selectedPriceBlock `json:"selectedPrice"`
	SelectedProductSpec                productSpec        `json:"selectedProductSpec"`
	PromptItemContext                  any                `json:"promptItemContext"`
	Currency                           string             `json:"currency"`
	TrackingSpec                       json.RawMessage    `json:"trackingSpec"`
	DeviceData                         deviceData         `json:"deviceData"`
}

type createBookingResponse struct {
	TrackingSpec json.RawMessage `json:"trackingSpec"`
	InvoiceID    string          `json:"invoiceId"`
	Auth         string          `json:"auth"`
	PayAuth      string          `json:"payAuth"`
}
