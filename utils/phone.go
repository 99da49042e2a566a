package utils

import (
	"fmt"
	"strconv"

	"github.com/nyaruka/phonenumbers"
)

// ParsedPhoneNumber is a phone number split into its country calling code and
// national subscriber number.
type ParsedPhoneNumber struct {
	CountryCode    string `json:"countryCode"`
	NationalNumber string `json:"nationalNumber"`
}

// ParsePhoneNumber parses a phone number, defaulting to the ID region when no
// country prefix is given.
func ParsePhoneNumber(input string) (ParsedPhoneNumber, error) {
	num, err := phonenumbers.Parse(input, "ID")
	if err != nil {
		return ParsedPhoneNumber{}, fmt.Errorf("invalid phone number: %w", err)
	}
	if !phonenumbers.IsValidNumber(num) {
		return ParsedPhoneNumber{}, fmt.Errorf("invalid phone number: %s", input)
	}

	return ParsedPhoneNumber{
		CountryCode:    fmt.Sprintf("+%d", num.GetCountryCode()),
		NationalNumber: strconv.FormatUint(num.GetNationalNumber(), 10),
	}, nil
}
