package models

import (
	"fmt"

	"trainbook/utils"
)

// Passenger holds the traveler identity used to fill the booking form.
type Passenger struct {
	Title       string                  `json:"title"`       // One of MR, MRS, MS
	FullName    string                  `json:"fullName"`    // Full name as printed on the ID
	Email       string                  `json:"email"`       // Contact email
	NationalID  string                  `json:"nationalId"`  // 16-digit national identity (KTP) number
	PhoneNumber utils.ParsedPhoneNumber `json:"phoneNumber"` // Country calling code + national number
}

// Validate rejects a malformed passenger before any booking call is made.
func (p Passenger) Validate() error {
	if !utils.ValidateNameTitle(p.Title) {
		return fmt.Errorf("invalid title %q: must be one of MR, MRS, MS", p.Title)
	}
	if !utils.ValidateFullName(p.FullName) {
		return fmt.Errorf("full name must not be blank")
	}
	if !utils.ValidateEmail(p.Email) {
		return fmt.Errorf("invalid email address %q", p.Email)
	}
	if !utils.ValidateNationalID(p.NationalID) {
		return fmt.Errorf("national ID number must be 16 digits")
	}
	if p.PhoneNumber.CountryCode == "" || p.PhoneNumber.NationalNumber == "" {
		return fmt.Errorf("phone number is required")
	}
	return nil
}
