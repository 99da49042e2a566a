package utils

import (
	"regexp"
	"strings"
	"time"
)

var (
	emailRegex = regexp.MustCompile(
		`^(([^<>()\[\]\\.,;:\s@"]+(\.[^<>()\[\]\\.,;:\s@"]+)*)|(".+"))@((\[[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}])|(([a-zA-Z\-0-9]+\.)+[a-zA-Z]{2,}))$`)
	nationalIDRegex = regexp.MustCompile(`^[0-9]{16}$`)
)

// ValidateDepartureDate checks that the date parses as YYYY-MM-DD and is today
// or in the future.
func ValidateDepartureDate(departureDate string) bool {
	departure, err := time.ParseInLocation("2006-01-02", departureDate, time.Local)
	if err != nil {
		return false
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	return !departure.Before(today)
}

// ValidateNameTitle checks the title is one of MR, MRS, MS.
func ValidateNameTitle(title string) bool {
	switch title {
	case "MR", "MRS", "MS":
		return true
	}
	return false
}

// ValidateFullName checks the full name is non-blank.
func ValidateFullName(fullName string) bool {
	return strings.TrimSpace(fullName) != ""
}

// ValidateEmail checks the email address format.
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidatePhoneNumber checks the phone number parses as a valid number.
func ValidatePhoneNumber(phoneNumber string) bool {
	_, err := ParsePhoneNumber(phoneNumber)
	return err == nil
}

// ValidateNationalID checks the national identity number is exactly 16 digits.
func ValidateNationalID(nationalID string) bool {
	return nationalIDRegex.MatchString(nationalID)
}
