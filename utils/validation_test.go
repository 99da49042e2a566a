package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateDepartureDate(t *testing.T) {
	today := time.Now().Format("2006-01-02")
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")

	assert.True(t, ValidateDepartureDate(today))
	assert.True(t, ValidateDepartureDate(tomorrow))
	assert.False(t, ValidateDepartureDate(yesterday))
	assert.False(t, ValidateDepartureDate("01-06-2025"))
	assert.False(t, ValidateDepartureDate("2025-13-01"))
	assert.False(t, ValidateDepartureDate(""))
}

func TestValidateNameTitle(t *testing.T) {
	assert.True(t, ValidateNameTitle("MR"))
	assert.True(t, ValidateNameTitle("MRS"))
	assert.True(t, ValidateNameTitle("MS"))
	assert.False(t, ValidateNameTitle("mr"))
	assert.False(t, ValidateNameTitle("DR"))
	assert.False(t, ValidateNameTitle(""))
}

func TestValidateFullName(t *testing.T) {
	assert.True(t, ValidateFullName("Budi Santoso"))
	assert.False(t, ValidateFullName(""))
	assert.False(t, ValidateFullName("   "))
}

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("budi@example.com"))
	assert.True(t, ValidateEmail("budi.santoso+tiket@mail.example.co.id"))
	assert.False(t, ValidateEmail("budi"))
	assert.False(t, ValidateEmail("budi@"))
	assert.False(t, ValidateEmail("@example.com"))
	assert.False(t, ValidateEmail("budi@example"))
}

func TestValidateNationalID(t *testing.T) {
	assert.True(t, ValidateNationalID("1234567890123456"))
	assert.False(t, ValidateNationalID("123456789012345"))
	assert.False(t, ValidateNationalID("12345678901234567"))
	assert.False(t, ValidateNationalID("12345678901234ab"))
}

func TestValidatePhoneNumber(t *testing.T) {
	assert.True(t, ValidatePhoneNumber("081234567890"))
	assert.True(t, ValidatePhoneNumber("+6281234567890"))
	assert.False(t, ValidatePhoneNumber("abc"))
	assert.False(t, ValidatePhoneNumber(""))
}
