package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePhoneNumberLocalFormat(t *testing.T) {
	parsed, err := ParsePhoneNumber("081234567890")
	require.NoError(t, err)

	assert.Equal(t, "+62", parsed.CountryCode)
	assert.Equal(t, "81234567890", parsed.NationalNumber)
}

func TestParsePhoneNumberInternationalFormat(t *testing.T) {
	parsed, err := ParsePhoneNumber("+6281234567890")
	require.NoError(t, err)

	assert.Equal(t, "+62", parsed.CountryCode)
	assert.Equal(t, "81234567890", parsed.NationalNumber)
}

func TestParsePhoneNumberRejectsGarbage(t *testing.T) {
	_, err := ParsePhoneNumber("not a number")
	assert.Error(t, err)

	_, err = ParsePhoneNumber("12")
	assert.Error(t, err)
}
