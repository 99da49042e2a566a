package utils

import (
	"math/rand"
	"regexp"
	"strings"
)

const searchIDCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var trailingNumericSuffix = regexp.MustCompile(`\s*\(\d+\)$`)

// RandomString generates a random uppercase alphanumeric string of the given
// length (defaults to 8 when length is not positive).
func RandomString(length int) string {
	if length <= 0 {
		length = 8
	}

	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		b.WriteByte(searchIDCharset[rand.Intn(len(searchIDCharset))])
	}
	return b.String()
}

// StripTrainSuffix removes the trailing parenthesized run number from a train
// brand label, e.g. "Argo Bromo (3)" -> "Argo Bromo".
func StripTrainSuffix(label string) string {
	return trailingNumericSuffix.ReplaceAllString(label, "")
}
