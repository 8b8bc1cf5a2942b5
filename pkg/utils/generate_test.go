package utils

import (
	"regexp"
	"testing"
)

var bookingNumberPattern = regexp.MustCompile(`^LEASE-\d{8}-\d{6}-\d{4}$`)

func TestGenerateBookingNumber(t *testing.T) {
	number := GenerateBookingNumber()
	if !bookingNumberPattern.MatchString(number) {
		t.Fatalf("unexpected booking number format: %q", number)
	}
}

func TestParseInt(t *testing.T) {
	cases := []struct {
		value        string
		defaultValue int
		want         int
	}{
		{"5", 1, 5},
		{"", 7, 7},
		{"abc", 3, 3},
		{"0", 2, 2},
		{"-4", 2, 2},
	}
	for _, c := range cases {
		if got := ParseInt(c.value, c.defaultValue); got != c.want {
			t.Fatalf("ParseInt(%q, %d): expected %d, got %d", c.value, c.defaultValue, c.want, got)
		}
	}
}
