package utils

import "testing"

func TestValidPassportSeries(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"AB1234567", true},
		{"CD0000000", true},
		{"ab1234567", false}, // lowercase series
		{"A1234567", false},  // single-letter series
		{"AB123456", false},  // six digits
		{"AB12345678", false},
		{"AB123456X", false},
		{" AB1234567", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := ValidPassportSeries(tc.in); got != tc.want {
			t.Errorf("ValidPassportSeries(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestValidPhoneNumber(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"+99890 123-45-67", true},
		{"+99871 000-00-00", true},
		{"99890 123-45-67", false},   // missing plus
		{"+99790 123-45-67", false},  // wrong country code
		{"+99890 1234567", false},    // missing dashes
		{"+99890123-45-67", false},   // missing space
		{"+99890 123-45-678", false}, // trailing digit
		{"", false},
	}
	for _, tc := range cases {
		if got := ValidPhoneNumber(tc.in); got != tc.want {
			t.Errorf("ValidPhoneNumber(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
