// Package utils holds small helpers shared by the HTTP handlers.
package utils

import "regexp"

// passportPattern matches "XX1234567": two uppercase letters for the
// passport series followed by seven digits.
var passportPattern = regexp.MustCompile(`^[A-Z]{2}\d{7}$`)

// phonePattern matches "+998xx xxx-xx-xx" where every x is a digit.
var phonePattern = regexp.MustCompile(`^\+998\d{2} \d{3}-\d{2}-\d{2}$`)

// ValidPassportSeries reports whether s is a well-formed passport
// series and number.
func ValidPassportSeries(s string) bool { return passportPattern.MatchString(s) }

// ValidPhoneNumber reports whether s is a well-formed phone number.
func ValidPhoneNumber(s string) bool { return phonePattern.MatchString(s) }
