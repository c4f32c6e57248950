package domain

import (
	"fmt"
	"regexp"
	"strconv"
)

const (
	// MaxAnnualCode is the highest annual code that can be issued in one year
	MaxAnnualCode = 999
	// PermanentCodeFloor is the counter value before the first permanent code (10001)
	PermanentCodeFloor = 10000
	// MaxPermanentCode is the highest permanent code that fits in 5 digits
	MaxPermanentCode = 99999
)

var (
	annualCodePattern    = regexp.MustCompile(`^\d{3}$`)
	permanentCodePattern = regexp.MustCompile(`^\d{5}$`)
)

// IsAnnualCodeFormat checks the 3-digit shape only. "000" passes.
func IsAnnualCodeFormat(code string) bool {
	return annualCodePattern.MatchString(code)
}

// IsValidAnnualCode checks the shape and the issuable range [1, 999].
// "000" is well-formed but never issued, so it is not valid.
func IsValidAnnualCode(code string) bool {
	if !IsAnnualCodeFormat(code) {
		return false
	}
	n, err := strconv.Atoi(code)
	if err != nil {
		return false
	}
	return n >= 1 && n <= MaxAnnualCode
}

// IsPermanentCodeFormat checks the 5-digit shape of a permanent code
func IsPermanentCodeFormat(code string) bool {
	return permanentCodePattern.MatchString(code)
}

// FormatAnnualCode zero-pads a sequence value to 3 digits
func FormatAnnualCode(n int) string {
	return fmt.Sprintf("%03d", n)
}

// FormatPermanentCode zero-pads a sequence value to 5 digits
func FormatPermanentCode(n int) string {
	return fmt.Sprintf("%05d", n)
}
