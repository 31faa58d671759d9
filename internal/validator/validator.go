// Package validator holds the stateless field predicates used by the
// checkout form and the payment endpoint. Every function returns a plain
// bool; callers map failures to field-keyed messages.
package validator

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	emailRx  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRx  = regexp.MustCompile(`^\+?[\d\s-]{10,}$`)
	nameRx   = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	cardRx   = regexp.MustCompile(`^\d{16}$`)
	expiryRx = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cvvRx    = regexp.MustCompile(`^\d{3,4}$`)
)

// Required reports whether s is non-empty after trimming whitespace.
func Required(s string) bool {
	return strings.TrimSpace(s) != ""
}

// MinLength reports whether s has at least n characters after trimming.
func MinLength(s string, n int) bool {
	return len(strings.TrimSpace(s)) >= n
}

// MaxLength reports whether s has at most n characters after trimming.
func MaxLength(s string, n int) bool {
	return len(strings.TrimSpace(s)) <= n
}

// Email matches a conventional local@domain.tld shape.
func Email(s string) bool {
	return emailRx.MatchString(strings.TrimSpace(s))
}

// Phone accepts an optional leading +, digits, spaces and hyphens, with a
// minimum of 10 characters.
func Phone(s string) bool {
	return phoneRx.MatchString(strings.TrimSpace(s))
}

// Name accepts letters and spaces only.
func Name(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && nameRx.MatchString(s)
}

// CardNumber requires exactly 16 digits after stripping whitespace.
func CardNumber(s string) bool {
	return cardRx.MatchString(StripWhitespace(s))
}

// StripWhitespace removes every whitespace rune from s.
func StripWhitespace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// CVV requires 3 or 4 digits.
func CVV(s string) bool {
	return cvvRx.MatchString(s)
}

// Expiry requires MM/YY with MM in 01-12 and rejects dates strictly before
// the month of now.
func Expiry(s string, now time.Time) bool {
	if !expiryRx.MatchString(s) {
		return false
	}
	month, _ := strconv.Atoi(s[:2])
	year, _ := strconv.Atoi(s[3:])
	year += 2000

	curYear, curMonth := now.Year(), int(now.Month())
	if year < curYear {
		return false
	}
	if year == curYear && month < curMonth {
		return false
	}
	return true
}
