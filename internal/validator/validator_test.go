package validator

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEmail(t *testing.T) {
	valid := []string{"user@example.com", "first.last@shop.lk", "a@b.co"}
	for _, s := range valid {
		assert.True(t, Email(s), s)
	}
	invalid := []string{"", "plain", "user@", "@example.com", "user@example", "a b@c.com"}
	for _, s := range invalid {
		assert.False(t, Email(s), s)
	}
}

func TestPhone(t *testing.T) {
	valid := []string{"0771234567", "+94 77 123 4567", "077-123-4567"}
	for _, s := range valid {
		assert.True(t, Phone(s), s)
	}
	invalid := []string{"", "12345", "077abc4567", "077123456"}
	for _, s := range invalid {
		assert.False(t, Phone(s), s)
	}
}

func TestName(t *testing.T) {
	assert.True(t, Name("Sadini Wanniarachchi"))
	assert.True(t, Name("Ann"))
	assert.False(t, Name(""))
	assert.False(t, Name("   "))
	assert.False(t, Name("R2D2"))
	assert.False(t, Name("O'Brien"))
}

func TestRequiredAndLength(t *testing.T) {
	assert.True(t, Required("x"))
	assert.False(t, Required("   "))
	assert.True(t, MinLength("12 Main Street, Colombo", 10))
	assert.False(t, MinLength("short", 10))
	assert.True(t, MaxLength("abc", 5))
	assert.False(t, MaxLength("abcdef", 5))
}

func TestCardNumber(t *testing.T) {
	valid := []string{"4111111111111111", "4111 1111 1111 1111", "4111\t1111\n1111 1111", "4111\u00a01111\u00a01111\u00a01111"}
	for _, s := range valid {
		assert.True(t, CardNumber(s), s)
	}
	invalid := []string{"", "411111111111111", "41111111111111112", "4111-1111-1111-1111", "411111111111111a"}
	for _, s := range invalid {
		assert.False(t, CardNumber(s), s)
	}
}

func TestStripWhitespace(t *testing.T) {
	assert.Equal(t, "4111111111111111", StripWhitespace("4111 1111\t1111\n1111"))
	assert.Equal(t, "abc", StripWhitespace(" a b c "))
	assert.Equal(t, "", StripWhitespace("  \t "))
}

func TestCVV(t *testing.T) {
	assert.True(t, CVV("123"))
	assert.True(t, CVV("1234"))
	assert.False(t, CVV("12"))
	assert.False(t, CVV("12345"))
	assert.False(t, CVV("12a"))
}

func TestExpiry(t *testing.T) {
	now := time.Date(2025, time.April, 15, 0, 0, 0, 0, time.UTC)

	assert.True(t, Expiry("04/25", now), "current month is still valid")
	assert.True(t, Expiry("12/25", now))
	assert.True(t, Expiry("01/26", now))

	assert.False(t, Expiry("03/25", now), "previous month is expired")
	assert.False(t, Expiry("12/24", now), "previous year is expired")
	assert.False(t, Expiry("13/25", now), "month out of range")
	assert.False(t, Expiry("00/25", now))
	assert.False(t, Expiry("4/25", now), "single-digit month")
	assert.False(t, Expiry("04-25", now))
	assert.False(t, Expiry("", now))
}

func TestExpiryYearBoundary(t *testing.T) {
	now := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	assert.True(t, Expiry("01/25", now))
	assert.False(t, Expiry("12/24", now))
}

func TestCardNumberAllDigitLengths(t *testing.T) {
	for n := 12; n <= 20; n++ {
		s := ""
		for i := 0; i < n; i++ {
			s += "9"
		}
		assert.Equal(t, n == 16, CardNumber(s), fmt.Sprintf("length %d", n))
	}
}
