package utils

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// SanitizeString removes dangerous characters from string
func SanitizeString(input string) string {
	// Remove null bytes and control characters
	input = strings.ReplaceAll(input, "\x00", "")

	// Trim whitespace
	input = strings.TrimSpace(input)

	return input
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today is the current calendar day at midnight UTC
func Today() time.Time {
	return DateOnly(time.Now())
}

// ParseDate accepts the date spellings users type in: 2024-05-18, 18/05/2024, 18/05/24, RFC3339.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	layouts := []string{time.DateOnly, "02/01/2006", "02/01/06", time.RFC3339, time.DateTime}
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return DateOnly(t), nil
		}
	}
	if u, err := url.QueryUnescape(s); err == nil && u != s {
		return ParseDate(u)
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %s", s)
}

// ParseAmount parses a monetary amount typed as text. Non-numeric input is a validation error on field.
func ParseAmount(field, s string) (float64, error) {
	s = strings.ReplaceAll(SanitizeString(s), ",", "")
	if s == "" {
		return 0, FieldRequired(field)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, NewValidationError(FieldError{Field: field, Error: field + " must be a number"})
	}
	return v, nil
}

// ParseBool understands the stored "1"/"0" setting spelling as well as strconv's.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", s)
}

// FormatBool is the stored spelling of a boolean setting
func FormatBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
