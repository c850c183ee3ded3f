package utils

import (
	"strings"
	"time"
	"unicode/utf8"

	"coffee-chronicles/domain"
)

// Field-level checks run by the domain services before any write. Pure and
// deterministic; a failure is always a *domain.ValidationError naming the field.

// RequireFields fails on the first missing or blank field, in the order given.
func RequireFields(data map[string]string, fields ...string) error {
	for _, field := range fields {
		if strings.TrimSpace(data[field]) == "" {
			return domain.NewValidationError(field, "%s is required", field)
		}
	}
	return nil
}

// CheckStringLength counts characters, not bytes, so multibyte names are not
// penalized near the limit.
func CheckStringLength(value, field string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if length < min || length > max {
		return domain.NewValidationError(field, "%s must be between %d and %d characters", field, min, max)
	}
	return nil
}

func CheckRating(rating int, field string) error {
	if rating < 1 || rating > 5 {
		return domain.NewValidationError(field, "%s must be an integer between 1 and 5", field)
	}
	return nil
}

// ParseDate accepts RFC3339 timestamps or bare calendar dates. It never clamps
// or guesses; anything else fails.
func ParseDate(value, field string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, domain.NewValidationError(field, "%s is required", field)
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Time{}, domain.NewValidationError(field, "%s must be a valid date", field)
}
