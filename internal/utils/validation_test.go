package utils

import (
	"errors"
	"strings"
	"testing"
	"time"

	"coffee-chronicles/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireFields(t *testing.T) {
	data := map[string]string{"name": "Blue Bottle", "address": "  "}

	assert.NoError(t, RequireFields(data, "name"))

	err := RequireFields(data, "name", "address")
	require.Error(t, err)
	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "address", vErr.Field)
}

func TestCheckStringLength(t *testing.T) {
	assert.NoError(t, CheckStringLength("Blue Bottle", "name", 1, 200))
	assert.NoError(t, CheckStringLength("a", "name", 1, 200))
	assert.NoError(t, CheckStringLength(strings.Repeat("a", 200), "name", 1, 200))

	assert.Error(t, CheckStringLength("", "name", 1, 200))
	assert.Error(t, CheckStringLength(strings.Repeat("a", 201), "name", 1, 200))
}

func TestCheckStringLengthCountsCharactersNotBytes(t *testing.T) {
	// 200 two-byte characters is 400 bytes but still within the limit
	assert.NoError(t, CheckStringLength(strings.Repeat("é", 200), "name", 1, 200))
	assert.NoError(t, CheckStringLength("Café Söl 珈琲店", "name", 1, 200))

	assert.Error(t, CheckStringLength(strings.Repeat("é", 201), "name", 1, 200))
}

func TestCheckRating(t *testing.T) {
	for rating := 1; rating <= 5; rating++ {
		assert.NoError(t, CheckRating(rating, "ratings.coffee"))
	}

	for _, rating := range []int{0, 6, -1, 100} {
		err := CheckRating(rating, "ratings.coffee")
		require.Error(t, err)
		var vErr *domain.ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "ratings.coffee", vErr.Field)
	}
}

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2026-03-14T09:30:00Z", "visitDate")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC), parsed)

	parsed, err = ParseDate("2026-03-14", "visitDate")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), parsed)

	for _, invalid := range []string{"", "   ", "14/03/2026", "not-a-date", "2026-13-40"} {
		_, err := ParseDate(invalid, "visitDate")
		assert.Error(t, err, "input %q", invalid)
	}
}
