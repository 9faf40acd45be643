package extractor

import (
	"errors"
	"puzzlestats/internal/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"90", 90},
		{"1:05", 65},
		{" 0:59 ", 59},
		{"12:00", 720},
		{"0", 0},
	}
	for _, tt := range tests {
		got, err := ParseDuration(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseDuration_Invalid(t *testing.T) {
	for _, in := range []string{"", "1:5", "1:60", "abc", "-5", "1.5", "123456", "1:05:00"} {
		_, err := ParseDuration(in)
		require.Error(t, err, in)
		var verr *models.ValidationError
		assert.True(t, errors.As(err, &verr), in)
		assert.Equal(t, "time", verr.Field)
	}
}

func TestParseDate(t *testing.T) {
	now := time.Date(2025, 7, 16, 15, 30, 0, 0, time.UTC)

	got, err := ParseDate("", now)
	require.NoError(t, err)
	assert.Equal(t, "2025-07-16", got)

	got, err = ParseDate("2025-07-01", now)
	require.NoError(t, err)
	assert.Equal(t, "2025-07-01", got)

	got, err = ParseDate("yesterday", now)
	require.NoError(t, err)
	assert.Equal(t, "2025-07-15", got)

	got, err = ParseDate("Today", now)
	require.NoError(t, err)
	assert.Equal(t, "2025-07-16", got)
}

func TestParseDate_Rejects(t *testing.T) {
	now := time.Date(2025, 7, 16, 15, 30, 0, 0, time.UTC)

	_, err := ParseDate("2025-07-17", now)
	assert.Error(t, err)

	_, err = ParseDate("tomorrow", now)
	assert.Error(t, err)

	_, err = ParseDate("banana", now)
	var verr *models.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "date", verr.Field)
}
