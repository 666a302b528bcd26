package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatPlayDuration(t *testing.T) {
	assert.Equal(t, "0m", FormatPlayDuration(0))
	assert.Equal(t, "45m", FormatPlayDuration(45))
	assert.Equal(t, "2h", FormatPlayDuration(120))
	assert.Equal(t, "2h15m", FormatPlayDuration(135))
}

func TestDayBounds(t *testing.T) {
	at := time.Date(2025, 7, 9, 14, 30, 12, 500, time.UTC)

	start := StartOfDay(at)
	assert.Equal(t, time.Date(2025, 7, 9, 0, 0, 0, 0, time.UTC), start)

	end := EndOfDay(at)
	assert.Equal(t, 9, end.Day())
	assert.Equal(t, 23, end.Hour())
	assert.Equal(t, 59, end.Minute())
	assert.True(t, end.After(at))
}
