package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeEntry_Duration(t *testing.T) {
	start := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	now := start.Add(2 * time.Hour)

	t.Run("running entry accrues against the clock", func(t *testing.T) {
		te := TimeEntry{StartTime: start, IsRunning: true}
		assert.Equal(t, 2*time.Hour, te.Duration(now))
		assert.Equal(t, 3*time.Hour, te.Duration(now.Add(time.Hour)))
	})

	t.Run("stopped entry is fixed", func(t *testing.T) {
		end := start.Add(90 * time.Minute)
		te := TimeEntry{StartTime: start, EndTime: &end}
		assert.Equal(t, 90*time.Minute, te.Duration(now))
		assert.Equal(t, 90*time.Minute, te.Duration(now.Add(24*time.Hour)))
	})

	t.Run("never started and not running is zero", func(t *testing.T) {
		te := TimeEntry{StartTime: start}
		assert.Equal(t, time.Duration(0), te.Duration(now))
	})
}

func TestTimeEntry_Billing(t *testing.T) {
	start := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	te := TimeEntry{StartTime: start, EndTime: &end, HourlyRate: dec("75")}

	now := time.Now()
	assert.True(t, te.Hours(now).Equal(dec("2")))
	assert.True(t, te.Total(now).Equal(dec("150")))
}

func TestFrequency_DayInterval(t *testing.T) {
	tests := []struct {
		freq Frequency
		want int
	}{
		{FrequencyWeekly, 7},
		{FrequencyBiweekly, 14},
		{FrequencyMonthly, 30},
		{FrequencyQuarterly, 90},
		{FrequencySemiannually, 180},
		{FrequencyAnnually, 365},
		{Frequency("fortnightly"), 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.freq.DayInterval(), "frequency %s", tt.freq)
	}
}

func TestParseFrequency(t *testing.T) {
	f, ok := ParseFrequency("monthly")
	assert.True(t, ok)
	assert.Equal(t, FrequencyMonthly, f)

	_, ok = ParseFrequency("daily")
	assert.False(t, ok)
}
