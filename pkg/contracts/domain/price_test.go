package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGranularityPeriodsPerDay(t *testing.T) {
	assert.Equal(t, 24, GranularityHourly.PeriodsPerDay())
	assert.Equal(t, 96, GranularityQuarterHour.PeriodsPerDay())
}

func TestRawDayGranularity(t *testing.T) {
	tests := []struct {
		name      string
		maxPeriod int
		want      Granularity
	}{
		{name: "full hourly day", maxPeriod: 24, want: GranularityHourly},
		{name: "dst short day", maxPeriod: 23, want: GranularityHourly},
		{name: "one past hourly", maxPeriod: 25, want: GranularityQuarterHour},
		{name: "full quarter hour day", maxPeriod: 96, want: GranularityQuarterHour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day := &RawDay{}
			for p := 1; p <= tt.maxPeriod; p++ {
				day.Records = append(day.Records, RawObservation{Period: p})
			}
			assert.Equal(t, tt.maxPeriod, day.MaxPeriod())
			assert.Equal(t, tt.want, day.Granularity())
		})
	}
}

func TestRawDayEmpty(t *testing.T) {
	day := &RawDay{}
	assert.Equal(t, 0, day.MaxPeriod())
	assert.Equal(t, GranularityHourly, day.Granularity())
}

func TestPricePointKeys(t *testing.T) {
	ts := time.Date(2025, 10, 1, 13, 0, 0, 0, time.UTC)
	p := PricePoint{
		Year: 2025, Month: 10, Day: 1, Period: 14,
		Timestamp: ts, Zone: ZoneSpain,
	}

	assert.Equal(t, PointKey{Timestamp: ts, Zone: ZoneSpain}, p.Key())
	assert.Equal(t, DayKey{Year: 2025, Month: 10, Day: 1, Zone: ZoneSpain}, p.DayKey())
	assert.Equal(t, time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), p.DayKey().Date())
}

func TestPriceSeriesSort(t *testing.T) {
	t1 := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	s := PriceSeries{
		{Timestamp: t2, Zone: ZoneSpain},
		{Timestamp: t1, Zone: ZoneSpain},
		{Timestamp: t1, Zone: ZonePortugal},
	}
	s.Sort()

	assert.Equal(t, ZonePortugal, s[0].Zone)
	assert.Equal(t, t1, s[0].Timestamp)
	assert.Equal(t, ZoneSpain, s[1].Zone)
	assert.Equal(t, t2, s[2].Timestamp)
}

func TestPriceSeriesDayKeys(t *testing.T) {
	s := PriceSeries{
		{Year: 2025, Month: 9, Day: 30, Zone: ZoneSpain},
		{Year: 2025, Month: 9, Day: 30, Zone: ZoneSpain},
		{Year: 2025, Month: 9, Day: 30, Zone: ZonePortugal},
		{Year: 2025, Month: 10, Day: 1, Zone: ZoneSpain},
	}

	keys := s.DayKeys()
	assert.Len(t, keys, 3)
	assert.True(t, keys[DayKey{Year: 2025, Month: 9, Day: 30, Zone: ZoneSpain}])
	assert.False(t, keys[DayKey{Year: 2025, Month: 10, Day: 1, Zone: ZonePortugal}])
}
