package domain

import (
	"sort"
	"time"
)

// Zone identifies the market area a price applies to. The OMIE day-ahead
// auction covers two coupled zones; raw files encode the zone in their
// revision suffix (.1 Spain, .2 Portugal) through a configured mapping.
type Zone string

const (
	ZoneSpain    Zone = "Spain"
	ZonePortugal Zone = "Portugal"
)

// Granularity is the native resolution of a raw daily file.
type Granularity string

const (
	GranularityHourly      Granularity = "hourly"
	GranularityQuarterHour Granularity = "quarter_hour"
)

// PeriodsPerDay returns the expected period count for a complete day at
// this granularity, ignoring DST-short or DST-long days.
func (g Granularity) PeriodsPerDay() int {
	if g == GranularityQuarterHour {
		return 96
	}
	return 24
}

// PricePoint is one delivery interval of the day-ahead auction, at either
// hourly or quarter-hour resolution. Timestamp is the start of the delivery
// interval; Period is the 1-based index within the calendar day at the
// point's native resolution. Year/Month/Day mirror the persisted column
// layout and always agree with Timestamp.
type PricePoint struct {
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	Day       int       `json:"day"`
	Period    int       `json:"period"`
	PriceMain float64   `json:"price_main"`
	PriceAlt  float64   `json:"price_alt"`
	Timestamp time.Time `json:"timestamp"`
	Zone      Zone      `json:"zone"`
}

// Key returns the uniqueness key of a point. No dataset may hold two points
// with the same key.
func (p PricePoint) Key() PointKey {
	return PointKey{Timestamp: p.Timestamp.UTC(), Zone: p.Zone}
}

// DayKey returns the (calendar date, zone) identity of the file the point
// came from, used for incremental-skip decisions.
func (p PricePoint) DayKey() DayKey {
	return DayKey{Year: p.Year, Month: p.Month, Day: p.Day, Zone: p.Zone}
}

// PointKey is the (timestamp, zone) uniqueness key of a PricePoint.
type PointKey struct {
	Timestamp time.Time
	Zone      Zone
}

// DayKey identifies one calendar day in one zone.
type DayKey struct {
	Year  int
	Month int
	Day   int
	Zone  Zone
}

// Date returns the key's calendar date at midnight UTC.
func (k DayKey) Date() time.Time {
	return time.Date(k.Year, time.Month(k.Month), k.Day, 0, 0, 0, 0, time.UTC)
}

// PriceSeries is an ordered collection of PricePoints sorted by
// (timestamp, zone) ascending. A series never mixes resolutions: the hourly
// dataset holds 60-minute intervals, the quarter-hour dataset 15-minute
// intervals.
type PriceSeries []PricePoint

// Sort orders the series by (timestamp, zone) ascending in place.
func (s PriceSeries) Sort() {
	sort.SliceStable(s, func(i, j int) bool {
		a, b := s[i], s[j]
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.Before(b.Timestamp)
		}
		return a.Zone < b.Zone
	})
}

// DayKeys returns the set of (date, zone) pairs present in the series.
func (s PriceSeries) DayKeys() map[DayKey]bool {
	keys := make(map[DayKey]bool, len(s)/24+1)
	for _, p := range s {
		keys[p.DayKey()] = true
	}
	return keys
}
