package domain

// RawObservation is one row of a raw daily OMIE file: a single delivery
// period with its Spanish and Portuguese marginal prices. All observations
// in one file share the same calendar date.
type RawObservation struct {
	Year      int     `json:"year"`
	Month     int     `json:"month"`
	Day       int     `json:"day"`
	Period    int     `json:"period"`
	PriceMain float64 `json:"price_main"`
	PriceAlt  float64 `json:"price_alt"`
}

// RawDay holds the parsed content of one raw daily file. It is ephemeral:
// built per file and consumed immediately into PricePoints.
type RawDay struct {
	Records []RawObservation `json:"records"`
}

// MaxPeriod returns the highest period index present, or 0 for an empty day.
func (d *RawDay) MaxPeriod() int {
	max := 0
	for _, r := range d.Records {
		if r.Period > max {
			max = r.Period
		}
	}
	return max
}

// Granularity classifies the day by its observed period count: more than 24
// periods means quarter-hour resolution. The decision is a property of the
// data, not of the file's date, so an already-hourly file is never resampled
// regardless of where it falls relative to the reporting cutover.
func (d *RawDay) Granularity() Granularity {
	if d.MaxPeriod() > 24 {
		return GranularityQuarterHour
	}
	return GranularityHourly
}
