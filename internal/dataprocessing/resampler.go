package dataprocessing

import (
	"math"
	"sort"

	ierrors "omiecli/internal/errors"
	"omiecli/pkg/contracts/domain"
)

// quartersPerHour is the number of 15-minute delivery periods per hour.
const quartersPerHour = 4

// ResampleQuarterHourDay aggregates one quarter-hour day (96 periods) into
// an hourly day (24 periods). Periods partition into 24 contiguous blocks of
// 4 via hourIndex = (period-1)/4; the hourly price is the arithmetic mean of
// each block's four prices, rounded to 2 decimals half-away-from-zero.
//
// This is the single source of truth for quarter-hour to hourly conversion.
// Every rebuild path must go through it; a second grouping or rounding
// expression elsewhere is a correctness defect.
//
// A block with fewer or more than 4 rows is an AGGREGATION_ERROR: the day is
// rejected rather than averaged over a partial block, since silently
// degraded averages would corrupt the historical series.
func ResampleQuarterHourDay(day *domain.RawDay) (*domain.RawDay, error) {
	type block struct {
		sumMain float64
		sumAlt  float64
		count   int
	}

	blocks := make(map[int]*block, 24)
	var year, month, dayOfMonth int

	for i, r := range day.Records {
		if i == 0 {
			year, month, dayOfMonth = r.Year, r.Month, r.Day
		}
		hourIndex := (r.Period - 1) / quartersPerHour
		b := blocks[hourIndex]
		if b == nil {
			b = &block{}
			blocks[hourIndex] = b
		}
		b.sumMain += r.PriceMain
		b.sumAlt += r.PriceAlt
		b.count++
	}

	if len(blocks) != 24 {
		return nil, ierrors.Aggregation("day decomposes into %d hour blocks, expected 24", len(blocks))
	}

	hourly := &domain.RawDay{Records: make([]domain.RawObservation, 0, 24)}
	hours := make([]int, 0, len(blocks))
	for h := range blocks {
		hours = append(hours, h)
	}
	sort.Ints(hours)

	for _, h := range hours {
		b := blocks[h]
		if b.count != quartersPerHour {
			return nil, ierrors.Aggregation("hour block %d has %d quarter periods, expected %d", h+1, b.count, quartersPerHour)
		}
		hourly.Records = append(hourly.Records, domain.RawObservation{
			Year:      year,
			Month:     month,
			Day:       dayOfMonth,
			Period:    h + 1,
			PriceMain: round2(b.sumMain / quartersPerHour),
			PriceAlt:  round2(b.sumAlt / quartersPerHour),
		})
	}

	return hourly, nil
}

// round2 rounds to 2 decimal digits, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
