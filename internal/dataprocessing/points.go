package dataprocessing

import (
	"time"

	"omiecli/pkg/contracts/domain"
)

// BuildHourlyPoints converts an hourly day to PricePoints. The timestamp of
// period p is the delivery date plus (p-1) hours.
func BuildHourlyPoints(day *domain.RawDay, zone domain.Zone) domain.PriceSeries {
	return buildPoints(day, zone, time.Hour)
}

// BuildQuarterHourPoints converts a quarter-hour day to PricePoints. The
// timestamp of period p is the delivery date plus (p-1)*15 minutes.
func BuildQuarterHourPoints(day *domain.RawDay, zone domain.Zone) domain.PriceSeries {
	return buildPoints(day, zone, 15*time.Minute)
}

func buildPoints(day *domain.RawDay, zone domain.Zone, interval time.Duration) domain.PriceSeries {
	points := make(domain.PriceSeries, 0, len(day.Records))
	for _, r := range day.Records {
		date := time.Date(r.Year, time.Month(r.Month), r.Day, 0, 0, 0, 0, time.UTC)
		points = append(points, domain.PricePoint{
			Year:      r.Year,
			Month:     r.Month,
			Day:       r.Day,
			Period:    r.Period,
			PriceMain: r.PriceMain,
			PriceAlt:  r.PriceAlt,
			Timestamp: date.Add(time.Duration(r.Period-1) * interval),
			Zone:      zone,
		})
	}
	points.Sort()
	return points
}
