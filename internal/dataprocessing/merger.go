package dataprocessing

import (
	"omiecli/pkg/contracts/domain"
)

// Merge reconciles newly derived points into an existing dataset. The result
// holds exactly one record per (timestamp, zone): when a key appears in both
// sets the new value wins, which lets a re-run with corrected raw files
// repair previously ingested data; duplicate keys inside the new set resolve
// last-one-wins in processing order. The merged series is sorted by
// (timestamp, zone) ascending, so re-running the merge with the inputs that
// produced a dataset yields that dataset unchanged, row for row.
func Merge(existing, incoming domain.PriceSeries) domain.PriceSeries {
	index := make(map[domain.PointKey]int, len(existing)+len(incoming))
	merged := make(domain.PriceSeries, 0, len(existing)+len(incoming))

	upsert := func(p domain.PricePoint) {
		key := p.Key()
		if i, ok := index[key]; ok {
			merged[i] = p
			return
		}
		index[key] = len(merged)
		merged = append(merged, p)
	}

	for _, p := range existing {
		upsert(p)
	}
	for _, p := range incoming {
		upsert(p)
	}

	merged.Sort()
	return merged
}
