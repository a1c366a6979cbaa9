// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package viewmodel

import (
	"math"
	"time"

	"github.com/pdiddy/cite-catalog/pkg/types"
)

// Stats summarizes the displayed set.
type Stats struct {
	Total int
	// ThisMonth counts citations created on or after the first instant of
	// now's calendar month, in now's location.
	ThisMonth      int
	UniqueJournals int
	// AvgYear is the rounded mean of positive years, or 0 if there are none.
	AvgYear int
}

// ComputeStats derives Stats from cs. Citations whose created_at does not
// parse are not counted as recent.
func ComputeStats(cs []types.Citation, now time.Time) Stats {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	stats := Stats{Total: len(cs)}
	journals := make(map[string]struct{})
	var yearSum, yearCount int

	for _, c := range cs {
		if created, err := time.Parse(time.RFC3339, c.CreatedAt); err == nil && !created.Before(monthStart) {
			stats.ThisMonth++
		}
		if c.Journal != "" {
			journals[c.Journal] = struct{}{}
		}
		if c.Year > 0 {
			yearSum += c.Year
			yearCount++
		}
	}

	stats.UniqueJournals = len(journals)
	if yearCount > 0 {
		stats.AvgYear = int(math.Floor(float64(yearSum)/float64(yearCount) + 0.5))
	}
	return stats
}
