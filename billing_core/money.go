package billing_core

import (
	"math"
	"sort"
	"time"
)

// Percent returns the rounded share of an integer minor-unit total.
func Percent(total int64, pct float64) int64 {
	return int64(math.Round(float64(total) * pct / 100))
}

// SplitByPercent allocates total across percents with largest-remainder
// rounding so the parts always sum exactly to total. Ties on the
// fractional remainder are broken by slot order, keeping the allocation
// deterministic.
func SplitByPercent(total int64, percents []float64) []int64 {
	parts := make([]int64, len(percents))
	if len(percents) == 0 {
		return parts
	}

	type slot struct {
		idx int
		rem float64
	}

	var allocated int64
	slots := make([]slot, len(percents))
	for i, pct := range percents {
		exact := float64(total) * pct / 100
		floor := math.Floor(exact)
		parts[i] = int64(floor)
		allocated += parts[i]
		slots[i] = slot{idx: i, rem: exact - floor}
	}

	sort.SliceStable(slots, func(a, b int) bool {
		return slots[a].rem > slots[b].rem
	})

	// each floor loses less than one unit, so the shortfall is < len(slots)
	for i := int64(0); i < total-allocated; i++ {
		parts[slots[i].idx] += 1
	}

	return parts
}

// Midpoint returns the instant halfway between a and b.
func Midpoint(a, b time.Time) time.Time {
	return a.Add(b.Sub(a) / 2)
}

func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func YearStart(t time.Time) time.Time {
	return time.Date(t.Year(), 1, 1, 0, 0, 0, 0, t.Location())
}

// MonthRange returns the [start, end) bounds of the month containing t.
func MonthRange(t time.Time) (time.Time, time.Time) {
	start := MonthStart(t)
	return start, start.AddDate(0, 1, 0)
}

// TrailingMonths returns the first day of each of the n months ending at
// the month containing now, oldest first.
func TrailingMonths(now time.Time, n int) []time.Time {
	months := make([]time.Time, 0, n)
	current := MonthStart(now)
	for i := n - 1; i >= 0; i-- {
		months = append(months, current.AddDate(0, -i, 0))
	}
	return months
}

// RoundTo1 rounds to one decimal place.
func RoundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}
