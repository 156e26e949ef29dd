package billing_core_test

import (
	"testing"
	"time"

	"github.com/mounasaba/billing_service/billing_core"
	"github.com/stretchr/testify/assert"
)

func TestSplitByPercent(t *testing.T) {
	templates := map[string][]float64{
		"30_50_20":    {30, 50, 20},
		"50_50":       {50, 50},
		"100_upfront": {100},
	}

	t.Run("even total", func(t *testing.T) {
		parts := billing_core.SplitByPercent(100000, templates["30_50_20"])
		assert.Equal(t, []int64{30000, 50000, 20000}, parts)
	})

	t.Run("sum invariant on drifting totals", func(t *testing.T) {
		totals := []int64{100001, 99999, 1, 33333, 7}

		for name, percents := range templates {
			for _, total := range totals {
				parts := billing_core.SplitByPercent(total, percents)

				var sum int64
				for _, p := range parts {
					sum += p
				}
				assert.Equal(t, total, sum, "template %s total %d", name, total)
			}
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		first := billing_core.SplitByPercent(100001, templates["30_50_20"])
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, billing_core.SplitByPercent(100001, templates["30_50_20"]))
		}
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, billing_core.SplitByPercent(1000, nil))
	})
}

func TestPercent(t *testing.T) {
	assert.Equal(t, int64(3900), billing_core.Percent(19500, 20))
	assert.Equal(t, int64(0), billing_core.Percent(19500, 0))
	assert.Equal(t, int64(1), billing_core.Percent(3, 20)) // 0.6 rounds up
}

func TestMidpoint(t *testing.T) {
	a := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC), billing_core.Midpoint(a, b))
}

func TestTrailingMonths(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	months := billing_core.TrailingMonths(now, 3)
	assert.Len(t, months, 3)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), months[0])
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), months[1])
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), months[2])

	t.Run("crosses year boundary", func(t *testing.T) {
		months := billing_core.TrailingMonths(time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), 2)
		assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), months[0])
		assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), months[1])
	})
}

func TestMonthRange(t *testing.T) {
	start, end := billing_core.MonthRange(time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), end)
}
