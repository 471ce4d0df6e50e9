package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentumlab/momentum-engine/internal/core/domain"
)

func TestNewTrackerState(t *testing.T) {
	state := domain.NewTrackerState()

	assert.Equal(t, domain.PeriodDaily, state.CurrentPeriod)
	assert.Empty(t, state.DailyData)
	assert.Zero(t, state.Streak)

	for _, p := range domain.Periods() {
		assert.NotEmpty(t, state.ActivitiesByPeriod[p], "period %s should be seeded", p)
	}
}

func TestTrackerState_Normalize(t *testing.T) {
	t.Run("Repairs nil maps and invalid period", func(t *testing.T) {
		state := &domain.TrackerState{CurrentPeriod: "fortnightly"}
		state.Normalize()

		assert.Equal(t, domain.PeriodDaily, state.CurrentPeriod)
		assert.NotNil(t, state.DailyData)
		assert.NotNil(t, state.DisplayOrder)
		assert.NotEmpty(t, state.ActivitiesByPeriod[domain.PeriodWeekly])
	})

	t.Run("Repairs day logs with nil record maps", func(t *testing.T) {
		state := domain.NewTrackerState()
		state.DailyData["2026-01-01"] = &domain.DayLog{}

		state.Normalize()

		assert.NotNil(t, state.DailyData["2026-01-01"].Records)
	})

	t.Run("Keeps existing data intact", func(t *testing.T) {
		state := domain.NewTrackerState()
		state.CurrentPeriod = domain.PeriodMonthly
		state.Streak = 12

		state.Normalize()

		assert.Equal(t, domain.PeriodMonthly, state.CurrentPeriod)
		assert.Equal(t, 12, state.Streak)
	})
}

func TestTrackerState_SortedDatesDesc(t *testing.T) {
	state := domain.NewTrackerState()
	for _, d := range []string{"2026-01-05", "2025-12-31", "2026-01-10", "2026-01-01"} {
		state.DailyData[d] = domain.NewDayLog()
	}

	dates := state.SortedDatesDesc()

	assert.Equal(t, []string{"2026-01-10", "2026-01-05", "2026-01-01", "2025-12-31"}, dates)
}

func TestTrackerState_OrderedKeys(t *testing.T) {
	state := domain.NewTrackerState()

	t.Run("No stored order falls back to alphabetical", func(t *testing.T) {
		keys := state.OrderedKeys(domain.PeriodDaily)
		assert.Equal(t, []string{"exercise", "meditation", "reading", "work"}, keys)
	})

	t.Run("Stored permutation wins, missing keys appended", func(t *testing.T) {
		state.DisplayOrder[domain.PeriodDaily] = []string{"work", "reading"}

		keys := state.OrderedKeys(domain.PeriodDaily)
		assert.Equal(t, []string{"work", "reading", "exercise", "meditation"}, keys)
	})

	t.Run("Stale entries in the permutation are skipped", func(t *testing.T) {
		state.DisplayOrder[domain.PeriodDaily] = []string{"deleted_key", "meditation", "meditation"}

		keys := state.OrderedKeys(domain.PeriodDaily)
		require.Len(t, keys, 4)
		assert.Equal(t, "meditation", keys[0])
		assert.NotContains(t, keys, "deleted_key")
	})
}
