package services

import (
	"context"

	"github.com/momentumlab/momentum-engine/internal/core/domain"
)

// StatsService recomputes aggregate and per-activity statistics from the
// full log history. It never trusts the incremental streak cache held in
// the tracker state.
type StatsService struct {
	stateRepo domain.StateRepository
}

func NewStatsService(stateRepo domain.StateRepository) *StatsService {
	return &StatsService{stateRepo: stateRepo}
}

func (s *StatsService) GetAggregateStats(ctx context.Context, userID string) (*domain.AggregateStats, error) {
	state, err := s.stateRepo.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := ComputeAggregateStats(state.SortedDatesDesc(), state.DailyData, state.Activities())
	return &stats, nil
}

func (s *StatsService) GetActivityStats(ctx context.Context, userID string) ([]*domain.ActivityStats, error) {
	state, err := s.stateRepo.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	dates := state.SortedDatesDesc()
	catalog := state.Activities()

	out := make([]*domain.ActivityStats, 0, len(catalog))
	for _, key := range state.OrderedKeys(state.CurrentPeriod) {
		stats := ComputeActivityStats(dates, state.DailyData, catalog[key])
		out = append(out, &stats)
	}

	return out, nil
}

// ComputeAggregateStats scans the date-descending history once. Day
// completion uses the snapshotted predicate (log target > 0 and actual at
// or above it), so later goal edits never rewrite history.
func ComputeAggregateStats(datesDesc []string, daily map[string]*domain.DayLog, activities map[string]*domain.Activity) domain.AggregateStats {
	stats := domain.AggregateStats{TotalDays: len(datesDesc)}
	if len(datesDesc) == 0 {
		return stats
	}

	goalCount := len(activities)

	var totalCompletion float64
	tempStreak := 0
	leadingRun := true

	for _, date := range datesDesc {
		day := daily[date]

		completedGoals := 0
		for key := range activities {
			if day.Record(key).Completed() {
				completedGoals++
			}
		}

		var dayCompletion float64
		if goalCount > 0 {
			dayCompletion = float64(completedGoals) / float64(goalCount) * 100
		}
		totalCompletion += dayCompletion

		if goalCount > 0 && completedGoals == goalCount {
			stats.PerfectDays++
			tempStreak++
			if leadingRun {
				stats.CurrentStreak = tempStreak
			}
		} else {
			leadingRun = false
			if tempStreak > stats.LongestStreak {
				stats.LongestStreak = tempStreak
			}
			tempStreak = 0
		}
	}
	// Trailing flush: a run ending at the oldest date still counts.
	if tempStreak > stats.LongestStreak {
		stats.LongestStreak = tempStreak
	}

	stats.AvgCompletion = totalCompletion / float64(len(datesDesc))

	last7 := headDates(datesDesc, 7)
	last30 := headDates(datesDesc, 30)
	stats.Last7DaysAvg = periodAverage(last7, daily, activities)
	stats.Last30DaysAvg = periodAverage(last30, daily, activities)
	stats.WeeklyTrend = weeklyTrend(last7, daily, activities)

	return stats
}

// ComputeActivityStats applies the same reconstruction for a single
// activity, using its own snapshot records.
func ComputeActivityStats(datesDesc []string, daily map[string]*domain.DayLog, activity *domain.Activity) domain.ActivityStats {
	stats := domain.ActivityStats{}
	if activity == nil {
		return stats
	}

	stats.Key = activity.Key
	stats.Name = activity.Name
	stats.Icon = activity.Icon
	stats.Color = activity.Color
	stats.Unit = activity.UnitShort

	tempStreak := 0
	leadingRun := true

	for _, date := range datesDesc {
		rec := daily[date].Record(activity.Key)

		if rec.Actual > 0 {
			stats.TotalSessions++
			stats.TotalValue += rec.Actual
			if rec.Actual > stats.BestDay.Value {
				stats.BestDay = domain.BestDay{Date: date, Value: rec.Actual}
			}
		}

		if rec.Completed() {
			stats.DaysCompleted++
			tempStreak++
			if leadingRun {
				stats.CurrentStreak = tempStreak
			}
		} else {
			leadingRun = false
			if tempStreak > stats.LongestStreak {
				stats.LongestStreak = tempStreak
			}
			tempStreak = 0
		}
	}
	if tempStreak > stats.LongestStreak {
		stats.LongestStreak = tempStreak
	}

	if stats.TotalSessions > 0 {
		stats.AvgPerSession = stats.TotalValue / float64(stats.TotalSessions)
	}
	if len(datesDesc) > 0 {
		stats.CompletionRate = float64(stats.DaysCompleted) / float64(len(datesDesc)) * 100
	}

	stats.Trend = activityTrend(headDates(datesDesc, 7), daily, activity.Key)

	return stats
}

func headDates(dates []string, n int) []string {
	if len(dates) < n {
		return dates
	}
	return dates[:n]
}

// periodAverage is the mean day-completion percentage over a date window.
func periodAverage(dates []string, daily map[string]*domain.DayLog, activities map[string]*domain.Activity) float64 {
	if len(dates) == 0 {
		return 0
	}

	goalCount := len(activities)
	if goalCount == 0 {
		return 0
	}

	var total float64
	for _, date := range dates {
		day := daily[date]
		completed := 0
		for key := range activities {
			if day.Record(key).Completed() {
				completed++
			}
		}
		total += float64(completed) / float64(goalCount) * 100
	}

	return total / float64(len(dates))
}

// weeklyTrend compares the most recent 3-day average against the oldest
// 3 days of the same 7-slice. Windows must be disjoint: with fewer than
// 6 tracked dates the trend is 0 rather than double-counting days.
func weeklyTrend(last7 []string, daily map[string]*domain.DayLog, activities map[string]*domain.Activity) float64 {
	if len(last7) < 6 {
		return 0
	}

	recent := periodAverage(last7[:3], daily, activities)
	older := periodAverage(last7[len(last7)-3:], daily, activities)

	return recent - older
}

// activityTrend is the same disjoint-window rule on raw logged values.
func activityTrend(last7 []string, daily map[string]*domain.DayLog, activityKey string) float64 {
	if len(last7) < 6 {
		return 0
	}

	var recent, older float64
	for _, date := range last7[:3] {
		recent += daily[date].Record(activityKey).Actual
	}
	for _, date := range last7[len(last7)-3:] {
		older += daily[date].Record(activityKey).Actual
	}

	return recent/3 - older/3
}
