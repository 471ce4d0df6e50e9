package domain

// Evaluation is the live progress view of one activity for one day.
// Percentage is clamped to [0,100] for display; callers that need the
// unclamped ratio (e.g. overachiever checks) recompute actual/target
// from the raw record.
type Evaluation struct {
	Percentage float64 `json:"percentage"`
	Completed  bool    `json:"completed"`
	Status     string  `json:"status"`
}

// AggregateStats summarizes the whole tracked history for one period's
// catalog, scanning dates most-recent-first.
type AggregateStats struct {
	TotalDays     int     `json:"total_days"`
	PerfectDays   int     `json:"perfect_days"`
	AvgCompletion float64 `json:"avg_completion"`
	CurrentStreak int     `json:"current_streak"`
	LongestStreak int     `json:"longest_streak"`
	WeeklyTrend   float64 `json:"weekly_trend"`
	Last7DaysAvg  float64 `json:"last_7_days_avg"`
	Last30DaysAvg float64 `json:"last_30_days_avg"`
}

// BestDay is the single highest-value session for an activity.
type BestDay struct {
	Date  string  `json:"date,omitempty"`
	Value float64 `json:"value"`
}

// ActivityStats is the per-activity variant of the streak reconstruction,
// plus session totals and a short-window trend.
type ActivityStats struct {
	Key            string  `json:"key"`
	Name           string  `json:"name"`
	Icon           string  `json:"icon"`
	Color          string  `json:"color"`
	Unit           string  `json:"unit"`
	TotalSessions  int     `json:"total_sessions"`
	TotalValue     float64 `json:"total_value"`
	AvgPerSession  float64 `json:"avg_per_session"`
	DaysCompleted  int     `json:"days_completed"`
	CurrentStreak  int     `json:"current_streak"`
	LongestStreak  int     `json:"longest_streak"`
	CompletionRate float64 `json:"completion_rate"`
	BestDay        BestDay `json:"best_day"`
	Trend          float64 `json:"trend"`
}
