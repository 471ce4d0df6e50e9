package domain

import "sort"

// TrackerState is the durable per-user blob: the activity catalogs, the
// raw date-keyed log history, the incremental streak cache and the
// presentation preferences layered on top of the catalog.
//
// The streak fields are an optimization cache; a full recomputation over
// DailyData (see the stats service) is the source of truth and must agree.
type TrackerState struct {
	DailyData          map[string]*DayLog              `json:"daily_data"`
	Streak             int                             `json:"streak"`
	LastCompletedDate  string                          `json:"last_completed_date,omitempty"`
	ActivitiesByPeriod map[string]map[string]*Activity `json:"activities_by_period"`
	CurrentPeriod      string                          `json:"current_period"`
	DisplayOrder       map[string][]string             `json:"display_order,omitempty"`
}

// NewTrackerState seeds a fresh state with the built-in catalogs.
func NewTrackerState() *TrackerState {
	byPeriod := make(map[string]map[string]*Activity, 4)
	for _, p := range Periods() {
		byPeriod[p] = DefaultCatalog(p)
	}

	return &TrackerState{
		DailyData:          make(map[string]*DayLog),
		ActivitiesByPeriod: byPeriod,
		CurrentPeriod:      PeriodDaily,
		DisplayOrder:       make(map[string][]string),
	}
}

// Normalize repairs nil maps after deserialization so corrupted or partial
// blobs degrade to empty structures instead of panicking.
func (s *TrackerState) Normalize() {
	if s.DailyData == nil {
		s.DailyData = make(map[string]*DayLog)
	}
	for _, day := range s.DailyData {
		if day != nil && day.Records == nil {
			day.Records = make(map[string]LogRecord)
		}
	}
	if s.ActivitiesByPeriod == nil {
		s.ActivitiesByPeriod = make(map[string]map[string]*Activity)
	}
	for _, p := range Periods() {
		if s.ActivitiesByPeriod[p] == nil {
			s.ActivitiesByPeriod[p] = DefaultCatalog(p)
		}
	}
	if !ValidPeriod(s.CurrentPeriod) {
		s.CurrentPeriod = PeriodDaily
	}
	if s.DisplayOrder == nil {
		s.DisplayOrder = make(map[string][]string)
	}
}

// Activities returns the catalog for the currently selected period.
func (s *TrackerState) Activities() map[string]*Activity {
	return s.ActivitiesByPeriod[s.CurrentPeriod]
}

// SortedDatesDesc returns every tracked date, most recent first.
func (s *TrackerState) SortedDatesDesc() []string {
	dates := make([]string, 0, len(s.DailyData))
	for d := range s.DailyData {
		dates = append(dates, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates
}

// OrderedKeys returns the activity keys for a period in display order.
// Keys missing from the stored permutation are appended alphabetically,
// and stale entries are skipped.
func (s *TrackerState) OrderedKeys(period string) []string {
	catalog := s.ActivitiesByPeriod[period]

	seen := make(map[string]bool, len(catalog))
	keys := make([]string, 0, len(catalog))
	for _, k := range s.DisplayOrder[period] {
		if _, ok := catalog[k]; ok && !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}

	var rest []string
	for k := range catalog {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)

	return append(keys, rest...)
}
