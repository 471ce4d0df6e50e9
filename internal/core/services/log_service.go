package services

import (
	"context"
	"time"

	"github.com/momentumlab/momentum-engine/internal/core/domain"
	"github.com/momentumlab/momentum-engine/internal/core/workers"
)

// LogService owns the date-keyed raw log store: record writes, day reads
// with live evaluations, day reset/prune and the incremental streak cache
// updated on save.
type LogService struct {
	stateRepo domain.StateRepository
	worker    *workers.AchievementWorker
}

func NewLogService(stateRepo domain.StateRepository, worker *workers.AchievementWorker) *LogService {
	return &LogService{
		stateRepo: stateRepo,
		worker:    worker,
	}
}

type RecordLogInput struct {
	UserID      string
	Date        string
	ActivityKey string
	Target      float64
	Actual      float64
	Notes       string
}

// ActivityProgress pairs an activity with its raw record and live
// evaluation for one day.
type ActivityProgress struct {
	Activity   *domain.Activity  `json:"activity"`
	Record     domain.LogRecord  `json:"record"`
	Evaluation domain.Evaluation `json:"evaluation"`
}

// DayProgress is the full view of one date for the current period.
type DayProgress struct {
	Date          string             `json:"date"`
	Activities    []ActivityProgress `json:"activities"`
	DayCompletion float64            `json:"day_completion"`
	Streak        int                `json:"streak"`
}

// RecordLog creates or overwrites the record for (date, activity key).
// A non-positive target snapshots the activity's current target; the
// write is idempotent.
func (s *LogService) RecordLog(ctx context.Context, input RecordLogInput) (domain.LogRecord, error) {
	date, err := domain.ParseDate(input.Date)
	if err != nil {
		return domain.LogRecord{}, err
	}

	state, err := s.stateRepo.Load(ctx, input.UserID)
	if err != nil {
		return domain.LogRecord{}, err
	}

	activity, ok := state.Activities()[input.ActivityKey]
	if !ok {
		return domain.LogRecord{}, domain.ErrActivityNotFound
	}

	target := input.Target
	if target <= 0 {
		target = activity.Target
	}

	rec := domain.LogRecord{
		Target: target,
		Actual: input.Actual,
		Notes:  input.Notes,
	}
	if err := rec.Validate(); err != nil {
		return domain.LogRecord{}, err
	}

	day := state.DailyData[date]
	if day == nil {
		day = domain.NewDayLog()
		state.DailyData[date] = day
	}
	day.Records[input.ActivityKey] = rec
	day.SavedAt = time.Now().UTC()

	if err := s.stateRepo.Save(ctx, input.UserID, state); err != nil {
		return domain.LogRecord{}, err
	}

	return rec, nil
}

// QuickComplete logs an activity as done for a date: actual jumps to the
// current target (1 for binary goals).
func (s *LogService) QuickComplete(ctx context.Context, userID, date, activityKey string) (domain.LogRecord, error) {
	state, err := s.stateRepo.Load(ctx, userID)
	if err != nil {
		return domain.LogRecord{}, err
	}

	activity, ok := state.Activities()[activityKey]
	if !ok {
		return domain.LogRecord{}, domain.ErrActivityNotFound
	}

	return s.RecordLog(ctx, RecordLogInput{
		UserID:      userID,
		Date:        date,
		ActivityKey: activityKey,
		Target:      activity.Target,
		Actual:      activity.Target,
	})
}

// GetDay returns the day's records joined with live evaluations for the
// current period, in display order. Missing records evaluate from the
// zero record.
func (s *LogService) GetDay(ctx context.Context, userID, date string) (*DayProgress, error) {
	date, err := domain.ParseDate(date)
	if err != nil {
		return nil, err
	}

	state, err := s.stateRepo.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	day := state.DailyData[date]
	catalog := state.Activities()

	progress := &DayProgress{Date: date, Streak: state.Streak}

	completed := 0
	for _, key := range state.OrderedKeys(state.CurrentPeriod) {
		activity := catalog[key]
		rec := day.Record(key)
		progress.Activities = append(progress.Activities, ActivityProgress{
			Activity:   activity,
			Record:     rec,
			Evaluation: Evaluate(activity, rec),
		})
		if rec.Completed() {
			completed++
		}
	}

	if len(catalog) > 0 {
		progress.DayCompletion = float64(completed) / float64(len(catalog)) * 100
	}

	return progress, nil
}

// ResetDay zeroes actuals and notes for every current-period activity on
// a date, keeping the live targets as snapshots.
func (s *LogService) ResetDay(ctx context.Context, userID, date string) error {
	date, err := domain.ParseDate(date)
	if err != nil {
		return err
	}

	state, err := s.stateRepo.Load(ctx, userID)
	if err != nil {
		return err
	}

	day := domain.NewDayLog()
	for key, activity := range state.Activities() {
		day.Records[key] = domain.LogRecord{Target: activity.Target}
	}
	day.SavedAt = time.Now().UTC()
	state.DailyData[date] = day

	return s.stateRepo.Save(ctx, userID, state)
}

// DeleteDay prunes a date entry from the history.
func (s *LogService) DeleteDay(ctx context.Context, userID, date string) error {
	date, err := domain.ParseDate(date)
	if err != nil {
		return err
	}

	state, err := s.stateRepo.Load(ctx, userID)
	if err != nil {
		return err
	}

	delete(state.DailyData, date)

	return s.stateRepo.Save(ctx, userID, state)
}

// SaveProgress finalizes a save: it rolls the incremental streak cache
// forward from today's records and queues an achievement recheck. The
// cache is only advanced by today's data; historical edits are picked up
// by the full recomputation in the stats service.
func (s *LogService) SaveProgress(ctx context.Context, userID string) (streak int, lastCompleted string, err error) {
	state, err := s.stateRepo.Load(ctx, userID)
	if err != nil {
		return 0, "", err
	}

	updateStreak(state)

	if err := s.stateRepo.Save(ctx, userID, state); err != nil {
		return 0, "", err
	}

	if s.worker != nil {
		s.worker.Enqueue(userID)
	}

	return state.Streak, state.LastCompletedDate, nil
}

// updateStreak advances the streak cache when every activity in the
// current period reached its snapshotted target today. A gap since the
// last completed day resets the count to 1; re-running on an already
// counted day is a no-op.
func updateStreak(state *domain.TrackerState) {
	today := domain.Today()
	day := state.DailyData[today]
	if day == nil {
		return
	}

	catalog := state.Activities()
	if len(catalog) == 0 {
		return
	}

	for key := range catalog {
		if !day.Record(key).Completed() {
			return
		}
	}

	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format(domain.DateLayout)

	if state.LastCompletedDate == yesterday || state.Streak == 0 {
		state.Streak++
	} else if state.LastCompletedDate != today {
		state.Streak = 1
	}

	state.LastCompletedDate = today
}
