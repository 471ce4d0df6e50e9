package services

import (
	"context"
	"fmt"

	"github.com/momentumlab/momentum-engine/internal/core/domain"
)

// AchievementService evaluates the fixed rule table against freshly
// recomputed stats. Unlocks are monotonic: once a key is persisted as
// unlocked, re-evaluation is a no-op for it.
type AchievementService struct {
	stateRepo domain.StateRepository
	achRepo   domain.AchievementRepository
}

func NewAchievementService(stateRepo domain.StateRepository, achRepo domain.AchievementRepository) *AchievementService {
	return &AchievementService{
		stateRepo: stateRepo,
		achRepo:   achRepo,
	}
}

// List returns every badge with the user's unlocked flag.
func (s *AchievementService) List(ctx context.Context, userID string) ([]domain.AchievementStatus, error) {
	unlocked, err := s.achRepo.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.AchievementStatus, 0, len(domain.AchievementCatalog))
	for _, a := range domain.AchievementCatalog {
		out = append(out, domain.AchievementStatus{Achievement: a, Unlocked: unlocked[a.Key]})
	}
	return out, nil
}

// Check evaluates every locked predicate and persists new unlocks,
// returning only the achievements that fired on this pass. Predicates are
// independent; there is no ordering between them.
func (s *AchievementService) Check(ctx context.Context, userID string) ([]domain.Achievement, error) {
	state, err := s.stateRepo.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	unlocked, err := s.achRepo.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if unlocked == nil {
		unlocked = make(domain.AchievementState)
	}

	stats := ComputeAggregateStats(state.SortedDatesDesc(), state.DailyData, state.Activities())

	var newly []domain.Achievement
	unlock := func(key string) {
		if unlocked[key] {
			return
		}
		unlocked[key] = true
		if a, ok := domain.AchievementByKey(key); ok {
			newly = append(newly, a)
		}
	}

	if anyGoalEverCompleted(state) {
		unlock(domain.AchFirstGoal)
	}
	if perfectToday(state) {
		unlock(domain.AchPerfectDay)
	}
	if stats.CurrentStreak >= 7 {
		unlock(domain.AchWeekStreak)
	}
	if stats.CurrentStreak >= 30 {
		unlock(domain.AchMonthStreak)
	}
	if overachievedToday(state) {
		unlock(domain.AchOverachiever)
	}
	if stats.TotalDays >= 100 {
		unlock(domain.AchDedication)
	}
	if stats.PerfectDays >= 10 {
		unlock(domain.AchPerfectTen)
	}
	if stats.AvgCompletion >= 80 {
		unlock(domain.AchHighAchiever)
	}
	if stats.AvgCompletion >= 95 {
		unlock(domain.AchPerfectionist)
	}
	if stats.TotalDays >= 30 {
		unlock(domain.AchConsistentTracker)
	}
	if stats.WeeklyTrend > 10 {
		unlock(domain.AchTrendingUp)
	}

	if len(newly) == 0 {
		return nil, nil
	}

	if err := s.achRepo.Save(ctx, userID, unlocked); err != nil {
		return nil, fmt.Errorf("achievement service: persist unlocks: %w", err)
	}

	return newly, nil
}

// anyGoalEverCompleted scans the whole history for a single record that
// reached its snapshotted target.
func anyGoalEverCompleted(state *domain.TrackerState) bool {
	for _, day := range state.DailyData {
		if day == nil {
			continue
		}
		for _, rec := range day.Records {
			if rec.Completed() {
				return true
			}
		}
	}
	return false
}

// perfectToday checks today's records only: at least one activity exists
// and every one reached its target.
func perfectToday(state *domain.TrackerState) bool {
	day := state.DailyData[domain.Today()]
	if day == nil {
		return false
	}

	catalog := state.Activities()
	if len(catalog) == 0 {
		return false
	}

	for key := range catalog {
		if !day.Record(key).Completed() {
			return false
		}
	}
	return true
}

// overachievedToday fires when any of today's records reached 150% of
// its snapshotted target, using the unclamped ratio.
func overachievedToday(state *domain.TrackerState) bool {
	day := state.DailyData[domain.Today()]
	if day == nil {
		return false
	}

	for _, rec := range day.Records {
		if rec.Target > 0 && rec.Actual >= rec.Target*1.5 {
			return true
		}
	}
	return false
}
