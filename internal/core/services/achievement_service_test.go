package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentumlab/momentum-engine/internal/core/domain"
	"github.com/momentumlab/momentum-engine/internal/core/services"
)

func unlockKeys(list []domain.Achievement) []string {
	keys := make([]string, len(list))
	for i, a := range list {
		keys[i] = a.Key
	}
	return keys
}

func TestAchievementService_List(t *testing.T) {
	ctx := context.Background()

	stateRepo := newStubStateRepo()
	achRepo := newStubAchievementRepo()
	achRepo.states["u1"] = domain.AchievementState{domain.AchFirstGoal: true}

	svc := services.NewAchievementService(stateRepo, achRepo)

	list, err := svc.List(ctx, "u1")

	require.NoError(t, err)
	require.Len(t, list, len(domain.AchievementCatalog))

	for _, status := range list {
		if status.Key == domain.AchFirstGoal {
			assert.True(t, status.Unlocked)
		} else {
			assert.False(t, status.Unlocked, "key %s", status.Key)
		}
	}
}

func TestAchievementService_Check(t *testing.T) {
	ctx := context.Background()
	today := domain.Today()

	t.Run("Empty history unlocks nothing and skips persistence", func(t *testing.T) {
		stateRepo := newStubStateRepo()
		achRepo := newStubAchievementRepo()
		svc := services.NewAchievementService(stateRepo, achRepo)

		newly, err := svc.Check(ctx, "u1")

		require.NoError(t, err)
		assert.Empty(t, newly)
		assert.Zero(t, achRepo.saves)
	})

	t.Run("First completed goal anywhere in history fires firstGoal", func(t *testing.T) {
		stateRepo := newStubStateRepo()
		achRepo := newStubAchievementRepo()
		svc := services.NewAchievementService(stateRepo, achRepo)

		state, _ := stateRepo.Load(ctx, "u1")
		state.DailyData["2024-06-15"] = dayWith(map[string]domain.LogRecord{
			"reading": {Target: 30, Actual: 30},
		})

		newly, err := svc.Check(ctx, "u1")

		require.NoError(t, err)
		assert.Contains(t, unlockKeys(newly), domain.AchFirstGoal)
		assert.NotContains(t, unlockKeys(newly), domain.AchPerfectDay)
	})

	t.Run("Perfect today fires perfectDay", func(t *testing.T) {
		stateRepo := newStubStateRepo()
		achRepo := newStubAchievementRepo()
		svc := services.NewAchievementService(stateRepo, achRepo)

		state, _ := stateRepo.Load(ctx, "u1")
		completeDailyCatalog(state, today)

		newly, err := svc.Check(ctx, "u1")

		require.NoError(t, err)
		keys := unlockKeys(newly)
		assert.Contains(t, keys, domain.AchPerfectDay)
		assert.Contains(t, keys, domain.AchFirstGoal)
	})

	t.Run("Recomputed streak fires week and month badges", func(t *testing.T) {
		stateRepo := newStubStateRepo()
		achRepo := newStubAchievementRepo()
		svc := services.NewAchievementService(stateRepo, achRepo)

		state, _ := stateRepo.Load(ctx, "u1")
		for i := 0; i < 30; i++ {
			date := time.Now().UTC().AddDate(0, 0, -i).Format(domain.DateLayout)
			completeDailyCatalog(state, date)
		}

		newly, err := svc.Check(ctx, "u1")

		require.NoError(t, err)
		keys := unlockKeys(newly)
		assert.Contains(t, keys, domain.AchWeekStreak)
		assert.Contains(t, keys, domain.AchMonthStreak)
	})

	t.Run("Stale streak cache alone unlocks no streak badge", func(t *testing.T) {
		stateRepo := newStubStateRepo()
		achRepo := newStubAchievementRepo()
		svc := services.NewAchievementService(stateRepo, achRepo)

		state, _ := stateRepo.Load(ctx, "u1")
		state.Streak = 30 // cached value with no history behind it

		newly, err := svc.Check(ctx, "u1")

		require.NoError(t, err)
		keys := unlockKeys(newly)
		assert.NotContains(t, keys, domain.AchWeekStreak)
		assert.NotContains(t, keys, domain.AchMonthStreak)
	})

	t.Run("150 percent of a snapshot target fires overachiever", func(t *testing.T) {
		stateRepo := newStubStateRepo()
		achRepo := newStubAchievementRepo()
		svc := services.NewAchievementService(stateRepo, achRepo)

		state, _ := stateRepo.Load(ctx, "u1")
		state.DailyData[today] = dayWith(map[string]domain.LogRecord{
			"exercise": {Target: 60, Actual: 90},
		})

		newly, err := svc.Check(ctx, "u1")

		require.NoError(t, err)
		assert.Contains(t, unlockKeys(newly), domain.AchOverachiever)
	})

	t.Run("Just below 150 percent does not fire overachiever", func(t *testing.T) {
		stateRepo := newStubStateRepo()
		achRepo := newStubAchievementRepo()
		svc := services.NewAchievementService(stateRepo, achRepo)

		state, _ := stateRepo.Load(ctx, "u1")
		state.DailyData[today] = dayWith(map[string]domain.LogRecord{
			"exercise": {Target: 60, Actual: 89},
		})

		newly, err := svc.Check(ctx, "u1")

		require.NoError(t, err)
		assert.NotContains(t, unlockKeys(newly), domain.AchOverachiever)
	})

	t.Run("Volume badges from a long perfect history", func(t *testing.T) {
		stateRepo := newStubStateRepo()
		achRepo := newStubAchievementRepo()
		svc := services.NewAchievementService(stateRepo, achRepo)

		state, _ := stateRepo.Load(ctx, "u1")
		for i := 0; i < 100; i++ {
			date := fmt.Sprintf("2025-%02d-%02d", 1+i/28, 1+i%28)
			completeDailyCatalog(state, date)
		}

		newly, err := svc.Check(ctx, "u1")

		require.NoError(t, err)
		keys := unlockKeys(newly)
		assert.Contains(t, keys, domain.AchDedication)
		assert.Contains(t, keys, domain.AchPerfectTen)
		assert.Contains(t, keys, domain.AchConsistentTracker)
		assert.Contains(t, keys, domain.AchHighAchiever)
		assert.Contains(t, keys, domain.AchPerfectionist)
	})

	t.Run("Unlocks are monotonic: second pass returns nothing new", func(t *testing.T) {
		stateRepo := newStubStateRepo()
		achRepo := newStubAchievementRepo()
		svc := services.NewAchievementService(stateRepo, achRepo)

		state, _ := stateRepo.Load(ctx, "u1")
		completeDailyCatalog(state, today)

		first, err := svc.Check(ctx, "u1")
		require.NoError(t, err)
		require.NotEmpty(t, first)

		second, err := svc.Check(ctx, "u1")
		require.NoError(t, err)
		assert.Empty(t, second)

		persisted, err := achRepo.Load(ctx, "u1")
		require.NoError(t, err)
		assert.True(t, persisted[domain.AchPerfectDay], "unlock survives re-evaluation")
	})
}
