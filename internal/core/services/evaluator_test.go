package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/momentumlab/momentum-engine/internal/core/domain"
	"github.com/momentumlab/momentum-engine/internal/core/services"
)

func timeActivity(target float64) *domain.Activity {
	return &domain.Activity{
		Key: "run", Name: "Running", Target: target,
		Unit: "minutes", UnitShort: "min", CompletionType: domain.CompletionTime,
	}
}

func TestEvaluate_TimeAndQuantity(t *testing.T) {
	t.Run("Partial progress", func(t *testing.T) {
		ev := services.Evaluate(timeActivity(30), domain.LogRecord{Target: 30, Actual: 15})

		assert.InDelta(t, 50.0, ev.Percentage, 0.001)
		assert.False(t, ev.Completed)
		assert.Equal(t, "15min remaining", ev.Status)
	})

	t.Run("Exactly on target", func(t *testing.T) {
		ev := services.Evaluate(timeActivity(30), domain.LogRecord{Target: 30, Actual: 30})

		assert.Equal(t, 100.0, ev.Percentage)
		assert.True(t, ev.Completed)
		assert.Equal(t, "Completed!", ev.Status)
	})

	t.Run("Overshoot clamps at 100", func(t *testing.T) {
		ev := services.Evaluate(timeActivity(30), domain.LogRecord{Target: 30, Actual: 90})

		assert.Equal(t, 100.0, ev.Percentage)
		assert.True(t, ev.Completed)
	})

	t.Run("Zero target never completes", func(t *testing.T) {
		ev := services.Evaluate(timeActivity(30), domain.LogRecord{Target: 0, Actual: 50})

		assert.Equal(t, 0.0, ev.Percentage)
		assert.False(t, ev.Completed)
	})

	t.Run("Fractional remaining keeps one decimal", func(t *testing.T) {
		ev := services.Evaluate(timeActivity(30), domain.LogRecord{Target: 30, Actual: 22.5})

		assert.Equal(t, "7.5min remaining", ev.Status)
	})

	t.Run("Monotonic in actual", func(t *testing.T) {
		prev := -1.0
		for actual := 0.0; actual <= 60; actual += 5 {
			ev := services.Evaluate(timeActivity(30), domain.LogRecord{Target: 30, Actual: actual})
			assert.GreaterOrEqual(t, ev.Percentage, prev)
			prev = ev.Percentage
		}
	})
}

func TestEvaluate_Binary(t *testing.T) {
	activity := &domain.Activity{Key: "vitamins", Target: 1, CompletionType: domain.CompletionBinary}

	t.Run("Nonzero actual means done", func(t *testing.T) {
		ev := services.Evaluate(activity, domain.LogRecord{Target: 1, Actual: 1})

		assert.Equal(t, 100.0, ev.Percentage)
		assert.True(t, ev.Completed)
		assert.Equal(t, "Completed!", ev.Status)
	})

	t.Run("Zero actual means not done", func(t *testing.T) {
		ev := services.Evaluate(activity, domain.LogRecord{Target: 1, Actual: 0})

		assert.Equal(t, 0.0, ev.Percentage)
		assert.False(t, ev.Completed)
		assert.Equal(t, "Not completed", ev.Status)
	})
}

func TestEvaluate_Percentage(t *testing.T) {
	activity := &domain.Activity{Key: "battery", Target: 80, UnitShort: "%", CompletionType: domain.CompletionPercentage}

	t.Run("Actual is the displayed percentage, never rescaled", func(t *testing.T) {
		ev := services.Evaluate(activity, domain.LogRecord{Target: 80, Actual: 60})

		assert.Equal(t, 60.0, ev.Percentage)
		assert.False(t, ev.Completed)
		assert.Equal(t, "20% to go", ev.Status)
	})

	t.Run("Reaching the threshold completes", func(t *testing.T) {
		ev := services.Evaluate(activity, domain.LogRecord{Target: 80, Actual: 80})

		assert.True(t, ev.Completed)
		assert.Equal(t, "Target reached!", ev.Status)
	})

	t.Run("Display clamps above 100", func(t *testing.T) {
		ev := services.Evaluate(activity, domain.LogRecord{Target: 80, Actual: 120})

		assert.Equal(t, 100.0, ev.Percentage)
		assert.True(t, ev.Completed)
	})
}

func TestEvaluate_NilActivity(t *testing.T) {
	ev := services.Evaluate(nil, domain.LogRecord{Target: 10, Actual: 10})

	assert.False(t, ev.Completed)
	assert.Equal(t, 0.0, ev.Percentage)
}
