package services

import (
	"fmt"
	"math"

	"github.com/momentumlab/momentum-engine/internal/core/domain"
)

// Evaluate computes the live progress view for one activity and one day's
// raw record. Pure function of its inputs; the percentage is clamped at
// 100 for display.
func Evaluate(activity *domain.Activity, rec domain.LogRecord) domain.Evaluation {
	if activity == nil {
		return domain.Evaluation{Status: "Not completed"}
	}

	switch activity.CompletionType {
	case domain.CompletionBinary:
		done := rec.Actual != 0
		if done {
			return domain.Evaluation{Percentage: 100, Completed: true, Status: "Completed!"}
		}
		return domain.Evaluation{Percentage: 0, Completed: false, Status: "Not completed"}

	case domain.CompletionPercentage:
		// Actual is already an absolute 0-100 value; never rescaled.
		completed := rec.Actual >= rec.Target
		status := "Target reached!"
		if !completed {
			status = fmt.Sprintf("%s%% to go", trimFloat(rec.Target-rec.Actual))
		}
		return domain.Evaluation{
			Percentage: clampPercent(rec.Actual),
			Completed:  completed,
			Status:     status,
		}

	default: // time or quantity
		var pct float64
		if rec.Target > 0 {
			pct = math.Min(rec.Actual/rec.Target*100, 100)
		}
		completed := pct >= 100

		remaining := math.Max(rec.Target-rec.Actual, 0)
		status := "Completed!"
		if remaining > 0 {
			status = fmt.Sprintf("%s%s remaining", trimFloat(remaining), activity.UnitShort)
		}
		return domain.Evaluation{Percentage: pct, Completed: completed, Status: status}
	}
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// trimFloat renders a value without a trailing ".0" for whole numbers.
func trimFloat(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}
