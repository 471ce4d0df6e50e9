package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"
)

var (
	ErrActivityNameEmpty   = errors.New("activity name cannot be empty")
	ErrActivityNameTooLong = errors.New("activity name is too long (max 100 chars)")
	ErrInvalidColor        = errors.New("invalid color format (must be #RGB or #RRGGBB)")
	ErrInvalidTarget       = errors.New("target must be greater than zero")
	ErrInvalidCompletion   = errors.New("invalid completion type (must be time, quantity, binary, or percentage)")
	ErrInvalidPeriod       = errors.New("invalid period (must be daily, weekly, monthly, or yearly)")
	ErrMissingUnit         = errors.New("unit is required for this completion type")
	ErrActivityNotFound    = errors.New("activity not found")
)

var colorRegex = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

const (
	// CompletionTime and CompletionQuantity share the ratio policy:
	// percentage = actual/target*100 clamped at 100.
	CompletionTime     = "time"
	CompletionQuantity = "quantity"
	// CompletionBinary treats actual as a done flag; target is fixed at 1.
	CompletionBinary = "binary"
	// CompletionPercentage stores actual as an absolute 0-100 value and
	// target as a threshold on the same scale. The evaluator never
	// rescales actual by target for this type.
	CompletionPercentage = "percentage"

	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
	PeriodYearly  = "yearly"

	// BinaryTarget is the sentinel target for binary activities.
	BinaryTarget = 1

	MaxNameLen = 100
)

// Activity is a user-defined goal tracked within a time period. The key is
// stable for the lifetime of the catalog and never reused after deletion.
type Activity struct {
	Key            string  `json:"key"`
	Name           string  `json:"name"`
	Icon           string  `json:"icon"`
	Color          string  `json:"color"`
	Target         float64 `json:"target"`
	Unit           string  `json:"unit"`
	UnitShort      string  `json:"unit_short"`
	CompletionType string  `json:"completion_type"`
}

var unitShorts = map[string]string{
	"minutes":   "min",
	"hours":     "h",
	"pages":     "pg",
	"exercises": "ex",
	"glasses":   "gl",
	"reps":      "reps",
	"items":     "items",
	"times":     "x",
	"chapters":  "ch",
	"sessions":  "sess",
}

// ShortUnit derives the short unit label shown next to remaining amounts.
// Unknown units are truncated to three characters.
func ShortUnit(unit, completionType string) string {
	if completionType == CompletionBinary {
		return ""
	}
	if completionType == CompletionPercentage {
		return "%"
	}
	if short, ok := unitShorts[unit]; ok {
		return short
	}
	if len(unit) <= 3 {
		return unit
	}
	return unit[:3]
}

func ValidPeriod(period string) bool {
	switch period {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly:
		return true
	}
	return false
}

func Periods() []string {
	return []string{PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly}
}

func validateActivity(name, color, completionType, unit string, target float64) (float64, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return 0, ErrActivityNameEmpty
	}
	if len(trimmed) > MaxNameLen {
		return 0, ErrActivityNameTooLong
	}

	switch completionType {
	case CompletionBinary:
		return BinaryTarget, nil
	case CompletionTime, CompletionQuantity:
		if strings.TrimSpace(unit) == "" {
			return 0, ErrMissingUnit
		}
	case CompletionPercentage:
	default:
		return 0, ErrInvalidCompletion
	}

	if target <= 0 {
		return 0, ErrInvalidTarget
	}

	if color != "" && !colorRegex.MatchString(color) {
		return 0, ErrInvalidColor
	}

	return target, nil
}

// NewActivity validates input and builds an activity under the given key.
// Key generation is the caller's concern (see NextActivityKey).
func NewActivity(key, name, icon, color, unit, completionType string, target float64) (*Activity, error) {
	if completionType == "" {
		completionType = CompletionTime
	}

	safeTarget, err := validateActivity(name, color, completionType, unit, target)
	if err != nil {
		return nil, err
	}

	unit = strings.ToLower(strings.TrimSpace(unit))

	return &Activity{
		Key:            key,
		Name:           strings.TrimSpace(name),
		Icon:           icon,
		Color:          color,
		Target:         safeTarget,
		Unit:           unit,
		UnitShort:      ShortUnit(unit, completionType),
		CompletionType: completionType,
	}, nil
}

// Update replaces the activity fields in place, keeping the key. Historical
// log snapshots are untouched: they carry their own target copy.
func (a *Activity) Update(name, icon, color, unit, completionType string, target float64) error {
	if completionType == "" {
		completionType = a.CompletionType
	}

	safeTarget, err := validateActivity(name, color, completionType, unit, target)
	if err != nil {
		return err
	}

	unit = strings.ToLower(strings.TrimSpace(unit))

	a.Name = strings.TrimSpace(name)
	a.Icon = icon
	a.Color = color
	a.Target = safeTarget
	a.Unit = unit
	a.UnitShort = ShortUnit(unit, completionType)
	a.CompletionType = completionType

	return nil
}

var (
	keyMu   sync.Mutex
	lastKey int64
)

// NextActivityKey returns a fresh time-based key. Keys are strictly
// monotonic even within the same millisecond, so a deleted key can never
// be handed out again.
func NextActivityKey() string {
	keyMu.Lock()
	defer keyMu.Unlock()

	now := time.Now().UnixMilli()
	if now <= lastKey {
		now = lastKey + 1
	}
	lastKey = now

	return fmt.Sprintf("activity_%d", now)
}

// DefaultCatalog returns the built-in activity set for a period, used to
// seed new tracker states.
func DefaultCatalog(period string) map[string]*Activity {
	switch period {
	case PeriodDaily:
		return map[string]*Activity{
			"work":       {Key: "work", Name: "Work", Icon: "💼", Color: "#00695c", Target: 8, Unit: "hours", UnitShort: "h", CompletionType: CompletionTime},
			"exercise":   {Key: "exercise", Name: "Exercise", Icon: "💪", Color: "#2e7d32", Target: 60, Unit: "minutes", UnitShort: "min", CompletionType: CompletionTime},
			"reading":    {Key: "reading", Name: "Reading", Icon: "📚", Color: "#1565c0", Target: 30, Unit: "minutes", UnitShort: "min", CompletionType: CompletionTime},
			"meditation": {Key: "meditation", Name: "Meditation", Icon: "🧘", Color: "#7b1fa2", Target: 20, Unit: "minutes", UnitShort: "min", CompletionType: CompletionTime},
		}
	case PeriodWeekly:
		return map[string]*Activity{
			"meal_prep":   {Key: "meal_prep", Name: "Meal Prep", Icon: "🍱", Color: "#f57c00", Target: 3, Unit: "sessions", UnitShort: "sess", CompletionType: CompletionQuantity},
			"deep_work":   {Key: "deep_work", Name: "Deep Work Sessions", Icon: "🎯", Color: "#5e35b1", Target: 5, Unit: "sessions", UnitShort: "sess", CompletionType: CompletionQuantity},
			"social_time": {Key: "social_time", Name: "Social Activities", Icon: "👥", Color: "#e91e63", Target: 2, Unit: "activities", UnitShort: "act", CompletionType: CompletionQuantity},
		}
	case PeriodMonthly:
		return map[string]*Activity{
			"skill_learning":   {Key: "skill_learning", Name: "Learn New Skill", Icon: "🎓", Color: "#1976d2", Target: 1, Unit: "skills", UnitShort: "ski", CompletionType: CompletionQuantity},
			"deep_clean":       {Key: "deep_clean", Name: "Deep Clean House", Icon: "🧹", Color: "#388e3c", Target: 1, Unit: "sessions", UnitShort: "sess", CompletionType: CompletionQuantity},
			"financial_review": {Key: "financial_review", Name: "Financial Review", Icon: "💰", Color: "#fbc02d", Target: 1, Unit: "reviews", UnitShort: "rev", CompletionType: CompletionQuantity},
		}
	case PeriodYearly:
		return map[string]*Activity{
			"major_goal":       {Key: "major_goal", Name: "Complete Major Goal", Icon: "🏆", Color: "#ff5722", Target: 1, Unit: "goals", UnitShort: "goa", CompletionType: CompletionQuantity},
			"travel":           {Key: "travel", Name: "Travel Adventures", Icon: "✈️", Color: "#00acc1", Target: 2, Unit: "trips", UnitShort: "tri", CompletionType: CompletionQuantity},
			"career_milestone": {Key: "career_milestone", Name: "Career Milestone", Icon: "📈", Color: "#8bc34a", Target: 1, Unit: "milestones", UnitShort: "mil", CompletionType: CompletionQuantity},
		}
	}
	return map[string]*Activity{}
}
