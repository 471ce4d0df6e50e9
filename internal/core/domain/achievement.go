package domain

// Achievement keys. The rule table is fixed; unlocks are monotonic and
// persisted per user.
const (
	AchFirstGoal         = "firstGoal"
	AchPerfectDay        = "perfectDay"
	AchWeekStreak        = "weekStreak"
	AchMonthStreak       = "monthStreak"
	AchOverachiever      = "overachiever"
	AchDedication        = "dedication"
	AchPerfectTen        = "perfectTen"
	AchHighAchiever      = "highAchiever"
	AchPerfectionist     = "perfectionist"
	AchConsistentTracker = "consistentTracker"
	AchTrendingUp        = "trendingUp"
)

// Achievement is static metadata for one unlockable badge.
type Achievement struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// AchievementCatalog lists every badge in display order.
var AchievementCatalog = []Achievement{
	{Key: AchFirstGoal, Title: "First Victory!", Description: "Complete your first goal", Icon: "🎯"},
	{Key: AchPerfectDay, Title: "Perfect Day", Description: "Complete all goals in a day", Icon: "⭐"},
	{Key: AchWeekStreak, Title: "Week Warrior", Description: "Maintain a 7-day streak", Icon: "🔥"},
	{Key: AchMonthStreak, Title: "Monthly Champion", Description: "Maintain a 30-day streak", Icon: "👑"},
	{Key: AchOverachiever, Title: "Overachiever", Description: "Complete 150% of your daily target", Icon: "💪"},
	{Key: AchDedication, Title: "Dedication", Description: "Log progress for 100 days", Icon: "🏆"},
	{Key: AchPerfectTen, Title: "Perfect Ten", Description: "10+ perfect days", Icon: "🌟"},
	{Key: AchHighAchiever, Title: "High Achiever", Description: "80%+ average completion", Icon: "🎖️"},
	{Key: AchPerfectionist, Title: "Perfectionist", Description: "95%+ average completion", Icon: "💎"},
	{Key: AchConsistentTracker, Title: "Consistent Tracker", Description: "30+ days logged", Icon: "📅"},
	{Key: AchTrendingUp, Title: "Trending Up", Description: "Weekly average up by more than 10%", Icon: "📈"},
}

// AchievementByKey resolves metadata; ok is false for unknown keys.
func AchievementByKey(key string) (Achievement, bool) {
	for _, a := range AchievementCatalog {
		if a.Key == key {
			return a, true
		}
	}
	return Achievement{}, false
}

// AchievementState maps achievement keys to their unlocked flag. Missing
// keys are locked. Once set, a flag is never cleared.
type AchievementState map[string]bool

// AchievementStatus is the metadata joined with the per-user flag.
type AchievementStatus struct {
	Achievement
	Unlocked bool `json:"unlocked"`
}
