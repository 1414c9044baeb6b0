package summary

// Achievement IDs of the built-in catalog.
const (
	AchievementCenturyClub     = "century-club"
	AchievementStreakMaster    = "streak-master"
	AchievementSpeedDemon      = "speed-demon"
	AchievementPrecisionPro    = "precision-pro"
	AchievementKnowledgeSeeker = "knowledge-seeker"
	AchievementEarlyBird       = "early-bird"
)

var catalog = []Achievement{
	{ID: AchievementCenturyClub, Icon: "🏆", Title: "Century Club", Description: "Completed 100+ tasks in 8 months", Color: "#6C63FF"},
	{ID: AchievementStreakMaster, Icon: "🔥", Title: "30-Day Streak", Description: "Longest consecutive days active", Color: "#E74C3C"},
	{ID: AchievementSpeedDemon, Icon: "⚡", Title: "Speed Demon", Description: "Average 12 tasks per day", Color: "#F39C12"},
	{ID: AchievementPrecisionPro, Icon: "🎯", Title: "Precision Pro", Description: "85%+ completion rate", Color: "#2ECC71"},
	{ID: AchievementKnowledgeSeeker, Icon: "📚", Title: "Knowledge Seeker", Description: "Completed 50+ learning tasks", Color: "#2EC4B6"},
	{ID: AchievementEarlyBird, Icon: "🌟", Title: "Early Bird", Description: "Most productive in mornings", Color: "#7AA2F7"},
}

// Catalog returns the achievements that can be unlocked, without dates.
func Catalog() []Achievement {
	out := make([]Achievement, len(catalog))
	copy(out, catalog)
	return out
}

// CatalogEntry looks up an achievement by ID.
func CatalogEntry(id string) (Achievement, bool) {
	for _, a := range catalog {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}
