package model

import "time"

// AchievementCategory selects which telemetry field drives an achievement's
// progress. The extraction switch over these values is exhaustive.
type AchievementCategory string

const (
	AchievementCategorySteps       AchievementCategory = "steps"
	AchievementCategoryDistance    AchievementCategory = "distance"
	AchievementCategoryStreak      AchievementCategory = "streak"
	AchievementCategoryFriends     AchievementCategory = "friends"
	AchievementCategoryExploration AchievementCategory = "exploration"
	AchievementCategoryChallenges  AchievementCategory = "challenges"
)

// Achievement is a one-way Locked -> Unlocked reward. Once Unlocked is true it
// never flips back and UnlockedAt is stamped exactly once, at the transition.
type Achievement struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Icon        string              `json:"icon"`
	Requirement float64             `json:"requirement"`
	Category    AchievementCategory `json:"category"`
	Unlocked    bool                `json:"unlocked"`
	UnlockedAt  *time.Time          `json:"unlocked_at,omitempty"`
	Progress    float64             `json:"progress"`
}

// ChallengeType distinguishes daily from weekly challenge instances.
type ChallengeType string

const (
	ChallengeTypeDaily  ChallengeType = "daily"
	ChallengeTypeWeekly ChallengeType = "weekly"
)

// ChallengeMetric names the telemetry field that drives a challenge's
// progress. An explicit field instead of sniffing the description text.
type ChallengeMetric string

const (
	ChallengeMetricSteps         ChallengeMetric = "steps"
	ChallengeMetricDistanceKm    ChallengeMetric = "distance_km"
	ChallengeMetricExploredSpots ChallengeMetric = "explored_spots"
)

// Challenge is a time-boxed reward. Active -> Completed is terminal and the
// reward is granted exactly once, on the transition. Active challenges past
// ExpiresAt are purged by the scheduler; completed ones are kept for history.
type Challenge struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Icon         string          `json:"icon"`
	Requirement  float64         `json:"requirement"`
	Type         ChallengeType   `json:"type"`
	Metric       ChallengeMetric `json:"metric"`
	RewardPoints int             `json:"reward_points"`
	Progress     float64         `json:"progress"`
	Completed    bool            `json:"completed"`
	CompletedAt  *time.Time      `json:"completed_at,omitempty"`
	ExpiresAt    time.Time       `json:"expires_at"`
}

// Expired reports whether the challenge window has closed.
func (c *Challenge) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// DayFormat is the calendar-day granularity used by streak accounting.
const DayFormat = "2006-01-02"

// StreakData tracks consecutive active calendar days. Longest is a high-water
// mark and never decreases.
type StreakData struct {
	Current       int      `json:"current"`
	Longest       int      `json:"longest"`
	LastActiveDay string   `json:"last_active_day"`
	History       []string `json:"history"`
}

// Goals are user-editable daily/weekly targets, independent of achievements.
type Goals struct {
	DailySteps     int     `json:"daily_steps"`
	WeeklySteps    int     `json:"weekly_steps"`
	DailyDistance  float64 `json:"daily_distance"`
	WeeklyDistance float64 `json:"weekly_distance"`
}

// ActivityType classifies an activity feed entry.
type ActivityType string

const (
	ActivityTypeAchievement ActivityType = "achievement"
	ActivityTypeChallenge   ActivityType = "challenge"
	ActivityTypeStreak      ActivityType = "streak"
	ActivityTypeMilestone   ActivityType = "milestone"
	ActivityTypeSocial      ActivityType = "social"
)

// ActivityItem is one entry of the newest-first activity feed.
type ActivityItem struct {
	ID          string       `json:"id"`
	Type        ActivityType `json:"type"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Timestamp   time.Time    `json:"timestamp"`
}

// Telemetry is the aggregated movement/social input to a progress update.
// Distance is meters.
type Telemetry struct {
	Steps      int     `json:"steps"`
	Distance   float64 `json:"distance"`
	PathPoints int     `json:"path_points"`
	Friends    int     `json:"friends"`
}

// ProgressionSnapshot is the persisted state of the progression engine.
type ProgressionSnapshot struct {
	Version      int            `json:"version"`
	Achievements []*Achievement `json:"achievements"`
	Challenges   []*Challenge   `json:"challenges"`
	Streak       StreakData     `json:"streak"`
	Goals        Goals          `json:"goals"`
	TotalPoints  int            `json:"total_points"`
	Feed         []ActivityItem `json:"feed"`
	UpdatedAt    time.Time      `json:"updated_at"`
}
