// Package progression is the reward state machine: achievements, challenges,
// points, the daily streak and the activity feed.
package progression

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Pragnesh-10/CampusExplorer/internal/model"
	"github.com/Pragnesh-10/CampusExplorer/internal/store"
	"github.com/Pragnesh-10/CampusExplorer/internal/util"
)

const (
	// achievementBonus is the fixed point award for unlocking an achievement.
	achievementBonus = 100
	// feedLimit bounds the activity feed; older entries are dropped.
	feedLimit = 50
)

// Notifier is the outbound notification sink. Delivery is best-effort; the
// engine does not depend on it succeeding.
type Notifier interface {
	Notify(kind model.ActivityType, title, body string)
}

// Service owns the achievement, challenge, streak, goal and activity-feed
// collections. Unlocks and challenge completions are edge-triggered: the
// transition fires at most once per definition regardless of how often
// UpdateProgress is called with a satisfying value.
type Service struct {
	mu           sync.RWMutex
	achievements []*model.Achievement
	challenges   []*model.Challenge
	streak       model.StreakData
	goals        model.Goals
	totalPoints  int
	feed         []model.ActivityItem
	dirty        bool

	snapshots store.SnapshotStore
	notifier  Notifier // may be nil
	logger    zerolog.Logger
}

// NewService creates a progression engine seeded from the fixed achievement
// catalog. notifier may be nil.
func NewService(snapshots store.SnapshotStore, notifier Notifier, logger zerolog.Logger) *Service {
	return &Service{
		achievements: achievementCatalog(),
		goals: model.Goals{
			DailySteps:     10000,
			WeeklySteps:    70000,
			DailyDistance:  5000,
			WeeklyDistance: 35000,
		},
		snapshots: snapshots,
		notifier:  notifier,
		logger:    logger.With().Str("service", "progression").Logger(),
	}
}

// Load merges the persisted snapshot over the catalog defaults. Any load or
// decode failure leaves the seeded defaults in place.
func (s *Service) Load(ctx context.Context) {
	var snap model.ProgressionSnapshot
	found, err := s.snapshots.Load(ctx, store.KeyProgression, &snap)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to decode progression snapshot, using defaults")
		return
	}
	if !found || snap.Version != model.SnapshotVersion {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Catalog entries are authoritative for definitions; the snapshot only
	// contributes unlock state and progress.
	byID := make(map[string]*model.Achievement, len(snap.Achievements))
	for _, a := range snap.Achievements {
		byID[a.ID] = a
	}
	for _, a := range s.achievements {
		if saved, ok := byID[a.ID]; ok {
			a.Unlocked = saved.Unlocked
			a.UnlockedAt = saved.UnlockedAt
			a.Progress = saved.Progress
		}
	}

	s.challenges = snap.Challenges
	s.streak = snap.Streak
	if snap.Goals != (model.Goals{}) {
		s.goals = snap.Goals
	}
	s.totalPoints = snap.TotalPoints
	s.feed = snap.Feed
}

// metricFor extracts the live value that drives an achievement category.
// Exhaustive over the category enum.
func metricFor(cat model.AchievementCategory, t model.Telemetry, streakCurrent, completedChallenges int) float64 {
	switch cat {
	case model.AchievementCategorySteps:
		return float64(t.Steps)
	case model.AchievementCategoryDistance:
		return t.Distance
	case model.AchievementCategoryStreak:
		return float64(streakCurrent)
	case model.AchievementCategoryFriends:
		return float64(t.Friends)
	case model.AchievementCategoryExploration:
		// Approximate unique-spot count from accepted path points.
		return float64(t.PathPoints / 10)
	case model.AchievementCategoryChallenges:
		return float64(completedChallenges)
	}
	return 0
}

// challengeProgress extracts the telemetry value tracked by a challenge.
func challengeProgress(metric model.ChallengeMetric, t model.Telemetry) float64 {
	switch metric {
	case model.ChallengeMetricSteps:
		return float64(t.Steps)
	case model.ChallengeMetricDistanceKm:
		return t.Distance / 1000
	case model.ChallengeMetricExploredSpots:
		return float64(t.PathPoints / 10)
	}
	return 0
}

// UpdateProgress recomputes all achievement and challenge progress from live
// telemetry. Progress is overwritten wholesale, not incremented; the streak
// and challenge-count categories read the engine's own counters instead.
func (s *Service) UpdateProgress(t model.Telemetry, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Challenges first so a completion counts toward the challenge-count
	// achievement category in the same pass.
	for _, c := range s.challenges {
		if c.Completed || c.Expired(now) {
			continue
		}
		c.Progress = challengeProgress(c.Metric, t)
		if c.Progress >= c.Requirement {
			c.Completed = true
			done := now
			c.CompletedAt = &done
			s.totalPoints += c.RewardPoints
			s.appendFeedLocked(model.ActivityTypeChallenge, "Challenge complete!",
				fmt.Sprintf("%s (+%d pts)", c.Title, c.RewardPoints), now)
			s.notify(model.ActivityTypeChallenge, "Challenge complete!", c.Title)
			s.logger.Info().Str("challenge", c.ID).Int("reward", c.RewardPoints).Msg("Challenge completed")
		}
	}

	completed := s.completedChallengesLocked()
	for _, a := range s.achievements {
		a.Progress = metricFor(a.Category, t, s.streak.Current, completed)
		if !a.Unlocked && a.Progress >= a.Requirement {
			a.Unlocked = true
			unlocked := now
			a.UnlockedAt = &unlocked
			s.totalPoints += achievementBonus
			s.appendFeedLocked(model.ActivityTypeAchievement, "Achievement unlocked!",
				fmt.Sprintf("%s (+%d pts)", a.Title, achievementBonus), now)
			s.notify(model.ActivityTypeAchievement, "Achievement unlocked!", a.Title)
			s.logger.Info().Str("achievement", a.ID).Msg("Achievement unlocked")
		}
	}

	s.dirty = true
}

// AddActivity inserts an entry at the head of the feed, truncating it to the
// most recent entries.
func (s *Service) AddActivity(kind model.ActivityType, title, description string, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendFeedLocked(kind, title, description, now)
	s.dirty = true
}

func (s *Service) appendFeedLocked(kind model.ActivityType, title, description string, now time.Time) {
	item := model.ActivityItem{
		ID:          util.ShortUUID(),
		Type:        kind,
		Title:       title,
		Description: description,
		Timestamp:   now,
	}
	s.feed = append([]model.ActivityItem{item}, s.feed...)
	if len(s.feed) > feedLimit {
		s.feed = s.feed[:feedLimit]
	}
}

func (s *Service) notify(kind model.ActivityType, title, body string) {
	if s.notifier != nil {
		s.notifier.Notify(kind, title, body)
	}
}

func (s *Service) completedChallengesLocked() int {
	count := 0
	for _, c := range s.challenges {
		if c.Completed {
			count++
		}
	}
	return count
}

// CompletedChallengeCount returns the number of completed challenges,
// including expired-but-completed history.
func (s *Service) CompletedChallengeCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.completedChallengesLocked()
}

// PurgeExpired removes challenges that expired without being completed.
// Completed challenges are kept for history.
func (s *Service) PurgeExpired(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.challenges[:0]
	removed := 0
	for _, c := range s.challenges {
		if c.Expired(now) && !c.Completed {
			removed++
			continue
		}
		kept = append(kept, c)
	}
	s.challenges = kept
	if removed > 0 {
		s.dirty = true
	}
	return removed
}

// ActiveChallengeExists reports whether any unexpired challenge of the given
// type is present.
func (s *Service) ActiveChallengeExists(ct model.ChallengeType, now time.Time) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.challenges {
		if c.Type == ct && !c.Expired(now) {
			return true
		}
	}
	return false
}

// AddChallenges registers freshly generated challenge instances.
func (s *Service) AddChallenges(cs []*model.Challenge) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.challenges = append(s.challenges, cs...)
	s.dirty = true
}

// Achievements returns a copy of the achievement list.
func (s *Service) Achievements() []*model.Achievement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Achievement, len(s.achievements))
	for i, a := range s.achievements {
		cp := *a
		out[i] = &cp
	}
	return out
}

// Challenges returns a copy of the challenge list.
func (s *Service) Challenges() []*model.Challenge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Challenge, len(s.challenges))
	for i, c := range s.challenges {
		cp := *c
		out[i] = &cp
	}
	return out
}

// Streak returns the current streak state.
func (s *Service) Streak() model.StreakData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cp := s.streak
	cp.History = append([]string(nil), s.streak.History...)
	return cp
}

// Goals returns the user's targets.
func (s *Service) Goals() model.Goals {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.goals
}

// SetGoals replaces the user's targets.
func (s *Service) SetGoals(g model.Goals) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goals = g
	s.dirty = true
}

// TotalPoints returns the accumulated reward points.
func (s *Service) TotalPoints() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalPoints
}

// Feed returns a copy of the activity feed, newest first.
func (s *Service) Feed() []model.ActivityItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.ActivityItem, len(s.feed))
	copy(out, s.feed)
	return out
}

// Flush saves the snapshot if state changed since the last flush.
func (s *Service) Flush(ctx context.Context) {
	s.mu.Lock()
	if !s.dirty {
		s.mu.Unlock()
		return
	}
	snap := model.ProgressionSnapshot{
		Version:      model.SnapshotVersion,
		Achievements: make([]*model.Achievement, len(s.achievements)),
		Challenges:   make([]*model.Challenge, len(s.challenges)),
		Streak:       s.streak,
		Goals:        s.goals,
		TotalPoints:  s.totalPoints,
		Feed:         append([]model.ActivityItem(nil), s.feed...),
		UpdatedAt:    time.Now(),
	}
	for i, a := range s.achievements {
		cp := *a
		snap.Achievements[i] = &cp
	}
	for i, c := range s.challenges {
		cp := *c
		snap.Challenges[i] = &cp
	}
	s.mu.Unlock()

	if err := s.snapshots.Save(ctx, store.KeyProgression, snap); err != nil {
		s.logger.Error().Err(err).Msg("Failed to save progression snapshot")
		return
	}

	s.mu.Lock()
	s.dirty = false
	s.mu.Unlock()
}
