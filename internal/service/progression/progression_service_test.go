package progression_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pragnesh-10/CampusExplorer/internal/model"
	"github.com/Pragnesh-10/CampusExplorer/internal/service/progression"
	"github.com/Pragnesh-10/CampusExplorer/internal/store"
)

type recordingNotifier struct {
	sent []string
}

func (n *recordingNotifier) Notify(kind model.ActivityType, title, body string) {
	n.sent = append(n.sent, fmt.Sprintf("%s:%s", kind, body))
}

func newService() *progression.Service {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	return progression.NewService(store.NewMemoryStore(), nil, logger)
}

func findAchievement(t *testing.T, s *progression.Service, id string) *model.Achievement {
	t.Helper()
	for _, a := range s.Achievements() {
		if a.ID == id {
			return a
		}
	}
	t.Fatalf("achievement %s not in catalog", id)
	return nil
}

func TestUpdateProgress_UnlocksOnThresholdOnly(t *testing.T) {
	s := newService()
	now := time.Now()

	// Below the 1000-step requirement: no unlock.
	s.UpdateProgress(model.Telemetry{Steps: 500}, now)
	a := findAchievement(t, s, "first-steps")
	assert.False(t, a.Unlocked)
	assert.Nil(t, a.UnlockedAt)
	assert.Equal(t, 500.0, a.Progress)
	assert.Equal(t, 0, s.TotalPoints())

	// Crossing the requirement unlocks and awards the bonus.
	s.UpdateProgress(model.Telemetry{Steps: 1500}, now)
	a = findAchievement(t, s, "first-steps")
	assert.True(t, a.Unlocked)
	require.NotNil(t, a.UnlockedAt)
	assert.Equal(t, 100, s.TotalPoints())
}

func TestUpdateProgress_AtMostOnceUnlock(t *testing.T) {
	s := newService()
	now := time.Now()

	for i := 0; i < 10; i++ {
		s.UpdateProgress(model.Telemetry{Steps: 5000}, now)
	}

	// One unlock event, one +100 award, regardless of repetition.
	assert.Equal(t, 100, s.TotalPoints())
	unlockEntries := 0
	for _, item := range s.Feed() {
		if item.Type == model.ActivityTypeAchievement {
			unlockEntries++
		}
	}
	assert.Equal(t, 1, unlockEntries)

	first := findAchievement(t, s, "first-steps")
	stamp := *first.UnlockedAt
	s.UpdateProgress(model.Telemetry{Steps: 9999}, now.Add(time.Hour))
	assert.Equal(t, stamp, *findAchievement(t, s, "first-steps").UnlockedAt)
}

func TestUpdateProgress_ProgressRecomputedWholesale(t *testing.T) {
	s := newService()
	now := time.Now()

	s.UpdateProgress(model.Telemetry{Steps: 800}, now)
	assert.Equal(t, 800.0, findAchievement(t, s, "first-steps").Progress)

	// Lower telemetry lowers progress; unlock state would still be sticky.
	s.UpdateProgress(model.Telemetry{Steps: 300}, now)
	assert.Equal(t, 300.0, findAchievement(t, s, "first-steps").Progress)
}

func TestUpdateProgress_CategoryDispatch(t *testing.T) {
	s := newService()
	now := time.Now()

	tele := model.Telemetry{
		Steps:      100,
		Distance:   2500, // meters
		PathPoints: 120,  // -> 12 explored spots
		Friends:    2,
	}
	s.UpdateProgress(tele, now)

	assert.Equal(t, 100.0, findAchievement(t, s, "first-steps").Progress)
	assert.Equal(t, 2500.0, findAchievement(t, s, "first-km").Progress)
	assert.Equal(t, 12.0, findAchievement(t, s, "scout").Progress)
	assert.Equal(t, 2.0, findAchievement(t, s, "first-friend").Progress)
	assert.True(t, findAchievement(t, s, "first-km").Unlocked)
	assert.True(t, findAchievement(t, s, "first-friend").Unlocked)
}

func makeChallenge(metric model.ChallengeMetric, req float64, reward int, expiresAt time.Time) *model.Challenge {
	return &model.Challenge{
		ID:           "test-" + string(metric),
		Title:        "Test Challenge",
		Requirement:  req,
		Type:         model.ChallengeTypeDaily,
		Metric:       metric,
		RewardPoints: reward,
		ExpiresAt:    expiresAt,
	}
}

func TestUpdateProgress_ChallengeCompletesExactlyOnce(t *testing.T) {
	s := newService()
	now := time.Now()
	s.AddChallenges([]*model.Challenge{
		makeChallenge(model.ChallengeMetricSteps, 1000, 50, now.Add(24*time.Hour)),
	})

	for i := 0; i < 5; i++ {
		s.UpdateProgress(model.Telemetry{Steps: 1200}, now)
	}

	// 50 for the challenge, 100 for the first-steps achievement.
	assert.Equal(t, 150, s.TotalPoints())
	assert.Equal(t, 1, s.CompletedChallengeCount())

	cs := s.Challenges()
	require.Len(t, cs, 1)
	assert.True(t, cs[0].Completed)
	assert.NotNil(t, cs[0].CompletedAt)
}

func TestUpdateProgress_ChallengeMetricDispatch(t *testing.T) {
	s := newService()
	now := time.Now()
	s.AddChallenges([]*model.Challenge{
		makeChallenge(model.ChallengeMetricDistanceKm, 2, 50, now.Add(24*time.Hour)),
		makeChallenge(model.ChallengeMetricExploredSpots, 5, 75, now.Add(24*time.Hour)),
	})

	// 2500 m is 2.5 km; 80 path points are 8 spots.
	s.UpdateProgress(model.Telemetry{Distance: 2500, PathPoints: 80}, now)

	for _, c := range s.Challenges() {
		assert.True(t, c.Completed, "challenge %s should be complete", c.ID)
	}
}

func TestUpdateProgress_ExpiredChallengeIgnored(t *testing.T) {
	s := newService()
	now := time.Now()
	s.AddChallenges([]*model.Challenge{
		makeChallenge(model.ChallengeMetricSteps, 1000, 50, now.Add(-time.Hour)),
	})

	s.UpdateProgress(model.Telemetry{Steps: 5000}, now)

	assert.Equal(t, 0, s.CompletedChallengeCount())
}

func TestUpdateProgress_ChallengeCountFeedsAchievements(t *testing.T) {
	s := newService()
	now := time.Now()

	var cs []*model.Challenge
	for i := 0; i < 5; i++ {
		c := makeChallenge(model.ChallengeMetricSteps, 100, 10, now.Add(24*time.Hour))
		c.ID = fmt.Sprintf("c-%d", i)
		cs = append(cs, c)
	}
	s.AddChallenges(cs)

	// Completing five challenges in this pass satisfies the 5-challenge
	// achievement in the same call.
	s.UpdateProgress(model.Telemetry{Steps: 150}, now)

	assert.Equal(t, 5, s.CompletedChallengeCount())
	assert.True(t, findAchievement(t, s, "challenger").Unlocked)
}

func TestNotifier_ReceivesUnlocks(t *testing.T) {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	n := &recordingNotifier{}
	s := progression.NewService(store.NewMemoryStore(), n, logger)

	s.UpdateProgress(model.Telemetry{Steps: 1500}, time.Now())

	require.NotEmpty(t, n.sent)
	assert.Contains(t, n.sent[0], "achievement:")
}

func TestAddActivity_FeedBoundedNewestFirst(t *testing.T) {
	s := newService()
	base := time.Now()

	for i := 0; i < 60; i++ {
		s.AddActivity(model.ActivityTypeSocial, fmt.Sprintf("entry %d", i), "", base.Add(time.Duration(i)*time.Second))
	}

	feed := s.Feed()
	require.Len(t, feed, 50)
	assert.Equal(t, "entry 59", feed[0].Title)
	assert.Equal(t, "entry 10", feed[49].Title)
}

func TestPurgeExpired_KeepsCompletedHistory(t *testing.T) {
	s := newService()
	now := time.Now()
	done := makeChallenge(model.ChallengeMetricSteps, 100, 10, now.Add(-time.Hour))
	done.ID = "done"
	done.Completed = true
	stale := makeChallenge(model.ChallengeMetricSteps, 100, 10, now.Add(-time.Hour))
	stale.ID = "stale"
	active := makeChallenge(model.ChallengeMetricSteps, 100, 10, now.Add(time.Hour))
	active.ID = "active"
	s.AddChallenges([]*model.Challenge{done, stale, active})

	removed := s.PurgeExpired(now)

	assert.Equal(t, 1, removed)
	ids := make([]string, 0)
	for _, c := range s.Challenges() {
		ids = append(ids, c.ID)
	}
	assert.ElementsMatch(t, []string{"done", "active"}, ids)
}

func TestSetGoals(t *testing.T) {
	s := newService()
	g := model.Goals{DailySteps: 12000, WeeklySteps: 84000, DailyDistance: 6000, WeeklyDistance: 42000}

	s.SetGoals(g)

	assert.Equal(t, g, s.Goals())
}

func TestFlushAndLoad_PreservesUnlockState(t *testing.T) {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	snapshots := store.NewMemoryStore()

	s := progression.NewService(snapshots, nil, logger)
	s.UpdateProgress(model.Telemetry{Steps: 1500}, time.Now())
	s.Flush(context.Background())

	restored := progression.NewService(snapshots, nil, logger)
	restored.Load(context.Background())

	assert.True(t, findAchievement(t, restored, "first-steps").Unlocked)
	assert.Equal(t, 100, restored.TotalPoints())

	// Reloading must not re-fire the unlock.
	restored.UpdateProgress(model.Telemetry{Steps: 2000}, time.Now())
	assert.Equal(t, 100, restored.TotalPoints())
}
