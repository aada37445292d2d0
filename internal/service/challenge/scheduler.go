// Package challenge generates time-boxed daily and weekly challenge
// instances and expires stale ones.
package challenge

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/Pragnesh-10/CampusExplorer/internal/model"
	"github.com/Pragnesh-10/CampusExplorer/internal/service/progression"
	"github.com/Pragnesh-10/CampusExplorer/internal/util"
)

// Scheduler refreshes the challenge collection owned by the progression
// engine. Designed to run on every session start; the existence checks make
// repeated calls within the same day or week produce no duplicates.
type Scheduler struct {
	progression *progression.Service
	logger      zerolog.Logger
}

func NewScheduler(p *progression.Service, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		progression: p,
		logger:      logger.With().Str("service", "challenge").Logger(),
	}
}

// GenerateDailyChallenges purges expired incomplete challenges, then
// instantiates the daily catalog when no unexpired daily challenge exists and
// the weekly catalog when no unexpired weekly challenge exists.
func (s *Scheduler) GenerateDailyChallenges(now time.Time) {
	if removed := s.progression.PurgeExpired(now); removed > 0 {
		s.logger.Info().Int("removed", removed).Msg("Purged expired challenges")
	}

	if !s.progression.ActiveChallengeExists(model.ChallengeTypeDaily, now) {
		daily := instantiate(dailyCatalog(), model.ChallengeTypeDaily, startOfTomorrow(now))
		s.progression.AddChallenges(daily)
		s.logger.Info().Int("count", len(daily)).Msg("Generated daily challenges")
	}

	if !s.progression.ActiveChallengeExists(model.ChallengeTypeWeekly, now) {
		weekly := instantiate(weeklyCatalog(), model.ChallengeTypeWeekly, startOfWeek(now).AddDate(0, 0, 7))
		s.progression.AddChallenges(weekly)
		s.logger.Info().Int("count", len(weekly)).Msg("Generated weekly challenges")
	}
}

// startOfTomorrow returns midnight of the next calendar day in now's
// location.
func startOfTomorrow(now time.Time) time.Time {
	year, month, day := now.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
}

// startOfWeek returns midnight of the current week's Monday.
func startOfWeek(now time.Time) time.Time {
	year, month, day := now.Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
	weekday := int(midnight.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday belongs to the week that started last Monday
	}
	return midnight.AddDate(0, 0, 1-weekday)
}

type definition struct {
	title       string
	description string
	icon        string
	requirement float64
	metric      model.ChallengeMetric
	reward      int
}

func dailyCatalog() []definition {
	return []definition{
		{"Daily Stepper", "Walk 5,000 steps today", "figure.walk", 5000, model.ChallengeMetricSteps, 50},
		{"Daily Mover", "Cover 2 km today", "location.north.line", 2, model.ChallengeMetricDistanceKm, 50},
		{"Daily Scout", "Visit 5 unique spots today", "binoculars", 5, model.ChallengeMetricExploredSpots, 75},
	}
}

func weeklyCatalog() []definition {
	return []definition{
		{"Weekly Warrior", "Walk 35,000 steps this week", "figure.run", 35000, model.ChallengeMetricSteps, 200},
		{"Distance Devotee", "Cover 15 km this week", "map", 15, model.ChallengeMetricDistanceKm, 200},
		{"Campus Surveyor", "Visit 30 unique spots this week", "map.fill", 30, model.ChallengeMetricExploredSpots, 250},
	}
}

func instantiate(defs []definition, ct model.ChallengeType, expiresAt time.Time) []*model.Challenge {
	out := make([]*model.Challenge, len(defs))
	for i, d := range defs {
		out[i] = &model.Challenge{
			ID:           util.ShortUUID(),
			Title:        d.title,
			Description:  d.description,
			Icon:         d.icon,
			Requirement:  d.requirement,
			Type:         ct,
			Metric:       d.metric,
			RewardPoints: d.reward,
			ExpiresAt:    expiresAt,
		}
	}
	return out
}
