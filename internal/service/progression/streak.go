package progression

import (
	"fmt"
	"time"

	"github.com/Pragnesh-10/CampusExplorer/internal/model"
)

// CheckStreak runs the daily-continuity check. Meant to be invoked on session
// start; repeated calls within the same calendar day are no-ops by
// construction. Day difference of exactly one extends the streak, anything
// larger resets it to one.
func (s *Service) CheckStreak(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := now.Format(model.DayFormat)

	if s.streak.LastActiveDay == "" {
		s.streak.Current = 1
		if s.streak.Longest < 1 {
			s.streak.Longest = 1
		}
		s.streak.LastActiveDay = today
		s.streak.History = []string{today}
		s.dirty = true
		return
	}

	if s.streak.LastActiveDay == today {
		// Already counted today.
		return
	}

	last, err := time.Parse(model.DayFormat, s.streak.LastActiveDay)
	if err != nil {
		// Corrupt day marker: restart the streak rather than fail.
		s.logger.Warn().Str("last_active", s.streak.LastActiveDay).Msg("Unparseable streak day, restarting streak")
		s.streak.Current = 1
		s.streak.LastActiveDay = today
		s.streak.History = []string{today}
		s.dirty = true
		return
	}

	todayDate, _ := time.Parse(model.DayFormat, today)
	days := int(todayDate.Sub(last).Hours() / 24)

	switch {
	case days == 1:
		s.streak.Current++
		if s.streak.Current > s.streak.Longest {
			s.streak.Longest = s.streak.Current
		}
		s.streak.History = append(s.streak.History, today)
		s.appendFeedLocked(model.ActivityTypeStreak, "Streak extended!",
			fmt.Sprintf("%d days in a row", s.streak.Current), now)
		s.notify(model.ActivityTypeStreak, "Streak extended!",
			fmt.Sprintf("%d days in a row", s.streak.Current))
	case days > 1:
		s.streak.Current = 1
		s.streak.History = []string{today}
	default:
		// Clock went backwards; leave the streak alone.
		return
	}

	s.streak.LastActiveDay = today
	s.dirty = true
}
