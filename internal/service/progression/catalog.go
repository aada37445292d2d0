package progression

import "github.com/Pragnesh-10/CampusExplorer/internal/model"

// achievementCatalog returns the fixed achievement definitions. Persisted
// unlock state is merged over these on load; the catalog itself is the source
// of requirements and text.
func achievementCatalog() []*model.Achievement {
	mk := func(id, title, desc, icon string, req float64, cat model.AchievementCategory) *model.Achievement {
		return &model.Achievement{
			ID:          id,
			Title:       title,
			Description: desc,
			Icon:        icon,
			Requirement: req,
			Category:    cat,
		}
	}

	return []*model.Achievement{
		mk("first-steps", "First Steps", "Walk 1,000 steps", "figure.walk", 1000, model.AchievementCategorySteps),
		mk("daily-walker", "Daily Walker", "Walk 10,000 steps", "figure.walk.motion", 10000, model.AchievementCategorySteps),
		mk("step-master", "Step Master", "Walk 100,000 steps", "crown", 100000, model.AchievementCategorySteps),
		mk("first-km", "Getting Around", "Travel 1 km on campus", "location", 1000, model.AchievementCategoryDistance),
		mk("campus-wanderer", "Campus Wanderer", "Travel 10 km on campus", "map", 10000, model.AchievementCategoryDistance),
		mk("long-hauler", "Long Hauler", "Travel 50 km on campus", "road.lanes", 50000, model.AchievementCategoryDistance),
		mk("streak-3", "Warming Up", "Stay active 3 days in a row", "flame", 3, model.AchievementCategoryStreak),
		mk("streak-7", "On Fire", "Stay active 7 days in a row", "flame.fill", 7, model.AchievementCategoryStreak),
		mk("streak-30", "Unstoppable", "Stay active 30 days in a row", "bolt.fill", 30, model.AchievementCategoryStreak),
		mk("first-friend", "Better Together", "Add your first friend", "person.2", 1, model.AchievementCategoryFriends),
		mk("social-circle", "Social Circle", "Add 5 friends", "person.3", 5, model.AchievementCategoryFriends),
		mk("scout", "Scout", "Discover 50 unique spots", "binoculars", 50, model.AchievementCategoryExploration),
		mk("cartographer", "Cartographer", "Discover 200 unique spots", "map.fill", 200, model.AchievementCategoryExploration),
		mk("challenger", "Challenger", "Complete 5 challenges", "checkmark.seal", 5, model.AchievementCategoryChallenges),
		mk("challenge-veteran", "Challenge Veteran", "Complete 20 challenges", "rosette", 20, model.AchievementCategoryChallenges),
	}
}
