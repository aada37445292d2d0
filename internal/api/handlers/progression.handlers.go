package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Pragnesh-10/CampusExplorer/internal/model"
	"github.com/Pragnesh-10/CampusExplorer/internal/service/engine"
	"github.com/Pragnesh-10/CampusExplorer/internal/util"
)

// SetupProgressionHandlers registers the reward engine endpoints
func SetupProgressionHandlers(router *gin.RouterGroup, e *engine.Engine) {
	router.GET("/stats", getStats(e))
	router.GET("/achievements", getAchievements(e))
	router.GET("/challenges", getChallenges(e))
	router.GET("/streak", getStreak(e))
	router.GET("/feed", getFeed(e))
	router.GET("/goals", getGoals(e))
	router.PUT("/goals", setGoals(e))
	router.POST("/friends/code", newFriendCode())
}

func getStats(e *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, e.Stats())
	}
}

func getAchievements(e *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"achievements": e.Progression().Achievements()})
	}
}

func getChallenges(e *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"challenges": e.Progression().Challenges()})
	}
}

func getStreak(e *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, e.Progression().Streak())
	}
}

func getFeed(e *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"feed": e.Progression().Feed()})
	}
}

func getGoals(e *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, e.Progression().Goals())
	}
}

func setGoals(e *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var g model.Goals
		if err := c.ShouldBindJSON(&g); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if g.DailySteps < 0 || g.WeeklySteps < 0 || g.DailyDistance < 0 || g.WeeklyDistance < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "goals must not be negative"})
			return
		}
		e.SetGoals(c.Request.Context(), g)
		c.JSON(http.StatusOK, gin.H{"status": "success"})
	}
}

// newFriendCode hands out a short random identifier. Friend codes carry no
// identity; they are opaque tokens for the local-only friend list.
func newFriendCode() gin.HandlerFunc {
	return func(c *gin.Context) {
		code, err := util.GenerateUniqueID(6)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"code": code})
	}
}
