package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/Pragnesh-10/CampusExplorer/internal/model"
	"github.com/Pragnesh-10/CampusExplorer/internal/service/engine"
)

// SetupTrackingHandlers registers the location and exploration endpoints
func SetupTrackingHandlers(router *gin.RouterGroup, e *engine.Engine) {
	router.POST("/location", ingestLocation(e))
	router.POST("/telemetry", updateTelemetry(e))
	router.POST("/session/start", startSession(e))

	router.GET("/path", getPath(e))
	router.DELETE("/path", resetPath(e))

	router.GET("/exploration", getExploration(e))
	router.GET("/exploration/heatmap", getHeatmap(e))
	router.DELETE("/exploration", resetExploration(e))
}

// Pointer fields so required-binding still rejects absent values without
// treating a legitimate 0.0 latitude or longitude as missing.
type locationRequest struct {
	Lat *float64 `json:"lat" binding:"required"`
	Lng *float64 `json:"lng" binding:"required"`
}

func ingestLocation(e *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req locationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		fix := model.Coordinate{Lat: *req.Lat, Lng: *req.Lng}
		if err := e.HandleLocationFix(c.Request.Context(), fix); err != nil {
			if errors.Is(err, engine.ErrInvalidCoordinate) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "coordinate out of range"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "success"})
	}
}

type telemetryRequest struct {
	Steps   *int `json:"steps"`
	Friends *int `json:"friends"`
}

func updateTelemetry(e *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req telemetryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		steps, friends := -1, -1
		if req.Steps != nil {
			steps = *req.Steps
		}
		if req.Friends != nil {
			friends = *req.Friends
		}
		e.UpdateTelemetry(c.Request.Context(), steps, friends)

		c.JSON(http.StatusOK, gin.H{"status": "success"})
	}
}

func startSession(e *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		e.StartSession(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"status": "success"})
	}
}

func getPath(e *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"points":         e.Path().Points(),
			"total_distance": e.Path().TotalDistance(),
			"point_count":    e.Path().PointCount(),
		})
	}
}

func resetPath(e *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		e.ResetPath(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Path reset"})
	}
}

func getExploration(e *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		exp := e.Exploration()
		c.JSON(http.StatusOK, gin.H{
			"percentage":   exp.ExplorationPercentage(),
			"total_area":   exp.TotalArea(),
			"region_count": len(exp.Regions()),
			"heat_cells":   len(exp.HeatPoints()),
		})
	}
}

// getHeatmap exports the heat map as a GeoJSON FeatureCollection for
// external renderers.
func getHeatmap(e *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		fc := geojson.NewFeatureCollection()
		for _, hp := range e.Exploration().HeatPoints() {
			f := geojson.NewFeature(orb.Point{hp.Center.Lng, hp.Center.Lat})
			f.Properties["cell"] = hp.Cell
			f.Properties["intensity"] = hp.Intensity
			f.Properties["first_seen"] = hp.FirstSeen
			fc.Append(f)
		}
		c.JSON(http.StatusOK, fc)
	}
}

func resetExploration(e *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		e.ResetExploration(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Exploration reset"})
	}
}
