package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Pragnesh-10/CampusExplorer/internal/model"
	"github.com/Pragnesh-10/CampusExplorer/internal/service/engine"
	"github.com/Pragnesh-10/CampusExplorer/internal/service/poi"
)

// SetupPOIHandlers registers the point-of-interest endpoints
func SetupPOIHandlers(router *gin.RouterGroup, e *engine.Engine) {
	poiGroup := router.Group("/pois")

	poiGroup.GET("", listPOIs(e))
	poiGroup.POST("", addPOI(e))
	poiGroup.DELETE("/:id", removePOI(e))
}

func listPOIs(e *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"pois": e.POIs().All()})
	}
}

// Lat/Lng are pointers so a 0.0 coordinate binds instead of counting as
// missing.
type addPOIRequest struct {
	Name  string   `json:"name" binding:"required"`
	Notes string   `json:"notes"`
	Lat   *float64 `json:"lat" binding:"required"`
	Lng   *float64 `json:"lng" binding:"required"`
}

func addPOI(e *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addPOIRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		p, err := e.AddCustomPOI(c.Request.Context(), req.Name, req.Notes,
			model.Coordinate{Lat: *req.Lat, Lng: *req.Lng})
		if err != nil {
			if errors.Is(err, engine.ErrInvalidCoordinate) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "coordinate out of range"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"poi": p})
	}
}

func removePOI(e *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := e.RemovePOI(c.Request.Context(), c.Param("id"))
		switch {
		case errors.Is(err, poi.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "poi not found"})
		case errors.Is(err, poi.ErrNotCustom):
			c.JSON(http.StatusForbidden, gin.H{"error": "only custom POIs can be removed"})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusOK, gin.H{"status": "success"})
		}
	}
}
