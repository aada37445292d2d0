package api

import (
	"github.com/gin-gonic/gin"

	routes "github.com/Pragnesh-10/CampusExplorer/internal/api/handlers"
	"github.com/Pragnesh-10/CampusExplorer/internal/service/engine"
)

// SetupRouter initializes all application routes
func SetupRouter(r *gin.Engine, e *engine.Engine) {
	// API group
	api := r.Group("/api")

	// Setup main handlers
	routes.SetupMainHandlers(r.Group(""))

	// Setup feature handlers
	routes.SetupTrackingHandlers(api, e)
	routes.SetupPOIHandlers(api, e)
	routes.SetupProgressionHandlers(api, e)
}
