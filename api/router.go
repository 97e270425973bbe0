// api/router.go
package api

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/filatrack/filatrack/api/handlers"
	"github.com/filatrack/filatrack/store"
)

// SetupRouter sets up the API routes
func SetupRouter(st *store.Store, log zerolog.Logger) *gin.Engine {
	router := gin.New()

	// Create the handler
	handler := handlers.NewHandler(st, log)

	// Apply middleware
	router.Use(handler.RequestLogger(), gin.Recovery())

	// API group
	api := router.Group("/api/v1")
	{
		// Filament endpoints
		api.POST("/filaments", handler.CreateFilament)
		api.GET("/filaments", handler.GetFilaments)
		api.GET("/filaments/:id", handler.GetFilament)
		api.PUT("/filaments/:id", handler.UpdateFilament)
		api.DELETE("/filaments/:id", handler.DeleteFilament)
		api.GET("/filaments/:id/qr", handler.GetFilamentQR)

		// Printed part endpoints
		api.POST("/parts", handler.CreatePrintedPart)
		api.GET("/parts", handler.GetPrintedParts)
		api.GET("/parts/:id", handler.GetPrintedPart)
		api.PUT("/parts/:id", handler.UpdatePrintedPart)
		api.DELETE("/parts/:id", handler.DeletePrintedPart)

		// Project endpoints
		api.POST("/projects", handler.CreateProject)
		api.GET("/projects", handler.GetProjects)
		api.GET("/projects/:id", handler.GetProject)
		api.PUT("/projects/:id", handler.UpdateProject)
		api.DELETE("/projects/:id", handler.DeleteProject)
		api.GET("/projects/:id/cost", handler.GetProjectCost)

		// Derived stats endpoints
		api.GET("/stats/summary", handler.GetSummary)
		api.GET("/stats/usage", handler.GetUsage)
		api.GET("/stats/recent", handler.GetRecentParts)
		api.GET("/stats/most-used", handler.GetMostUsed)
		api.GET("/stats/favorites", handler.GetFavorites)

		// Scan adapters
		api.POST("/scan/text", handler.ScanText)
		api.POST("/scan/qr", handler.ScanQR)
	}

	// Add a sync status endpoint
	router.GET("/status", func(c *gin.Context) {
		snap := st.Snapshot()
		c.JSON(200, gin.H{
			"syncing":   st.Syncing(),
			"loading":   st.Loading(),
			"filaments": len(snap.Filaments),
			"parts":     len(snap.PrintedParts),
			"projects":  len(snap.Projects),
		})
	})

	return router
}
