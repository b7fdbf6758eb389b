package server

import (
	"github.com/lanternlab/lantern/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, hub *Hub) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	e.GET("/ws", hub.Handler)

	apiRoutes := e.Group("/api")

	// Graph routes
	apiRoutes.GET("/graph", routes.GetGraphHandler)
	apiRoutes.POST("/graph/refresh", routes.RefreshGraphHandler)

	// View state routes
	apiRoutes.POST("/view/mode", routes.SetModeHandler)
	apiRoutes.POST("/viewport", routes.SetViewportHandler)
	apiRoutes.POST("/selection", routes.SelectNodeHandler)
	apiRoutes.DELETE("/selection", routes.ClearSelectionHandler)
	apiRoutes.POST("/drag", routes.DragNodeHandler)

	// Filter and focus routes
	apiRoutes.POST("/filters", routes.SetFiltersHandler)
	apiRoutes.POST("/search", routes.SearchHandler)
	apiRoutes.POST("/focus", routes.SetFocusHandler)

	// Discovery routes
	apiRoutes.GET("/entities", routes.GetEntitiesHandler)
	apiRoutes.POST("/discovery", routes.DiscoverHandler)
	apiRoutes.GET("/hypotheses", routes.GetHypothesesHandler)
	apiRoutes.DELETE("/hypotheses", routes.ClearHypothesesHandler)
	apiRoutes.POST("/hypotheses/:id/select", routes.SelectHypothesisHandler)

	// Export and input routes
	apiRoutes.POST("/export", routes.ExportGraphHandler)
	apiRoutes.POST("/keys", routes.KeyPressHandler)
}
