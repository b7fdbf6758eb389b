package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lanternlab/lantern/pkg/graph"
)

// GetEntitiesHandler lists the entities available as discovery
// endpoints, straight from upstream.
func GetEntitiesHandler(c echo.Context) error {
	type entitiesResponse struct {
		Entities []graph.Node `json:"entities"`
	}

	entities, err := appOf(c).Upstream.GetEntities(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusBadGateway, upstreamErrorResponse{
			Message:   "Failed to list entities",
			Retryable: true,
		})
	}

	return c.JSON(http.StatusOK, entitiesResponse{Entities: entities})
}
