package routes

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lanternlab/lantern/pkg/discovery"
)

// DiscoverHandler runs hypothesis discovery between two entities. A
// newer request supersedes any still in flight.
func DiscoverHandler(c echo.Context) error {
	type discoveryBody struct {
		EntityA string `json:"entityA" validate:"required"`
		EntityC string `json:"entityC" validate:"required"`
	}

	data := new(discoveryBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}

	err := appOf(c).Controller.Discover(c.Request().Context(), data.EntityA, data.EntityC)
	if errors.Is(err, discovery.ErrSameEntity) || errors.Is(err, discovery.ErrMissingEntity) {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": err.Error()})
	}
	if err != nil {
		return c.JSON(http.StatusBadGateway, upstreamErrorResponse{
			Message:   "Hypothesis discovery failed",
			Retryable: true,
		})
	}

	return c.JSON(http.StatusOK, pushView(c))
}
