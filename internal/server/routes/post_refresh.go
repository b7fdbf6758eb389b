package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RefreshGraphHandler replaces the snapshot from upstream: the full
// overview by default, or a resource neighborhood when resourceId is
// set. A failed refresh keeps the previous snapshot.
func RefreshGraphHandler(c echo.Context) error {
	type refreshBody struct {
		Threshold  float64 `json:"threshold" validate:"gte=0,lte=1"`
		ResourceID string  `json:"resourceId"`
	}

	data := new(refreshBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}

	app := appOf(c)
	ctx := c.Request().Context()

	var err error
	if data.ResourceID != "" {
		err = app.Controller.LoadNeighbors(ctx, data.ResourceID)
	} else {
		err = app.Controller.RefreshOverview(ctx, data.Threshold)
	}
	if err != nil {
		return c.JSON(http.StatusBadGateway, upstreamErrorResponse{
			Message:   "Failed to refresh graph, previous state retained",
			Retryable: true,
		})
	}

	return c.JSON(http.StatusOK, pushView(c))
}
