package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lanternlab/lantern/pkg/graph"
)

// SetViewportHandler applies camera changes: zoom (clamped), pan, or a
// full reset.
func SetViewportHandler(c echo.Context) error {
	type viewportBody struct {
		Zoom   *float64        `json:"zoom"`
		Center *graph.Position `json:"center"`
		Reset  bool            `json:"reset"`
	}

	data := new(viewportBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}

	controller := appOf(c).Controller
	if data.Reset {
		controller.ResetView()
	} else {
		if data.Zoom != nil {
			controller.SetZoom(*data.Zoom)
		}
		if data.Center != nil {
			controller.Pan(*data.Center)
		}
	}

	return c.JSON(http.StatusOK, pushView(c))
}
