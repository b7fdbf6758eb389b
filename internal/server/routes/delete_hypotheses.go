package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ClearHypothesesHandler discards the current hypothesis set and resets
// the discovery workflow.
func ClearHypothesesHandler(c echo.Context) error {
	appOf(c).Controller.ClearHypotheses()
	return c.JSON(http.StatusOK, pushView(c))
}
