package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ClearSelectionHandler clears the current selection.
func ClearSelectionHandler(c echo.Context) error {
	appOf(c).Controller.ClearSelection()
	return c.JSON(http.StatusOK, pushView(c))
}
