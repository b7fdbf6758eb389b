package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// GetGraphHandler returns the fully derived view for the canvas.
func GetGraphHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, appOf(c).Controller.View())
}
