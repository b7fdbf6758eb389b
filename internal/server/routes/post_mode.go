package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lanternlab/lantern/pkg/view"
)

// SetModeHandler switches the visualization mode.
func SetModeHandler(c echo.Context) error {
	type modeBody struct {
		Mode string `json:"mode" validate:"required"`
	}

	data := new(modeBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}

	if err := appOf(c).Controller.SetMode(view.Mode(data.Mode)); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": err.Error()})
	}

	return c.JSON(http.StatusOK, pushView(c))
}
