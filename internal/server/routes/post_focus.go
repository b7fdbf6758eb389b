package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// SetFocusHandler enables, disables, or toggles focus mode.
func SetFocusHandler(c echo.Context) error {
	type focusBody struct {
		Enabled *bool `json:"enabled"`
	}

	data := new(focusBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}

	controller := appOf(c).Controller
	if data.Enabled != nil {
		controller.SetFocusEnabled(*data.Enabled)
	} else {
		controller.ToggleFocus()
	}

	return c.JSON(http.StatusOK, pushView(c))
}
