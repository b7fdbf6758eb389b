package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lanternlab/lantern/internal/keymap"
)

// KeyPressHandler resolves a key press through the keymap and applies
// the bound action. Actions that only affect client-side chrome, like
// toggling the filter panel, are echoed back for the client to handle.
func KeyPressHandler(c echo.Context) error {
	type keyBody struct {
		Key string `json:"key" validate:"required"`
	}

	type keyResponse struct {
		Action keymap.Action `json:"action,omitempty"`
		Bound  bool          `json:"bound"`
	}

	data := new(keyBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}

	app := appOf(c)
	action, ok := app.Keymap.Lookup(data.Key)
	if !ok {
		return c.JSON(http.StatusOK, keyResponse{Bound: false})
	}

	switch action {
	case keymap.ActionZoomIn:
		app.Controller.ZoomIn()
	case keymap.ActionZoomOut:
		app.Controller.ZoomOut()
	case keymap.ActionResetView:
		app.Controller.ResetView()
	case keymap.ActionClearSelection:
		app.Controller.ClearSelection()
	case keymap.ActionToggleFocus:
		app.Controller.ToggleFocus()
	case keymap.ActionToggleFilters:
		// Panel visibility lives in the client.
	}

	app.Notifier.BroadcastView(app.Controller.View())
	return c.JSON(http.StatusOK, keyResponse{Action: action, Bound: true})
}
