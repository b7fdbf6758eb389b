package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/lanternlab/lantern/internal/server/middleware"
	"github.com/lanternlab/lantern/pkg/view"
)

func appOf(c echo.Context) *middleware.App {
	return c.(*middleware.AppContext).App
}

// pushView derives the current view, broadcasts it to connected
// clients, and returns it for the HTTP response.
func pushView(c echo.Context) view.View {
	app := appOf(c)
	v := app.Controller.View()
	app.Notifier.BroadcastView(v)
	return v
}

// upstreamErrorResponse is the shared shape for failed upstream calls:
// the previous state is retained and the client may retry.
type upstreamErrorResponse struct {
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
}
