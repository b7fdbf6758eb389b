package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/lanternlab/lantern/internal/export"
	"github.com/lanternlab/lantern/internal/keymap"
	"github.com/lanternlab/lantern/internal/upstream"
	"github.com/lanternlab/lantern/pkg/view"
)

// Notifier pushes derived views to connected canvas clients.
type Notifier interface {
	BroadcastView(v view.View)
}

type App struct {
	Controller *view.Controller
	Exporter   *export.Exporter
	Upstream   upstream.Service
	Keymap     *keymap.Keymap
	Notifier   Notifier
}

type AppContext struct {
	echo.Context
	App *App
}

func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			return next(&AppContext{c, app})
		}
	}
}
