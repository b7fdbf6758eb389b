package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mid "github.com/lanternlab/lantern/internal/server/middleware"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/lanternlab/lantern/internal/export"
	"github.com/lanternlab/lantern/internal/keymap"
	"github.com/lanternlab/lantern/internal/upstream"
	"github.com/lanternlab/lantern/internal/util"
	"github.com/lanternlab/lantern/pkg/filter"
	"github.com/lanternlab/lantern/pkg/logger"
	"github.com/lanternlab/lantern/pkg/view"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

func Init() {
	e := echo.New()
	e.Validator = &CustomValidator{validator: validator.New()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := upstream.NewClient(upstream.NewClientParams{
		BaseURL:           util.GetEnvString("UPSTREAM_URL", "http://localhost:9000"),
		RequestsPerSecond: util.GetEnvNumeric("UPSTREAM_RPS", 10),
		MaxTries:          int(util.GetEnvNumeric("UPSTREAM_MAX_TRIES", 3)),
	})
	if err != nil {
		logger.Fatal("Failed to create upstream client", "err", err)
	}

	bindings, err := keymap.LoadFile(util.GetEnvString("KEYMAP_FILE", "keymap.yaml"))
	if err != nil {
		logger.Fatal("Failed to load keymap", "err", err)
	}

	controller := view.NewController(view.Params{
		Source:    client,
		Discovery: client,
		Scheduler: filter.TimerScheduler{},
	})

	if err := controller.RefreshOverview(ctx, util.GetEnvNumeric("OVERVIEW_THRESHOLD", 0)); err != nil {
		logger.Warn("[Server] Initial snapshot load failed, starting empty", "err", err)
	}

	hub := NewHub()
	app := &mid.App{
		Controller: controller,
		Exporter:   export.NewExporter(util.GetEnvString("EXPORT_DIR", "exports")),
		Upstream:   client,
		Keymap:     bindings,
		Notifier:   hub,
	}

	e.Use(mid.AppContextMiddleware(app))
	e.Use(middleware.CORS())
	e.Use(middleware.Recover())

	RegisterRoutes(e, hub)

	go func() {
		port := util.GetEnv("PORT")
		if port == "" {
			port = "8080"
		}
		logger.Info("Starting server", "port", port)
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
}
