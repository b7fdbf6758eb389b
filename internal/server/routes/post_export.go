package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lanternlab/lantern/internal/export"
	"github.com/lanternlab/lantern/pkg/logger"
)

// ExportGraphHandler writes the current view as a JSON, SVG, or PNG
// artifact and returns its path. An export failure is a notification,
// never fatal to the view.
func ExportGraphHandler(c echo.Context) error {
	type exportBody struct {
		Format string `json:"format" validate:"required,oneof=json svg png"`
	}

	type exportResponse struct {
		Message string `json:"message"`
		Path    string `json:"path,omitempty"`
	}

	data := new(exportBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, exportResponse{Message: "Invalid request body"})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, exportResponse{Message: "Invalid request body"})
	}

	app := appOf(c)
	path, err := app.Exporter.Export(app.Controller.View(), export.Format(data.Format))
	if err != nil {
		logger.Error("[Export] Export failed", "format", data.Format, "err", err)
		return c.JSON(http.StatusInternalServerError, exportResponse{Message: "Export failed"})
	}

	return c.JSON(http.StatusOK, exportResponse{Message: "Export written", Path: path})
}
