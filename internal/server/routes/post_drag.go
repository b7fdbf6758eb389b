package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lanternlab/lantern/pkg/graph"
)

// DragNodeHandler moves a node under user control. The dragged position
// overrides the layout engine until the next full re-layout.
func DragNodeHandler(c echo.Context) error {
	type dragBody struct {
		NodeID   string         `json:"nodeId" validate:"required"`
		Position graph.Position `json:"position"`
	}

	data := new(dragBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}

	controller := appOf(c).Controller
	if err := controller.BeginDrag(data.NodeID); err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"message": err.Error()})
	}
	if err := controller.DragTo(data.NodeID, data.Position); err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"message": err.Error()})
	}

	return c.JSON(http.StatusOK, pushView(c))
}
