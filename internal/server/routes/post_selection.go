package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// SelectNodeHandler selects a node; at most one node is selected at a
// time.
func SelectNodeHandler(c echo.Context) error {
	type selectBody struct {
		NodeID string `json:"nodeId" validate:"required"`
	}

	data := new(selectBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}

	if err := appOf(c).Controller.Select(data.NodeID); err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"message": err.Error()})
	}

	return c.JSON(http.StatusOK, pushView(c))
}
