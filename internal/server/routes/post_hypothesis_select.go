package routes

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lanternlab/lantern/pkg/view"
)

// SelectHypothesisHandler navigates to a hypothesis: the view switches
// to the hypothesis-path mode and the first path node is selected.
func SelectHypothesisHandler(c echo.Context) error {
	id := c.Param("id")

	err := appOf(c).Controller.SelectHypothesis(id)
	if errors.Is(err, view.ErrNotNavigable) {
		return c.JSON(http.StatusConflict, map[string]string{"message": err.Error()})
	}
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"message": err.Error()})
	}

	return c.JSON(http.StatusOK, pushView(c))
}
