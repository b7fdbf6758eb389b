package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lanternlab/lantern/pkg/discovery"
	"github.com/lanternlab/lantern/pkg/view"
)

// GetHypothesesHandler returns the discovery phase and the hypothesis
// side list with per-item navigability.
func GetHypothesesHandler(c echo.Context) error {
	type hypothesesResponse struct {
		Phase      discovery.Phase       `json:"phase"`
		Hypotheses []view.HypothesisItem `json:"hypotheses"`
	}

	v := appOf(c).Controller.View()
	return c.JSON(http.StatusOK, hypothesesResponse{
		Phase:      v.Phase,
		Hypotheses: v.Hypotheses,
	})
}
