package routes

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lanternlab/lantern/pkg/graph"
)

// SetFiltersHandler replaces the active filter facets.
func SetFiltersHandler(c echo.Context) error {
	type filtersBody struct {
		ResourceTypes []string `json:"resourceTypes"`
		MinQuality    float64  `json:"minQuality" validate:"gte=0,lte=1"`
		DateRange     []string `json:"dateRange" validate:"omitempty,len=2"`
	}

	data := new(filtersBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}

	filters := graph.Filters{
		ResourceTypes: data.ResourceTypes,
		MinQuality:    data.MinQuality,
	}
	if len(data.DateRange) == 2 {
		from, errFrom := time.Parse(time.RFC3339, data.DateRange[0])
		to, errTo := time.Parse(time.RFC3339, data.DateRange[1])
		if errFrom != nil || errTo != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "Date range must be RFC 3339 timestamps"})
		}
		filters.DateRange = &[2]time.Time{from, to}
	}

	appOf(c).Controller.SetFilters(filters)
	return c.JSON(http.StatusOK, pushView(c))
}
