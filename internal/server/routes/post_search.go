package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// SearchHandler updates the search query. The commit is debounced, so
// the response reflects the state before the query settles; clients
// receive the settled view over the push channel or the next read.
func SearchHandler(c echo.Context) error {
	type searchBody struct {
		Query string `json:"query"`
	}

	data := new(searchBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}

	appOf(c).Controller.Search(data.Query)
	return c.JSON(http.StatusAccepted, map[string]string{"message": "Search scheduled"})
}
