package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// pathID parses a numeric path parameter, rejecting garbage before any
// service call.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

// queryKeyword extracts the mandatory ?keyword= search parameter.
func queryKeyword(c echo.Context) (string, error) {
	keyword := c.QueryParam("keyword")
	if keyword == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, "keyword is required")
	}
	return keyword, nil
}

// messageResponse is the canonical success envelope for mutations.
type messageResponse struct {
	Message string `json:"message"`
}

func message(c echo.Context, text string) error {
	return c.JSON(http.StatusOK, messageResponse{Message: text})
}
