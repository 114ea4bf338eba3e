package api

import (
	"net/http"

	"back2u/internal/common"

	"github.com/labstack/echo/v4"
)

const internalErrorMessage = "internal server error"

// Fail writes err as an HTTPError. Server-side failures are logged in full
// and answered with a generic message.
func Fail(c echo.Context, err error) error {
	status := common.HTTPStatusFromError(err)
	if status == http.StatusInternalServerError {
		c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
	}
	return c.JSON(status, HTTPError{Message: common.PublicMessage(err, internalErrorMessage)})
}

// BadRequest reports a malformed request body.
func BadRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, HTTPError{Message: msg})
}
