package router

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"

	apperrors "studentrecords/internal/errors"
)

// NewHTTPErrorHandler returns the centralized error translator. Domain errors
// map through the taxonomy in internal/errors; anything unrecognized becomes
// a generic 500 whose detail is logged server-side only. Outside production
// the 500 body additionally carries a stack field.
func NewHTTPErrorHandler(isProduction bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var resp apperrors.ErrorResponse
		var status int

		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			// Errors raised by Echo itself (binding, routing, recover).
			status = echoErr.Code
			resp = apperrors.ErrorResponse{Message: fmt.Sprintf("%v", echoErr.Message)}
		} else {
			httpErr := apperrors.MapErrorToHTTP(err)
			status = httpErr.StatusCode
			resp = httpErr.ToErrorResponse()
		}

		if status >= http.StatusInternalServerError {
			c.Logger().Errorf("%s %s -> %d: %v", c.Request().Method, c.Request().RequestURI, status, err)
			if !isProduction {
				resp.Stack = fmt.Sprintf("%v\n%s", err, debug.Stack())
			}
		}

		if c.Request().Method == http.MethodHead {
			if err := c.NoContent(status); err != nil {
				c.Logger().Error(err)
			}
			return
		}
		if err := c.JSON(status, resp); err != nil {
			c.Logger().Error(err)
		}
	}
}
