package auth

import (
	"strings"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "studentrecords/internal/errors"
)

// contextKey is where the guard stores the authenticated claims on the Echo
// context.
const contextKey = "user"

// Middleware returns the access guard for protected routes. The observable
// contract is asymmetric: an absent Authorization header and a non-Bearer
// scheme both collapse to 401, while a Bearer token that fails verification
// is 400.
func Middleware(tokens *TokenService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: contextKey,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return tokens.Parse(auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, "Bearer ") {
				return apperrors.ErrNoToken
			}
			return apperrors.ErrInvalidToken
		},
	})
}

// CurrentUser extracts the authenticated claims attached by the guard.
// It returns nil on routes the guard did not run on.
func CurrentUser(c echo.Context) *Claims {
	claims, ok := c.Get(contextKey).(*Claims)
	if !ok {
		return nil
	}
	return claims
}
