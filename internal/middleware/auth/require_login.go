package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/satriadjati/goshop/internal/handlers"
	"github.com/satriadjati/goshop/internal/service"
)

// RequireLogin validates the Authorization bearer token and attaches the
// resolved Principal to the request context. Missing or malformed headers,
// expired or malformed tokens, and tokens whose subject no longer exists are
// each rejected with their own message, all as 401.
func RequireLogin(auth *service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, handlers.Response{
					Status:  "error",
					Message: "Header Authorization hilang atau format tidak valid",
				})
			}

			token := strings.TrimPrefix(header, "Bearer ")
			principal, err := auth.Authenticate(c.Request().Context(), token)
			if err != nil {
				return handlers.ErrorResponse(c, err)
			}

			c.Set(handlers.PrincipalKey, *principal)
			return next(c)
		}
	}
}
