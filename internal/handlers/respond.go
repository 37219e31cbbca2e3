package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/satriadjati/goshop/internal/models"
	"github.com/satriadjati/goshop/internal/service"
)

type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ErrorResponse maps the service error taxonomy onto HTTP status codes and
// renders the error's message. Unclassified errors become an opaque 500.
func ErrorResponse(c echo.Context, err error) error {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidation):
		code = http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		code = http.StatusForbidden
	case errors.Is(err, service.ErrConflict):
		code = http.StatusConflict
	case errors.Is(err, service.ErrUnauthorized):
		code = http.StatusUnauthorized
	}

	msg := err.Error()
	if code == http.StatusInternalServerError {
		c.Logger().Errorf("internal error: %v", err)
		msg = "Terjadi kesalahan pada server"
	}
	return c.JSON(code, Response{Status: "error", Message: msg})
}

// PrincipalKey is where the auth middleware stores the authenticated caller.
const PrincipalKey = "principal"

func principalFrom(c echo.Context) (models.Principal, bool) {
	p, ok := c.Get(PrincipalKey).(models.Principal)
	return p, ok
}
