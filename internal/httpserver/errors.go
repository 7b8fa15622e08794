package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/softstep/shop/internal/service"
	"github.com/softstep/shop/internal/transport"
)

// respondError maps a service error to a status code and a short
// human-readable message body.
func respondError(c echo.Context, err error) error {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrConflict):
		code = http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, service.ErrUnauthorized):
		code = http.StatusUnauthorized
	}
	return c.JSON(code, transport.MessageResponse{Message: err.Error()})
}
