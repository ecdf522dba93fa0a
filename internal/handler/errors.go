package handler

import (
	"errors"
	"net/http"

	"github.com/Eursukkul/screening-service/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// toHTTPError maps service errors onto status codes. Storage failures were
// already logged by the service and are reported without detail.
func toHTTPError(err error) error {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return echo.NewHTTPError(http.StatusBadRequest, verr.Error())
	case errors.Is(err, service.ErrBookingNotFound), errors.Is(err, service.ErrWhitelistEntryNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrBookingAlreadyResolved):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error").SetInternal(err)
	}
}

func parseID(c echo.Context, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid "+what+" id")
	}
	return id, nil
}
