package handlers

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pawgrounds/backend/internal/models"
	"github.com/pawgrounds/backend/pkg/apperrors"
)

// getUserIDFromContext returns the authenticated user's ID, or 0 when the
// request carries no identity.
func getUserIDFromContext(c echo.Context) uint {
	if id, ok := c.Get("userID").(uint); ok {
		return id
	}
	if claims, ok := c.Get("user").(*models.JwtCustomClaims); ok {
		return claims.UserID
	}
	return 0
}

// requireUserID returns the authenticated user's ID or an unauthenticated
// error for the handler to bubble up.
func requireUserID(c echo.Context) (uint, error) {
	id := getUserIDFromContext(c)
	if id == 0 {
		return 0, apperrors.Unauthorized("user not authenticated")
	}
	return id, nil
}

// bindAndValidate binds the request payload and validates it with the
// echo-installed validator, which reports every failing field.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return apperrors.Validation("invalid request payload", nil)
	}
	return c.Validate(req)
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, apperrors.Validation("invalid "+name, []apperrors.FieldError{
			{Field: name, Reason: "must be a numeric id"},
		})
	}
	return uint(id), nil
}

// pageParams parses limit/offset query parameters, leaving clamping to the
// services.
func pageParams(c echo.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	offset, _ = strconv.Atoi(c.QueryParam("offset"))
	return limit, offset
}
