// Package response writes the {data, meta} and {error, meta} envelopes of the HTTP API.
package response

import (
	"net/http"

	deliverycontext "agriconnect/internal/delivery/context"
	domainerrors "agriconnect/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

// Success returns a successful response
func Success(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, domainerrors.NewSuccessResponse(data, deliverycontext.GetRequestID(c)))
}

// OK returns a 200 response
func OK(c echo.Context, data any) error {
	return Success(c, http.StatusOK, data)
}

// Created returns a 201 response
func Created(c echo.Context, data any) error {
	return Success(c, http.StatusCreated, data)
}

// Error returns an error response
func Error(c echo.Context, statusCode int, errorCode string, message string, details any) error {
	return c.JSON(statusCode, domainerrors.NewErrorResponse(statusCode, errorCode, message, details, deliverycontext.GetRequestID(c)))
}

// AppError renders an application error with its own status and code.
func AppError(c echo.Context, err domainerrors.AppError) error {
	return c.JSON(err.HTTPCode(), domainerrors.NewAppErrorResponse(err, deliverycontext.GetRequestID(c)))
}

// BadRequest returns a 400 error
func BadRequest(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusBadRequest, errorCode, message, nil)
}

// Unauthorized returns a 401 error
func Unauthorized(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusUnauthorized, errorCode, message, nil)
}

// Forbidden returns a 403 error
func Forbidden(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusForbidden, errorCode, message, nil)
}

// InternalServerError returns a 500 error
func InternalServerError(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusInternalServerError, errorCode, message, nil)
}
