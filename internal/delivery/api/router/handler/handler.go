// Package handler contains the HTTP handlers of the marketplace API.
package handler

import (
	"math"
	"strconv"

	deliverycontext "agriconnect/internal/delivery/context"
	domainerrors "agriconnect/internal/domain/errors"
	"agriconnect/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// bindAndValidate decodes the request body into req and runs its validate tags.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domainerrors.NewValidationError("invalid request body")
	}

	return errors.WithStack(c.Validate(req))
}

// actor returns the authenticated caller set by the auth middleware.
func actor(c echo.Context) (usecase.Actor, error) {
	userID, role, ok := deliverycontext.GetIdentity(c)
	if !ok {
		return usecase.Actor{}, domainerrors.ErrUnauthorized
	}

	return usecase.Actor{UserID: userID, Role: role}, nil
}

func uuidParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domainerrors.NewValidationError("%s must be a valid id", name)
	}

	return id, nil
}

func decimalQuery(c echo.Context, name string) (*decimal.Decimal, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, domainerrors.NewValidationError("%s must be a number", name)
	}

	return &d, nil
}

func floatQuery(c echo.Context, name string) (*float64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, domainerrors.NewValidationError("%s must be a number", name)
	}

	return &f, nil
}

// originQuery reads the requester position from userLat and userLng. Both or neither must be given.
func originQuery(c echo.Context) (*orb.Point, error) {
	lat, err := floatQuery(c, "userLat")
	if err != nil {
		return nil, err
	}
	lng, err := floatQuery(c, "userLng")
	if err != nil {
		return nil, err
	}

	switch {
	case lat == nil && lng == nil:
		return nil, nil
	case lat == nil || lng == nil:
		return nil, domainerrors.NewValidationError("userLat and userLng must be provided together")
	case *lat < -90 || *lat > 90 || *lng < -180 || *lng > 180:
		return nil, domainerrors.NewValidationError("userLat or userLng is out of range")
	}

	return &orb.Point{*lng, *lat}, nil
}

// list keeps empty results rendering as [] rather than null.
func list[T any](items []T) []T {
	if items == nil {
		return []T{}
	}

	return items
}
