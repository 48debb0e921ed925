// Package mocks holds testify doubles for the domain service interfaces.
package mocks

import (
	"context"

	"agriconnect/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// EventPublisher is a mock service.EventPublisher.
type EventPublisher struct {
	mock.Mock
}

var _ service.EventPublisher = (*EventPublisher)(nil)

func (m *EventPublisher) PublishOrderEvent(ctx context.Context, event *service.OrderEvent) error {
	args := m.Called(ctx, event)

	return args.Error(0)
}

func (m *EventPublisher) Close() error {
	args := m.Called()

	return args.Error(0)
}
