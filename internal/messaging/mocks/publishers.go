package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"showcase-server/internal/messaging"
)

// Mock InterfaceEventPublisher
type InterfaceEventPublisher struct {
	mock.Mock
}

func (m *InterfaceEventPublisher) PublishInterfaceUpdate(ctx context.Context, payload messaging.InterfaceUpdatePayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}
