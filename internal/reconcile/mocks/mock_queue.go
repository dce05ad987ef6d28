package mocks

import (
	"context"

	"dms/internal/reconcile"

	"github.com/stretchr/testify/mock"
)

type MockQueue struct {
	mock.Mock
}

func (m *MockQueue) Enqueue(ctx context.Context, e reconcile.Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
