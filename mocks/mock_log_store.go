package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pravaah/internal/domain"
)

// MockLogStore is a mock implementation of port.LogStore.
type MockLogStore struct {
	mock.Mock
}

func (m *MockLogStore) Append(ctx context.Context, rec domain.LogRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockLogStore) List(ctx context.Context) ([]domain.LogRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LogRecord), args.Error(1)
}
