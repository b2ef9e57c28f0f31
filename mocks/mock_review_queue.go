package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pravaah/internal/domain"
)

// MockReviewQueue is a mock implementation of port.ReviewQueue.
type MockReviewQueue struct {
	mock.Mock
}

func (m *MockReviewQueue) Add(ctx context.Context, entry domain.ReviewQueueEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockReviewQueue) List(ctx context.Context) ([]domain.ReviewQueueEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReviewQueueEntry), args.Error(1)
}

func (m *MockReviewQueue) Remove(ctx context.Context, filename string) ([]domain.ReviewQueueEntry, error) {
	args := m.Called(ctx, filename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReviewQueueEntry), args.Error(1)
}
