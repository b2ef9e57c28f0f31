package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pravaah/internal/domain"
)

// MockReviewQueueService is a mock implementation of service.ReviewQueueService.
type MockReviewQueueService struct {
	mock.Mock
}

func (m *MockReviewQueueService) List(ctx context.Context) ([]domain.ReviewQueueEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReviewQueueEntry), args.Error(1)
}

func (m *MockReviewQueueService) Remove(ctx context.Context, filename string) (int, error) {
	args := m.Called(ctx, filename)
	return args.Int(0), args.Error(1)
}
