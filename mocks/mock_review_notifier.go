package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pravaah/internal/domain"
)

// MockReviewNotifier is a mock implementation of port.ReviewNotifier.
type MockReviewNotifier struct {
	mock.Mock
}

func (m *MockReviewNotifier) NotifyQueued(ctx context.Context, entry domain.ReviewQueueEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
