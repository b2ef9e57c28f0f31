package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pravaah/internal/domain"
)

// MockDashboardService is a mock implementation of service.DashboardService.
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Summary(ctx context.Context) domain.Dashboard {
	args := m.Called(ctx)
	return args.Get(0).(domain.Dashboard)
}

func (m *MockDashboardService) Records(ctx context.Context) ([]domain.LogRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LogRecord), args.Error(1)
}
