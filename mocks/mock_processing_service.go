package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pravaah/internal/domain"
	"pravaah/internal/service"
)

// MockProcessingService is a mock implementation of service.ProcessingService.
type MockProcessingService struct {
	mock.Mock
}

func (m *MockProcessingService) Process(ctx context.Context, upload service.Upload) (*domain.ProcessingResult, error) {
	args := m.Called(ctx, upload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProcessingResult), args.Error(1)
}

func (m *MockProcessingService) Resolve(ctx context.Context, upload service.Upload, correctDocType, filenameToRemove string) (*domain.ResolutionResult, error) {
	args := m.Called(ctx, upload, correctDocType, filenameToRemove)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResolutionResult), args.Error(1)
}
