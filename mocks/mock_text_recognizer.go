package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockTextRecognizer is a mock implementation of port.TextRecognizer.
type MockTextRecognizer struct {
	mock.Mock
}

func (m *MockTextRecognizer) Recognize(ctx context.Context, path string) (string, error) {
	args := m.Called(ctx, path)
	return args.String(0), args.Error(1)
}
