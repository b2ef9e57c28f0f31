package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

// MockDocumentArchive is a mock implementation of port.DocumentArchive.
type MockDocumentArchive struct {
	mock.Mock
}

func (m *MockDocumentArchive) Archive(ctx context.Context, filename string, body io.Reader, size int64) (string, error) {
	args := m.Called(ctx, filename, body, size)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentArchive) URL(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentArchive) Remove(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
