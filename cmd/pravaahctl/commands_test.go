package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pravaah/internal/domain"
	"pravaah/internal/service"
	"pravaah/mocks"
)

type fixture struct {
	processing *mocks.MockProcessingService
	dashboard  *mocks.MockDashboardService
	queue      *mocks.MockReviewQueueService
	closed     int
}

func (f *fixture) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd(func(context.Context) (*services, func(), error) {
		return &services{
			Processing:  f.processing,
			Dashboard:   f.dashboard,
			ReviewQueue: f.queue,
		}, func() { f.closed++ }, nil
	})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func newFixture() *fixture {
	return &fixture{
		processing: new(mocks.MockProcessingService),
		dashboard:  new(mocks.MockDashboardService),
		queue:      new(mocks.MockReviewQueueService),
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestProcessCmd(t *testing.T) {
	f := newFixture()
	path := writeFile(t, "invoice.pdf", "pdf-bytes")

	f.processing.On("Process", mock.Anything, mock.MatchedBy(func(u service.Upload) bool {
		return u.Filename == "invoice.pdf" && u.Size == 9
	})).Return(&domain.ProcessingResult{
		Filename: "invoice.pdf",
		DocType:  domain.DocTypeInvoice,
		Status:   domain.StatusProcessingComplete,
	}, nil)

	out, err := f.run(t, "process", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"filename": "invoice.pdf"`)
	assert.Equal(t, 1, f.closed)
	f.processing.AssertExpectations(t)
}

func TestProcessCmd_MissingFile(t *testing.T) {
	f := newFixture()
	_, err := f.run(t, "process", filepath.Join(t.TempDir(), "nope.pdf"))
	assert.Error(t, err)
	f.processing.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
}

func TestResolveCmd_DefaultsRemoveToBaseName(t *testing.T) {
	f := newFixture()
	path := writeFile(t, "claim.png", "png")

	f.processing.On("Resolve", mock.Anything, mock.Anything, "Claim Form", "claim.png").
		Return(&domain.ResolutionResult{Status: "Successfully processed and logged.", Removed: 1}, nil)

	out, err := f.run(t, "resolve", path, "--type", "Claim Form")
	require.NoError(t, err)
	assert.Contains(t, out, `"removed": 1`)
	f.processing.AssertExpectations(t)
}

func TestResolveCmd_RequiresType(t *testing.T) {
	f := newFixture()
	_, err := f.run(t, "resolve", writeFile(t, "claim.png", "png"))
	assert.Error(t, err)
}

func TestQueueList(t *testing.T) {
	f := newFixture()
	f.queue.On("List", mock.Anything).Return([]domain.ReviewQueueEntry{
		{Filename: "scan.pdf", AIGuess: domain.DocTypeUnknown, Confidence: "40%"},
	}, nil)

	out, err := f.run(t, "queue", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "FILENAME")
	assert.Contains(t, out, "scan.pdf")
	assert.Contains(t, out, "40%")
}

func TestQueueRemove(t *testing.T) {
	f := newFixture()
	f.queue.On("Remove", mock.Anything, "scan.pdf").Return(2, nil)

	out, err := f.run(t, "queue", "remove", "scan.pdf")
	require.NoError(t, err)
	assert.Contains(t, out, "removed 2 row(s) for scan.pdf")
}

func TestQueueRemove_Error(t *testing.T) {
	f := newFixture()
	f.queue.On("Remove", mock.Anything, "scan.pdf").Return(0, errors.New("disk full"))

	_, err := f.run(t, "queue", "remove", "scan.pdf")
	assert.EqualError(t, err, "disk full")
	assert.Equal(t, 1, f.closed)
}

func TestExportCmd(t *testing.T) {
	f := newFixture()
	f.dashboard.On("Records", mock.Anything).Return([]domain.LogRecord{
		{DocType: domain.DocTypeInvoice, VendorName: "Acme", TotalAmount: 10, InvoiceDate: "2024-01-02"},
	}, nil)

	out, err := f.run(t, "export")
	require.NoError(t, err)
	assert.Contains(t, out, "Acme")

	_, err = f.run(t, "export", "--format", "pdf")
	assert.Error(t, err)
}
