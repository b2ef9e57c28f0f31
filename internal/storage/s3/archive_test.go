package s3_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pravaah/internal/config"
	"pravaah/internal/domain"
	"pravaah/internal/storage/s3"
)

type recorded struct {
	method string
	path   string
	body   string
	ctype  string
}

func fakeS3(t *testing.T, status int) (*httptest.Server, func() []recorded) {
	t.Helper()
	var (
		mu   sync.Mutex
		reqs []recorded
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		reqs = append(reqs, recorded{r.Method, r.URL.Path, string(body), r.Header.Get("Content-Type")})
		mu.Unlock()
		w.Header().Set("ETag", `"abc"`)
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv, func() []recorded {
		mu.Lock()
		defer mu.Unlock()
		return append([]recorded(nil), reqs...)
	}
}

func newArchiveCfg(endpoint string) *config.S3Config {
	return &config.S3Config{
		Enabled: true, Region: "ap-south-1", Bucket: "pravaah-test", Endpoint: endpoint,
		AccessKey: "AKIDTEST", SecretKey: "secret", KeyPrefix: "review-queue/", PresignExpiry: 600,
	}
}

func TestArchive_RequiresBucket(t *testing.T) {
	_, err := s3.NewArchive(context.Background(), &config.S3Config{Region: "ap-south-1"})
	assert.Error(t, err)
}

func TestArchive_UploadsUnderPrefix(t *testing.T) {
	srv, requests := fakeS3(t, http.StatusOK)
	a, err := s3.NewArchive(context.Background(), newArchiveCfg(srv.URL))
	require.NoError(t, err)

	key, err := a.Archive(context.Background(), "/tmp/temp_scan.pdf", bytes.NewReader([]byte("pdf-bytes")), 9)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "review-queue/"), key)
	assert.True(t, strings.HasSuffix(key, "/temp_scan.pdf"), key)

	reqs := requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodPut, reqs[0].method)
	assert.Equal(t, "/pravaah-test/"+key, reqs[0].path)
	assert.Equal(t, "application/pdf", reqs[0].ctype)
	assert.Contains(t, reqs[0].body, "pdf-bytes")
}

func TestArchive_UploadFailure(t *testing.T) {
	srv, _ := fakeS3(t, http.StatusForbidden)
	a, err := s3.NewArchive(context.Background(), newArchiveCfg(srv.URL))
	require.NoError(t, err)

	_, err = a.Archive(context.Background(), "x.png", bytes.NewReader([]byte("img")), 3)
	assert.ErrorIs(t, err, domain.ErrArchiveFailed)
}

func TestArchive_PresignedURL(t *testing.T) {
	srv, requests := fakeS3(t, http.StatusOK)
	a, err := s3.NewArchive(context.Background(), newArchiveCfg(srv.URL))
	require.NoError(t, err)

	u, err := a.URL(context.Background(), "review-queue/abc/scan.pdf")
	require.NoError(t, err)
	assert.Contains(t, u, "/pravaah-test/review-queue/abc/scan.pdf")
	assert.Contains(t, u, "X-Amz-Signature=")
	assert.Contains(t, u, "X-Amz-Expires=600")
	assert.Empty(t, requests(), "presigning must not call the server")
}

func TestArchive_Remove(t *testing.T) {
	srv, requests := fakeS3(t, http.StatusNoContent)
	a, err := s3.NewArchive(context.Background(), newArchiveCfg(srv.URL))
	require.NoError(t, err)

	require.NoError(t, a.Remove(context.Background(), "review-queue/abc/scan.pdf"))
	reqs := requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodDelete, reqs[0].method)
}

func TestArchive_Ping(t *testing.T) {
	srv, requests := fakeS3(t, http.StatusOK)
	a, err := s3.NewArchive(context.Background(), newArchiveCfg(srv.URL))
	require.NoError(t, err)

	pinger, ok := a.(interface{ Ping(context.Context) error })
	require.True(t, ok)
	require.NoError(t, pinger.Ping(context.Background()))

	reqs := requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodHead, reqs[0].method)
	assert.True(t, strings.HasPrefix(reqs[0].path, "/pravaah-test"), reqs[0].path)
}
