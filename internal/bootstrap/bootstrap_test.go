package bootstrap_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pravaah/internal/bootstrap"
	"pravaah/internal/config"
	"pravaah/internal/metrics"
)

func baseConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Server: config.ServerConfig{MaxFileSizeMB: 5, TempDir: t.TempDir()},
		LLM: config.LLMConfig{
			Primary: config.LLMProviderConfig{Provider: "gemini", APIKey: "test-key", DefaultModel: "gemini-pro-latest"},
		},
		OCR:      config.OCRConfig{Languages: []string{"eng"}, TimeoutSecs: 5},
		Pipeline: config.PipelineConfig{ConfidenceThreshold: 0.8, Region: "IN"},
		LogStore: config.LogStoreConfig{Backend: "mongo", Collection: "processed_logs"},
		Queue:    config.QueueConfig{Backend: "csv", CSVPath: filepath.Join(t.TempDir(), "review_queue.csv")},
		Email:    config.EmailConfig{Provider: "noop"},
	}
}

func TestNew_DefaultsDegradeGracefully(t *testing.T) {
	app, err := bootstrap.New(context.Background(), baseConfig(t), metrics.New())
	require.NoError(t, err)
	defer app.Close()

	assert.NotNil(t, app.Processing)
	assert.NotNil(t, app.Dashboard)
	assert.NotNil(t, app.ReviewQueue)
	assert.Empty(t, app.Pingers)

	// The noop log store yields an empty dashboard.
	assert.True(t, app.Dashboard.Summary(context.Background()).Empty())

	entries, err := app.ReviewQueue.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestNew_RequiresLLMKey(t *testing.T) {
	cfg := baseConfig(t)
	cfg.LLM.Primary.APIKey = ""

	_, err := bootstrap.New(context.Background(), cfg, nil)
	assert.ErrorIs(t, err, config.ErrMissingLLMCredential)
}

func TestNew_RejectsUnknownSettings(t *testing.T) {
	cfg := baseConfig(t)
	cfg.Pipeline.Region = "XX"
	_, err := bootstrap.New(context.Background(), cfg, nil)
	assert.Error(t, err)

	cfg = baseConfig(t)
	cfg.Queue.Backend = "sqs"
	_, err = bootstrap.New(context.Background(), cfg, nil)
	assert.Error(t, err)

	cfg = baseConfig(t)
	cfg.Email.Provider = "carrier-pigeon"
	_, err = bootstrap.New(context.Background(), cfg, nil)
	assert.Error(t, err)
}

func TestNew_RedisQueue(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := baseConfig(t)
	cfg.Queue.Backend = "redis"
	cfg.Redis = config.RedisConfig{Addr: mr.Addr(), KeyPrefix: "test:"}

	app, err := bootstrap.New(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer app.Close()

	require.Contains(t, app.Pingers, "review_queue")
	assert.NoError(t, app.Pingers["review_queue"].Ping(context.Background()))

	n, err := app.ReviewQueue.Remove(context.Background(), "missing.pdf")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestNew_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := baseConfig(t)
	cfg.Queue.Backend = "redis"
	cfg.Redis = config.RedisConfig{Addr: addr}

	_, err := bootstrap.New(context.Background(), cfg, nil)
	assert.Error(t, err)
}
