// Command pravaahctl runs the document pipeline and manages the review queue
// from a shell, sharing the server's configuration and backends.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"pravaah/internal/bootstrap"
	"pravaah/internal/config"
	"pravaah/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(func(ctx context.Context) (*services, func(), error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, nil, err
		}
		logging.Setup(&cfg.Log, "pravaahctl")

		app, err := bootstrap.New(ctx, cfg, nil)
		if err != nil {
			return nil, nil, err
		}
		return &services{
			Processing:  app.Processing,
			Dashboard:   app.Dashboard,
			ReviewQueue: app.ReviewQueue,
		}, app.Close, nil
	})

	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
