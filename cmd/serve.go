package cmd

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// serve runs app on ln next to the background tasks until ctx is done or the server stops.
// It returns only after the server is shut down and every background task has returned,
// so resources they use can be released by the caller.
func serve(ctx context.Context, app *fiber.App, ln net.Listener, timeout time.Duration, log *zap.Logger, background ...func(context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	for _, task := range background {
		g.Go(func() error {
			return task(gctx)
		})
	}

	g.Go(func() error {
		// A stopped server ends the background tasks too
		defer cancel()
		log.Info("Starting server", zap.String("address", ln.Addr().String()))
		if err := app.Listener(ln); err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")
		if err := app.ShutdownWithTimeout(timeout); err != nil {
			log.Warn("Server shutdown incomplete", zap.Duration("timeout", timeout), zap.Error(err))
		}
		return nil
	})

	return g.Wait()
}
