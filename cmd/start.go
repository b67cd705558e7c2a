package cmd

import (
	"context"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog-mirror/core/loader"
	"catalog-mirror/core/logger"
	"catalog-mirror/core/middleware/auth"
	"catalog-mirror/core/middleware/rayid"
	"catalog-mirror/core/scheduler"
	"catalog-mirror/feature/catalog"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the mirror server",
	Long:  `Starts the HTTP API and the sync scheduler for all enabled families.`,
	Run: func(cmd *cobra.Command, args []string) {
		a, err := newApp()
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		defer a.close()
		logg := a.logger
		zap.ReplaceGlobals(logg)

		for family, store := range a.stores {
			if err := store.Migrate(cmd.Context()); err != nil {
				logg.Fatal("Failed to prepare mirror table", zap.String("family", family), zap.Error(err))
			}
		}

		if a.pages != nil {
			if err := a.pages.Check(cmd.Context()); err != nil {
				logg.Warn("Cache bucket unavailable, invalidations will fail", zap.Error(err))
			}
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		mgr := loader.NewManager()
		mgr.Register(catalog.NewFeature(a.orchestrator, logg))

		// RayID first so every log line carries it
		app.Use(rayid.New())
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})
		app.Use(auth.New(auth.Config{ApiKey: a.cfg.Server.ApiKey}))

		loaded, err := mgr.LoadAll(app)
		if err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}
		logg.Info("Features loaded", zap.Strings("features", loaded))

		ln, err := net.Listen("tcp", a.cfg.Server.Address())
		if err != nil {
			logg.Fatal("Server failed to start", zap.Error(err))
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var background []func(context.Context) error
		if a.cfg.Scheduler.Enabled {
			background = append(background, scheduler.New(a.orchestrator, a.cfg.Scheduler, logg).Run)
		}

		timeout := time.Duration(a.cfg.Server.ShutdownTimeoutSeconds) * time.Second
		if err := serve(ctx, app, ln, timeout, logg, background...); err != nil {
			logg.Error("Server stopped", zap.Error(err))
		}
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
