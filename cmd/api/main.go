package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"physcalc/internal/observability"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	configPath string
	envFiles   []string
	dev        bool
}

func newRootCmd() *cobra.Command {
	var opts options

	root := &cobra.Command{
		Use:          "physcalc",
		Short:        "Physics and thermodynamics calculator service",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadDotEnv(opts.envFiles)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringSliceVar(&opts.envFiles, "env-file", nil, "dotenv file to load, repeatable (default .env if present)")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
	for _, c := range []*cobra.Command{root, serve} {
		c.Flags().BoolVar(&opts.dev, "dev", false, "development mode: console logs, generated secret, insecure cookies")
	}

	root.AddCommand(serve, newFormulasCmd(), newEvalCmd(&opts))
	return root
}

func runServe(ctx context.Context, opts options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	// Logger
	if err := observability.InitLogger(cfg.Server); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer observability.SyncLogger()

	// Tracing, metrics, log export
	telemetryShutdown, err := observability.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return err
	}
	defer telemetryShutdown(context.Background())

	app, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	srv := &http.Server{
		Handler:           app.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	observability.Logger.Info("server started",
		zap.String("addr", ln.Addr().String()),
		zap.Bool("dev", cfg.Server.Dev),
		zap.Bool("telemetry", cfg.Telemetry.Enabled),
	)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return serve(ctx, srv, ln, cfg.Server.ShutdownTimeout)
}

// serve runs srv on ln until ctx is done, then shuts it down within timeout.
// If the server fails first, serve returns that error.
func serve(ctx context.Context, srv *http.Server, ln net.Listener, timeout time.Duration) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		observability.Logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
