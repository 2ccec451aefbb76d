package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"roomlog/internal/web"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Listen string
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the sign-in web UI",
		Long: `Start the HTTP server for the sign-in page and admin panel.

The server opens the SQLite ledger (creating it if it doesn't exist), seeds
the roster on first run, and serves the sign-in UI until interrupted.

Example:
  roomlog serve
  roomlog serve --listen 0.0.0.0:8080 --verbose`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Listen, "listen", "", "listen address (overrides config)")

	return cmd
}

func runServe(opts *ServeOptions, cmd *cobra.Command) error {
	configureLogging(opts.RootOptions)

	svc, cfg, cleanup, err := openService(opts.RootOptions)
	if err != nil {
		return err
	}
	defer cleanup()

	listen := cfg.Listen
	if opts.Listen != "" {
		listen = opts.Listen
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Older databases may carry seconds in their timestamps; normalize them
	// once at startup so ordering and display agree.
	scrubbed, err := svc.Store.ScrubSeconds(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to scrub timestamps", err)
	}
	if scrubbed > 0 {
		slog.Info("scrubbed seconds from timestamps", "events", scrubbed)
	}

	if err := svc.Store.SeedRoster(ctx, cfg.Roster); err != nil {
		return WrapExitError(ExitCommandError, "failed to seed roster", err)
	}

	server, err := web.NewServer(svc, cfg)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to build server", err)
	}

	httpServer := &http.Server{
		Addr:              listen,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Scheduled sheet export for the current day, when configured.
	var scheduler *cron.Cron
	if cfg.ExportCron != "" {
		scheduler = cron.New()
		_, err := scheduler.AddFunc(cfg.ExportCron, func() {
			paths, err := svc.ExportSheets(context.Background(), cfg.ExportsDir, cfg.Room, cfg.SheetPrefix(), svc.Today(), "")
			if err != nil {
				slog.Error("scheduled sheet export failed", "error", err)
				return
			}
			slog.Info("scheduled sheet export complete", "files", len(paths))
		})
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid export_cron schedule", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
		slog.Info("sheet export scheduled", "cron", cfg.ExportCron)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- httpServer.ListenAndServe()
	}()

	slog.Info("server starting", "listen", listen, "db", cfg.Database)
	fmt.Fprintf(cmd.OutOrStdout(), "Serving on http://%s\n", listen)
	fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl-C to stop.")

	select {
	case sig := <-sigChan:
		slog.Info("received signal, shutting down", "signal", sig)
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return WrapExitError(ExitFailure, "server error", err)
		}
		return nil
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return WrapExitError(ExitFailure, "shutdown error", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
