package cli

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/recordq/internal/httpapi"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Listen string

	// Ready, when set, receives the bound address once the listener is up.
	Ready func(addr string)
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the record API over HTTP",
		Long: `Serve the record API over HTTP until interrupted.

  POST /api/dataset/{dataset}/record
  GET  /api/dataset/{dataset}/query?groupBy=<field>
  GET  /api/dataset/{dataset}/query?sortBy=<field>&order=asc|desc
  GET  /healthz

SIGINT or SIGTERM triggers a graceful shutdown.

Examples:
  recordq serve --db ./recordq.db
  recordq serve --listen 127.0.0.1:9000 -v`,
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
	log := opts.logger()
	cfg := opts.Config
	if cfg == nil {
		return NewExitError(ExitCommandError, "configuration not loaded")
	}

	addr := cfg.Server.Listen
	if opts.Listen != "" {
		addr = opts.Listen
	}

	eng, st, err := opts.openEngine()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			log.Error("error closing database", zap.Error(closeErr))
		}
	}()

	srv := httpapi.New(eng,
		httpapi.WithLogger(log.Named("http")),
		httpapi.WithRateLimit(cfg.Server.RateLimit, cfg.Server.RateBurst),
		httpapi.WithMaxBodyBytes(cfg.Server.MaxBodyBytes),
		httpapi.WithTimeouts(cfg.GetReadTimeout(), cfg.GetWriteTimeout()),
		httpapi.WithHealthCheck(st.Ping),
	)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to listen", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			log.Info("received signal, shutting down", zap.Stringer("signal", sig))
			cancel()
		case <-ctx.Done():
		}
	}()

	fmt.Fprintf(cmd.OutOrStdout(), "Listening on %s\n", ln.Addr())
	if opts.Ready != nil {
		opts.Ready(ln.Addr().String())
	}

	if err := srv.Serve(ctx, ln, cfg.GetShutdownTimeout()); err != nil {
		return WrapExitError(ExitFailure, "server error", err)
	}

	log.Info("server stopped gracefully")
	return nil
}
