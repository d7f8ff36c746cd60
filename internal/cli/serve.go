package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sankey/pkg/buildinfo"
	"github.com/matzehuels/sankey/pkg/host/httphost"
	"github.com/matzehuels/sankey/pkg/observability/metrics"
)

// serveCommand creates the serve command that runs the HTTP host.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		sessionTTL time.Duration
		flags      optionFlags
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve interactive diagrams over HTTP",
		Long: `Serve interactive diagrams over HTTP.

Clients post snapshots to create sessions, fetch the rendered frame and send
hover and click events. Each event returns the host requests (tooltips,
marking) it produced. Prometheus metrics are exposed at /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.config.ServeAddr()
			}
			return c.runServe(cmd, addr, sessionTTL, &flags)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().DurationVar(&sessionTTL, "session-ttl", httphost.DefaultSessionTTL, "idle session lifetime")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable artifact caching")
	flags.registerLayout(cmd)
	flags.registerRender(cmd)

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, addr string, sessionTTL time.Duration, flags *optionFlags) error {
	ctx := cmd.Context()
	opts := c.options(cmd, flags)

	shutdownTimeout, err := c.config.ShutdownTimeout()
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics.New(reg).Install()

	srv, err := httphost.New(
		httphost.WithLogger(c.Logger),
		httphost.WithRunner(runner),
		httphost.WithOptions(opts),
		httphost.WithGatherer(reg),
		httphost.WithSessionTTL(sessionTTL),
	)
	if err != nil {
		return err
	}

	hs := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr, "build", buildinfo.String())
		errCh <- hs.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down", "timeout", shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	printSuccess("Server stopped")
	return nil
}
