package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/incr/internal/demo"
	"github.com/vango-dev/incr/pkg/engine"
	"github.com/vango-dev/incr/pkg/preview"
)

func serveCmd() *cobra.Command {
	var (
		port      int
		host      string
		stepEvery time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve [demo]",
		Short: "Serve a demo with a live browser preview",
		Long: `Serve a demo over HTTP with a live preview.

Clicks in the browser are dispatched into the server-side tree, and
every connected browser receives the updated HTML.

Examples:
  incr serve counter
  incr serve tabs --port=8080
  incr serve todos --step-every=2s`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Preview.Port = port
			}
			if host != "" {
				cfg.Preview.Host = host
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			name := cfg.Render.Demo
			if len(args) == 1 {
				name = args[0]
			}
			d, err := demo.Get(name)
			if err != nil {
				return err
			}

			opts := preview.Options{
				Title:       "incr · " + d.Name,
				Logger:      newLogger(),
				MetricsPath: cfg.Metrics.Path,
			}
			if cfg.Metrics.Enabled {
				reg := prometheus.NewRegistry()
				reg.MustRegister(collectors.NewGoCollector())
				opts.Metrics = engine.NewMetrics(
					engine.WithRegistry(reg),
					engine.WithNamespace(cfg.Metrics.Namespace),
				)
				opts.Gatherer = reg
			}

			srv, err := preview.New(d.Template, d.NewState(), opts)
			if err != nil {
				return err
			}
			return runServer(cmd.Context(), srv, cfg.PreviewAddress(), d, stepEvery)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from config)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from config)")
	cmd.Flags().DurationVar(&stepEvery, "step-every", 0, "Apply the demo's scripted interaction on this interval")

	return cmd
}

func runServer(ctx context.Context, srv *preview.Server, addr string, d *demo.Demo, stepEvery time.Duration) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if stepEvery > 0 {
		go func() {
			ticker := time.NewTicker(stepEvery)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					if err := srv.Update(d.Step); err != nil {
						info("step failed: %v", err)
					}
				}
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	success("Serving %s at http://%s", d.Name, addr)

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return srv.Close()
}
