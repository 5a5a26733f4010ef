package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fasthttp/staterouter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/savsgio/gotils"
	"github.com/spf13/cobra"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

const metricsPath = "/metrics"

func (c *cli) serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the routes over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				c.cfg.Addr = addr
			}

			r, err := c.router()
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)

			r.Metrics = staterouter.NewMetrics(staterouter.WithRegistry(reg))
			r.RedirectCanonical = true
			r.PanicHandler = func(ctx *fasthttp.RequestCtx, rcv interface{}) {
				ctx.Error(fasthttp.StatusMessage(fasthttp.StatusInternalServerError), fasthttp.StatusInternalServerError)
			}

			server := &fasthttp.Server{
				Handler: withMetrics(r.Handler, reg),
				Name:    "staterouter",
				Logger:  slog.NewLogLogger(c.logger.Handler(), slog.LevelError),
			}

			return c.listen(cmd.Context(), server)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides STATEROUTER_ADDR)")

	return cmd
}

func (c *cli) listen(ctx context.Context, server *fasthttp.Server) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)

	go func() {
		c.logger.Info("listening", slog.String("addr", c.cfg.Addr))
		errCh <- server.ListenAndServe(c.cfg.Addr)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	c.logger.Info("shutting down")

	return server.ShutdownWithContext(context.Background())
}

// withMetrics serves the Prometheus registry on /metrics and everything
// else with next.
func withMetrics(next fasthttp.RequestHandler, reg *prometheus.Registry) fasthttp.RequestHandler {
	metrics := fasthttpadaptor.NewFastHTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	return func(ctx *fasthttp.RequestCtx) {
		if gotils.B2S(ctx.Path()) == metricsPath {
			metrics(ctx)

			return
		}

		next(ctx)
	}
}
