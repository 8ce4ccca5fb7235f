package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/toaster/internal/errors"
	"github.com/vango-dev/toaster/pkg/preview"
)

func serveCmd(g *globals) *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the preview server",
		Long: `Start a live toaster preview.

Open the root URL in a browser and create toasts through the JSON API:

  curl -X POST localhost:3000/toasts -d '{"title": "Saved", "category": "success"}'

Routes:
  GET    /              preview page
  GET    /toaster       container HTML
  GET    /toasts        mounted toasts as JSON
  POST   /toasts        create a toast
  PATCH  /toasts/{id}   update a toast
  DELETE /toasts/{id}   dismiss a toast
  DELETE /toasts        dismiss all toasts
  GET    /ws            live updates
  GET    /metrics       Prometheus metrics

Examples:
  toaster serve
  toaster serve --port=8080 --host=0.0.0.0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(g, port, host)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from config)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from config)")

	return cmd
}

func runServe(g *globals, port int, host string) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}

	if port < 0 || port > 65535 {
		return errors.New("T042").WithDetail("--port must be between 0 and 65535")
	}
	if port > 0 {
		cfg.Serve.Port = port
	}
	if host != "" {
		cfg.Serve.Host = host
	}

	logger := g.logger()
	tc, err := cfg.Toaster(logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := preview.New(preview.Options{Config: tc, Logger: logger})
	success("Preview at http://%s", cfg.Address())
	if err := srv.ListenAndServe(ctx, cfg.Address()); err != nil {
		return errors.New("T041").Wrap(err)
	}
	info("Stopped")
	return nil
}
