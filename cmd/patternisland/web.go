package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pattern-island/internal/api"
)

var flagHTTPAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the HTTP API",
	Long: `Serves the game over HTTP for browser front ends:

  GET  /api/levels[?category=shape]
  GET  /api/levels/{id}
  GET  /api/players/{profile}/stats
  POST /api/players/{profile}/attempts     {"levelId": 3}
  POST /api/attempts/{id}/choose           {"optionId": "..."}
  POST /api/attempts/{id}/hint
  GET  /api/events[?profile=ada]           websocket event stream
  GET  /metrics                            Prometheus metrics
  GET  /healthz

Examples:
  patternisland web
  patternisland web --addr :9090 --seed 42`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runWeb(); err != nil {
			fatal(err)
		}
	},
}

func init() {
	webCmd.Flags().StringVar(&flagHTTPAddr, "addr", "", "HTTP listen address (default from config)")
}

func runWeb() error {
	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	addr := a.cfg.Server.HTTPAddr
	if flagHTTPAddr != "" {
		addr = flagHTTPAddr
	}

	fmt.Printf("Starting Pattern Island HTTP API on %s\n", addr)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return api.NewServer(a.svc, a.log).ListenAndServe(ctx, addr)
}
