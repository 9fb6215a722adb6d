// Copyright (c) 2026, The Gravitree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/gravitree/forcegraph/share"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

// serveConfig configures the relay server from FORCEGRAPH_*
// environment variables (a .env file is loaded at startup).
type serveConfig struct {
	Addr  string        `env:"FORCEGRAPH_ADDR" envDefault:":8787"`
	Path  string        `env:"FORCEGRAPH_SYNC_PATH" envDefault:"/sync"`
	Limit float64       `env:"FORCEGRAPH_RATE_LIMIT" envDefault:"20"`
	Burst int           `env:"FORCEGRAPH_RATE_BURST" envDefault:"5"`
	Grace time.Duration `env:"FORCEGRAPH_SHUTDOWN_GRACE" envDefault:"5s"`
}

func newServeCommand() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the shared-state relay server",
		Long: `serve runs the websocket relay that networked scene instances connect
to. Clients join a room (the ?room= query parameter), every record a
client sends is forwarded to the other members of its room, and the
room's last record is replayed to late joiners.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := env.ParseAs[serveConfig]()
			if err != nil {
				return fmt.Errorf("parsing environment: %w", err)
			}
			if addr != "" {
				cfg.Addr = addr
			}
			return runServe(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (overrides $FORCEGRAPH_ADDR)")
	return cmd
}

func runServe(ctx context.Context, cfg serveConfig) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := share.NewHub()
	hub.Limit = rate.Limit(cfg.Limit)
	hub.Burst = cfg.Burst

	mux := http.NewServeMux()
	mux.Handle(cfg.Path, hub)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	srv := &http.Server{Addr: cfg.Addr, Handler: mux}
	errc := make(chan error, 1)
	go func() {
		slog.Info("relay listening", "addr", cfg.Addr, "path", cfg.Path)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	slog.Info("shutting down", "grace", cfg.Grace)
	shctx, cancel := context.WithTimeout(context.Background(), cfg.Grace)
	defer cancel()
	if err := srv.Shutdown(shctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
