// Copyright (c) 2026, The Gravitree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gravitree/forcegraph"
	"github.com/gravitree/forcegraph/graph"
	"github.com/gravitree/forcegraph/layout"
	"github.com/spf13/cobra"
)

// layoutOptions collects the flags of the layout command.
type layoutOptions struct {
	config   string
	source   string
	seed     int64
	maxSteps int
	dt       float32
	out      string
	watch    bool
}

func newLayoutCommand() *cobra.Command {
	opts := &layoutOptions{}
	cmd := &cobra.Command{
		Use:   "layout [document]",
		Short: "Run the force simulation headlessly and print node positions",
		Long: `layout fetches a graph document, runs the force simulation until it
converges (or the step cap is reached), and writes the resulting node
positions as JSON.

The document argument is an http(s) URL or a local file path; it
overrides DocumentURL from --config. With --watch the document must be
a local file and the layout is re-run every time the file changes.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.source = args[0]
			}
			return runLayout(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "TOML configuration file")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "seed for the initial placement jitter")
	cmd.Flags().IntVar(&opts.maxSteps, "max-steps", 10000, "step cap if the simulation does not converge")
	cmd.Flags().Float32Var(&opts.dt, "dt", 1.0/60, "simulation time step in seconds")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "write positions to this file instead of stdout")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "re-run the layout whenever the document file changes")
	return cmd
}

func runLayout(cmd *cobra.Command, opts *layoutOptions) error {
	cf := forcegraph.NewConfig()
	if opts.config != "" {
		cf = forcegraph.OpenConfig(opts.config)
	}
	if opts.source != "" {
		cf.DocumentURL = opts.source
	}
	if cf.DocumentURL == "" {
		return fmt.Errorf("no graph document: pass one as an argument or set DocumentURL in the configuration")
	}
	if !opts.watch {
		return layoutOnce(cmd.OutOrStdout(), cf, opts)
	}
	if strings.Contains(cf.DocumentURL, "://") {
		return fmt.Errorf("--watch needs a local file, not %q", cf.DocumentURL)
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	run := func() {
		if err := layoutOnce(cmd.OutOrStdout(), cf, opts); err != nil {
			slog.Error("layout", "document", cf.DocumentURL, "err", err)
		}
	}
	run()
	if err := graph.Watch(ctx, cf.DocumentURL, run); err != nil {
		return fmt.Errorf("watching %s: %w", cf.DocumentURL, err)
	}
	slog.Info("watching document", "path", cf.DocumentURL)
	<-ctx.Done()
	return nil
}

// nodePosition is one row of the layout command output.
type nodePosition struct {
	ID string  `json:"id"`
	X  float32 `json:"x"`
	Y  float32 `json:"y"`
	Z  float32 `json:"z"`
}

// layoutOnce fetches, builds, simulates to convergence, and writes the
// positions. It is the whole layout pipeline minus any rendering.
func layoutOnce(w io.Writer, cf *forcegraph.Config, opts *layoutOptions) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	doc, err := graph.Fetch(ctx, cf.DocumentURL)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", cf.DocumentURL, err)
	}
	gr, err := graph.Build(doc, cf.BuildOptions())
	if err != nil {
		return err
	}
	sm := layout.NewSimulation(gr)
	sm.SetForce(layout.Charge, cf.ChargeForce)
	sm.SetForce(layout.CenterX, cf.XForce)
	sm.SetForce(layout.CenterY, cf.YForce)
	sm.SetForce(layout.CenterZ, cf.ZForce)
	sm.Init(opts.seed)
	for sm.Running() && sm.Steps() < opts.maxSteps {
		sm.Step(opts.dt)
	}
	slog.Debug("layout finished", "nodes", len(gr.Nodes), "steps", sm.Steps(), "metric", sm.Metric())

	rows := make([]nodePosition, len(gr.Nodes))
	for i, gn := range gr.Nodes {
		rows[i] = nodePosition{ID: gn.ID, X: gn.Pos.X, Y: gn.Pos.Y, Z: gn.Pos.Z}
	}
	data, err := json.MarshalIndent(rows, "", "\t")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if opts.out != "" {
		return os.WriteFile(opts.out, data, 0666)
	}
	_, err = w.Write(data)
	return err
}
