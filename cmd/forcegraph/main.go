// Copyright (c) 2026, The Gravitree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package main provides the forcegraph command line tools: a headless
// layout runner and the shared-state relay server.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "forcegraph",
		Short: "Force-directed graph layout tools",
		Long: `forcegraph computes 3D force-directed layouts for node-link graphs.

The layout command runs the physics simulation headlessly and prints
the converged node positions. The serve command runs the websocket
relay that keeps networked scene instances in sync.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				slog.SetLogLoggerLevel(slog.LevelDebug)
			}
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	cmd.AddCommand(newLayoutCommand())
	cmd.AddCommand(newServeCommand())
	return cmd
}
