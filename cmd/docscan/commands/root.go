// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package commands implements the docscan command tree.
package commands

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gogpu/docscan"
	"github.com/gogpu/docscan/cmd/docscan/ui"
	"github.com/gogpu/docscan/internal/config"
	"github.com/gogpu/docscan/storage"
)

// app holds the flags and configuration shared by every subcommand.
type app struct {
	cfgFile  string
	envFiles []string
	verbose  bool
	noColor  bool

	cfg *config.Config
}

// NewRootCmd builds the docscan command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "docscan",
		Short: "Rectify, filter and export scanned document photos",
		Long: `docscan turns a photo of a paper document into an upright page.

Give the four corners of the page as fractional coordinates (top-left,
top-right, bottom-right, bottom-left); docscan picks the closest standard
paper ratio and warps the quad onto it. Pages can then be filtered,
rotated and bundled into a PDF.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file path (YAML)")
	root.PersistentFlags().StringSliceVar(&a.envFiles, "env-file", nil, "dotenv files with DOCSCAN_* settings (default .env)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		newCropCmd(a),
		newFilterCmd(a),
		newRotateCmd(a),
		newExportCmd(a),
		newPreviewCmd(a),
		newOverlayCmd(a),
		newDetectCmd(a),
	)
	return root
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	ui.Init(a.noColor)

	cfg, err := config.Load(a.cfgFile, a.envFiles...)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	if a.verbose {
		level = slog.LevelDebug
	}
	docscan.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
	})))
	return nil
}

// newScanner wires a scanner reading files and writing into outDir, or the
// configured output directory when outDir is empty. The returned func
// releases the worker pool.
func (a *app) newScanner(outDir string) (*docscan.Scanner, func()) {
	if outDir == "" {
		outDir = a.cfg.OutputDir
	}
	rect := docscan.NewRectifier(a.cfg.RectifierOptions()...)
	sink := storage.NewFileSink(outDir, storage.WithJPEGQuality(a.cfg.JPEGQuality))
	s := docscan.NewScanner(storage.FileSource{}, sink, rect)
	return s, func() {
		s.Close()
		rect.Close()
	}
}

func (a *app) outputDir(flag string) string {
	if flag != "" {
		return flag
	}
	return a.cfg.OutputDir
}
