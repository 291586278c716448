// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command docscan crops, filters and exports scanned document photos.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gogpu/docscan/cmd/docscan/commands"
	"github.com/gogpu/docscan/cmd/docscan/ui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := commands.Execute(ctx)
	stop()
	if err != nil {
		ui.Error(os.Stderr, err, commands.Hint(err))
		os.Exit(1)
	}
}
