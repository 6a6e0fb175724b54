// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/docbuilder/internal/ctxlog"
)

// Watch reads sigCh until it is closed or ctx is done. The second signal of
// the same kind cancels the run; the first one is left to the jobs.
func Watch(ctx context.Context, sigCh chan os.Signal, cancel context.CancelFunc) {
	seen := make(map[os.Signal]struct{})

	for {
		select {
		case <-ctx.Done():
			return
		case sig, ok := <-sigCh:
			if !ok {
				return
			}

			if _, dup := seen[sig]; dup {
				ctxlog.Warn(ctx, "second signal received, cancelling run", "signal", sig.String())
				cancel()

				return
			}

			ctxlog.Info(ctx, "signal received, forwarded to running jobs", "signal", sig.String())

			seen[sig] = struct{}{}
		}
	}
}
