// Package scheduler provides the fixed-interval evaluation loop shared by
// both binaries.
package scheduler

import (
	"context"
	"time"
)

// Run invokes fn once immediately, then once per interval until ctx is
// cancelled. Cycles run on the calling goroutine, so they never overlap.
func Run(ctx context.Context, interval time.Duration, fn func(context.Context)) {
	fn(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn(ctx)
		}
	}
}
