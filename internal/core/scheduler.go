package core

// scheduler.go runs background maintenance for the session store. The janitor
// is long-running and stops when its context is cancelled.

import (
	"context"
	"log/slog"
	"time"
)

// StartJanitor sweeps expired sessions every interval until ctx is cancelled.
func (st *SessionStore) StartJanitor(ctx context.Context, interval time.Duration) {
	slog.Info("session janitor started", "interval", interval, "ttl", st.ttl)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("session janitor stopped")
			return
		case <-ticker.C:
			start := time.Now()
			removed := st.Sweep()
			slog.Debug("session sweep completed",
				"removed", removed,
				"remaining", st.Len(),
				"duration_ms", time.Since(start).Milliseconds(),
			)
		}
	}
}
