package database

import (
	"context"
	"time"
)

// Gauge receives the health state: 1 healthy, 0 not.
type Gauge interface {
	Set(float64)
}

// WatchHealth pings the connection every interval until ctx is done and
// reports each result to up. A ping shares the single connection with
// requests, so it waits behind them for at most interval.
func (r *Registry) WatchHealth(ctx context.Context, interval time.Duration, up Gauge) error {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	healthy := true
	up.Set(1)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		pingCtx, cancel := context.WithTimeout(ctx, interval)
		err := r.Ping(pingCtx)
		cancel()
		if ctx.Err() != nil {
			return nil
		}

		switch {
		case err != nil && healthy:
			r.logger.Warn("database ping failed", "error", err)
		case err == nil && !healthy:
			r.logger.Info("database reachable again")
		}
		healthy = err == nil
		if healthy {
			up.Set(1)
		} else {
			up.Set(0)
		}
	}
}
