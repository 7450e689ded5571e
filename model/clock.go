package model

import (
	"context"
	"time"
)

// clock calls tick once per interval from a single goroutine, so ticks
// never overlap. done runs once the goroutine exits, whether the clock was
// stopped or its context ended. A stopped clock cannot be restarted.
type clock struct {
	ticker *time.Ticker
	cancel context.CancelFunc
}

func startClock(ctx context.Context, interval time.Duration, tick, done func(*clock)) *clock {
	ctx, cancel := context.WithCancel(ctx)
	c := &clock{
		ticker: time.NewTicker(interval),
		cancel: cancel,
	}
	go c.loop(ctx, tick, done)
	return c
}

func (c *clock) loop(ctx context.Context, tick, done func(*clock)) {
	defer done(c)
	defer c.ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.ticker.C:
			if ctx.Err() != nil {
				return
			}
			tick(c)
		}
	}
}

// stop does not wait for the loop to exit; a tick already in flight sees
// that it no longer owns the machine and returns.
func (c *clock) stop() {
	c.cancel()
	c.ticker.Stop()
}
