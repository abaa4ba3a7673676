package ports

import (
	"context"
	"time"
)

// Latency models the round trip a simulated service call would take.
type Latency interface {
	// Wait returns after the simulated delay, or early with ctx.Err().
	Wait(ctx context.Context) error
	Delay() time.Duration
}
