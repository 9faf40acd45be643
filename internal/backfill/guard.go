package backfill

import (
	"errors"

	"go.uber.org/atomic"
)

var ErrAlreadyRunning = errors.New("backfill already running")

// Guard lets one replay run at a time.
type Guard struct {
	running atomic.Bool
}

func (g *Guard) TryAcquire() bool {
	return g.running.CompareAndSwap(false, true)
}

func (g *Guard) Release() {
	g.running.Store(false)
}

func (g *Guard) Running() bool {
	return g.running.Load()
}
