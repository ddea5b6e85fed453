package missions

import (
	"context"
	"sync"
	"time"
)

// DefaultTickInterval is the delay between two strike ticks
const DefaultTickInterval = 100 * time.Millisecond

// Ticker calls a step function on a fixed interval until the step reports
// completion or the ticker is stopped.
type Ticker struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// StartTicker runs step in a goroutine every interval. The goroutine exits
// when step returns true, the parent context is cancelled or Stop is called.
func StartTicker(parent context.Context, interval time.Duration, step func() bool) *Ticker {
	if interval <= 0 {
		interval = DefaultTickInterval
	}

	ctx, cancel := context.WithCancel(parent)
	t := &Ticker{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(t.done)
		defer cancel()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if step() {
					return
				}
			}
		}
	}()

	return t
}

// Stop cancels the ticker and waits for its goroutine to exit
func (t *Ticker) Stop() {
	t.once.Do(t.cancel)
	<-t.done
}

// Done is closed when the ticker goroutine has exited
func (t *Ticker) Done() <-chan struct{} {
	return t.done
}
