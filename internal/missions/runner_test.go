package missions

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestTickerStopsWhenStepCompletes(t *testing.T) {
	var calls atomic.Int32
	ticker := StartTicker(context.Background(), time.Millisecond, func() bool {
		return calls.Add(1) == 3
	})

	select {
	case <-ticker.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("ticker did not finish")
	}
	assert.Equal(t, int32(3), calls.Load())

	// Stop after completion is safe
	ticker.Stop()
}

func TestTickerStop(t *testing.T) {
	var calls atomic.Int32
	ticker := StartTicker(context.Background(), time.Millisecond, func() bool {
		calls.Add(1)
		return false
	})

	time.Sleep(10 * time.Millisecond)
	ticker.Stop()
	after := calls.Load()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, after, calls.Load(), "step called after Stop")
	ticker.Stop()
}

func TestTickerParentCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ticker := StartTicker(ctx, time.Hour, func() bool { return false })
	cancel()

	select {
	case <-ticker.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("ticker ignored parent cancellation")
	}
}
