package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingResetter struct {
	calls atomic.Int32
}

func (r *countingResetter) ResetDailyMissions() int {
	r.calls.Add(1)
	return 2
}

func TestManualReset(t *testing.T) {
	r := &countingResetter{}
	s := New(r, "", nil)

	assert.Equal(t, 2, s.RunManualReset())
	assert.Equal(t, int32(1), r.calls.Load())
	assert.Equal(t, DefaultResetAt, s.resetAt)
}

func TestStartSchedulesNextBoundary(t *testing.T) {
	r := &countingResetter{}
	s := New(r, "03:30", nil)
	require.NoError(t, s.Start())
	defer s.Stop()

	next := s.NextReset().UTC()
	assert.Equal(t, 3, next.Hour())
	assert.Equal(t, 30, next.Minute())
	assert.True(t, next.After(time.Now().Add(-time.Second)))
}

func TestStartRejectsBadTime(t *testing.T) {
	s := New(&countingResetter{}, "25:99", nil)
	assert.Error(t, s.Start())
	s.Stop()
}
