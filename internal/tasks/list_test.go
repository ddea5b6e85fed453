package tasks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddPrepends(t *testing.T) {
	l := DefaultList()

	next, task, ok := l.Add("  Practice two pointers  ")
	require.True(t, ok)
	assert.Equal(t, "Practice two pointers", task.Text)
	assert.False(t, task.IsCompleted)
	assert.Equal(t, task, next.Items()[0])
	assert.Equal(t, 4, next.Len())
	assert.Equal(t, 3, l.Len())
}

func TestAddBlankIgnored(t *testing.T) {
	l := DefaultList()
	next, _, ok := l.Add("   ")
	assert.False(t, ok)
	assert.Equal(t, l.Items(), next.Items())
}

func TestToggle(t *testing.T) {
	l := DefaultList()

	next, ok := l.Toggle("2")
	require.True(t, ok)
	assert.False(t, next.Items()[1].IsCompleted)
	assert.True(t, l.Items()[1].IsCompleted)

	back, _ := next.Toggle("2")
	assert.Equal(t, l.Items(), back.Items())

	_, ok = l.Toggle("missing")
	assert.False(t, ok)
}

func TestDelete(t *testing.T) {
	l := DefaultList()

	next, ok := l.Delete("1")
	require.True(t, ok)
	require.Equal(t, 2, next.Len())
	assert.Equal(t, "2", next.Items()[0].ID)

	same, ok := next.Delete("1")
	assert.False(t, ok)
	assert.Equal(t, next.Items(), same.Items())
}
