package tasks

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun(t *testing.T) {
	bgTasks := New(slog.Default(), 3, 10)
	bgTasks.Run()
	var ran atomic.Bool
	bgTasks.Add(func() {
		ran.Store(true)
	})
	err := bgTasks.Shutdown(context.Background())
	assert.NoError(t, err)
	assert.True(t, ran.Load())
	assert.True(t, bgTasks.IsEmpty())
}

func TestShutdownDrainsQueue(t *testing.T) {
	bgTasks := New(slog.Default(), 2, 10)
	bgTasks.Run()
	var counter atomic.Int32
	for i := 0; i < 5; i++ {
		bgTasks.Add(func() {
			counter.Add(1)
		})
	}
	err := bgTasks.Shutdown(context.Background())
	assert.NoError(t, err)
	assert.EqualValues(t, 5, counter.Load())
}
