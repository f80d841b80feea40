package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScheduler_RunOnceFiresEveryJobInOrder(t *testing.T) {
	s := NewScheduler()

	var order []string
	s.AddJob("first", time.Hour, func(ctx context.Context) error {
		order = append(order, "first")
		return nil
	})
	s.AddJob("second", time.Hour, func(ctx context.Context) error {
		order = append(order, "second")
		return errors.New("boom")
	})
	s.AddJob("third", time.Hour, func(ctx context.Context) error {
		order = append(order, "third")
		return nil
	})

	s.RunOnce(context.Background())

	// A failing job must not stop the ones after it.
	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestScheduler_StartRunsJobImmediatelyAndStopWaits(t *testing.T) {
	s := NewScheduler()

	var runs atomic.Int64
	done := make(chan struct{})
	s.AddJob("reconcile", time.Hour, func(ctx context.Context) error {
		if runs.Add(1) == 1 {
			close(done)
		}
		return nil
	})

	s.Start()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not fire on start")
	}
	s.Stop()

	assert.Equal(t, int64(1), runs.Load())
}

func TestScheduler_AddJobAfterStartIsIgnored(t *testing.T) {
	s := NewScheduler()
	s.Start()
	defer s.Stop()

	var runs atomic.Int64
	s.AddJob("late", time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	s.RunOnce(context.Background())
	assert.Equal(t, int64(0), runs.Load())
}
