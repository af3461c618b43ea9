package utils

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"go.viam.com/test"
	"go.viam.com/utils/testutils"
)

func TestStoppableWorkers(t *testing.T) {
	var started atomic.Int32
	sw := NewStoppableWorkers(func(ctx context.Context) {
		started.Add(1)
		<-ctx.Done()
	})
	sw.AddWorkers(func(ctx context.Context) {
		started.Add(1)
		<-ctx.Done()
	})
	testutils.WaitForAssertion(t, func(tb testing.TB) {
		tb.Helper()
		test.That(tb, started.Load(), test.ShouldEqual, 2)
	})
	sw.Stop()
	test.That(t, sw.Context().Err(), test.ShouldNotBeNil)

	// Workers added after Stop never run.
	sw.AddWorkers(func(ctx context.Context) { started.Add(1) })
	test.That(t, started.Load(), test.ShouldEqual, 2)
}

func TestStoppableWorkerWithTicker(t *testing.T) {
	mock := clock.NewMock()
	var ticks atomic.Int32
	sw := NewStoppableWorkerWithTicker(mock, 10*time.Millisecond, func(ctx context.Context) {
		ticks.Add(1)
	})
	defer sw.Stop()

	for i := 0; i < 3; i++ {
		mock.Add(10 * time.Millisecond)
		want := int32(i + 1)
		testutils.WaitForAssertion(t, func(tb testing.TB) {
			tb.Helper()
			test.That(tb, ticks.Load(), test.ShouldEqual, want)
		})
	}
}
