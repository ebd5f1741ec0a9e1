package mgr

import (
	"sync/atomic"
	"testing"
	"time"
)

func conditionMetWithin(target time.Duration, tolerance float64, condition func() bool) bool {
	start := time.Now()
	absoluteTolerance := time.Duration(float64(target) * tolerance)
	lowerBound := target - absoluteTolerance
	upperBound := target + absoluteTolerance

	for !condition() {
		if time.Since(start) > upperBound {
			return false
		}
		time.Sleep(1 * time.Millisecond) // Fixed check interval
	}
	elapsed := time.Since(start)
	return elapsed >= lowerBound && elapsed <= upperBound
}

func TestTaskDelay(t *testing.T) {
	t.Parallel()

	m := New("DelayTest")
	value := atomic.Bool{}

	// Create a task that will execute after 1 second.
	m.NewTask("test", func(w *WorkerCtx) error {
		value.Store(true)
		return nil
	}).Delay(1 * time.Second)

	// Check if value is set after 1 second with a 10% tolerance.
	if !conditionMetWithin(1*time.Second, 0.1, value.Load) {
		t.Errorf("task did not execute within the expected delay")
	}
}

func TestTaskRepeat(t *testing.T) {
	t.Parallel()

	m := New("RepeatTest")
	value := atomic.Bool{}

	// Create a task that should repeat every 100 milliseconds.
	m.NewTask("test", func(w *WorkerCtx) error {
		value.Store(true)
		return nil
	}).Repeat(100 * time.Millisecond)

	// Check 10 consecutive executions within 100 milliseconds with a 20% tolerance.
	for i := 0; i < 10; i++ {
		if !conditionMetWithin(100*time.Millisecond, 0.2, value.Load) {
			t.Errorf("task did not repeat within the expected interval (iteration %d)", i+1)
			return
		}
		value.Store(false) // Reset value for the next iteration
	}
}

func TestTaskStopsOnCancel(t *testing.T) {
	t.Parallel()

	m := New("CancelTest")
	var runs atomic.Int32

	m.Repeat("test", 50*time.Millisecond, func(w *WorkerCtx) error {
		runs.Add(1)
		return nil
	})

	// Let it tick a few times, then cancel.
	time.Sleep(180 * time.Millisecond)
	m.Cancel()
	if !m.WaitForWorkers(time.Second) {
		t.Fatal("workers did not stop in time")
	}

	after := runs.Load()
	time.Sleep(150 * time.Millisecond)
	if runs.Load() != after {
		t.Errorf("task kept running after cancel: %d -> %d", after, runs.Load())
	}
}

func TestGroupStartStop(t *testing.T) {
	t.Parallel()

	tm := &testModule{mgr: New("test module")}
	g := NewGroup(tm)

	if err := g.Start(); err != nil {
		t.Fatal(err)
	}
	if !tm.started {
		t.Error("module was not started")
	}
	if !g.Stop() {
		t.Error("group did not stop cleanly")
	}
	if !tm.stopped {
		t.Error("module was not stopped")
	}
}

type testModule struct {
	mgr     *Manager
	started bool
	stopped bool
}

func (m *testModule) Manager() *Manager { return m.mgr }

func (m *testModule) Start() error {
	m.started = true
	return nil
}

func (m *testModule) Stop() error {
	m.stopped = true
	return nil
}
