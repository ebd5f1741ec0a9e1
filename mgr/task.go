package mgr

import (
	"sync"
	"time"
)

// Task manages a worker that can be triggered, delayed or repeated.
type Task struct {
	mgr  *Manager
	name string
	fn   func(w *WorkerCtx) error

	run    bool
	delay  time.Duration
	repeat time.Duration
	lock   sync.Mutex

	eval chan struct{}
}

// NewTask creates a new task, but does not yet execute or schedule anything.
func (m *Manager) NewTask(name string, fn func(w *WorkerCtx) error) *Task {
	t := &Task{
		mgr:  m,
		name: name,
		fn:   fn,
		eval: make(chan struct{}, 1),
	}
	go t.taskMgr()
	return t
}

// Repeat creates a new task and immediately schedules a repeated execution.
func (m *Manager) Repeat(name string, interval time.Duration, fn func(w *WorkerCtx) error) *Task {
	return m.NewTask(name, fn).Repeat(interval)
}

func (t *Task) taskMgr() {
	for {
		if t.mgr.IsDone() {
			return
		}

		t.lock.Lock()
		run := t.run
		delay := t.delay
		repeat := t.repeat
		t.lock.Unlock()

		switch {
		case run:
			t.lock.Lock()
			t.run = false
			t.lock.Unlock()

			// Execute and ignore error - it is already being logged.
			_ = t.mgr.Do(t.name, t.fn)

		case delay > 0:
			select {
			case <-time.After(delay):
				t.lock.Lock()
				t.delay = 0
				t.lock.Unlock()

				_ = t.mgr.Do(t.name, t.fn)
			case <-t.eval:
				// Re-evaluate.
			case <-t.mgr.Done():
				return
			}

		case repeat > 0:
			ticker := time.NewTicker(repeat)
			select {
			case <-ticker.C:
				_ = t.mgr.Do(t.name, t.fn)
			case <-t.eval:
				// Re-evaluate.
			case <-t.mgr.Done():
				ticker.Stop()
				return
			}
			ticker.Stop()

		default:
			// Nothing scheduled, wait for a change.
			select {
			case <-t.eval:
			case <-t.mgr.Done():
				return
			}
		}
	}
}

func (t *Task) notify() {
	select {
	case t.eval <- struct{}{}:
	default:
	}
}

// Go immediately executes the task.
func (t *Task) Go() *Task {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.run = true
	t.notify()

	return t
}

// Delay executes the task after the given duration.
func (t *Task) Delay(duration time.Duration) *Task {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.delay = duration
	t.notify()

	return t
}

// Repeat repeats the task at the given interval.
// An interval of 0 stops the repeating.
func (t *Task) Repeat(interval time.Duration) *Task {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.repeat = interval
	t.notify()

	return t
}
