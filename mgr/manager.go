package mgr

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// DefaultWorkerStopTimeout is how long WaitForWorkers waits by default.
const DefaultWorkerStopTimeout = 10 * time.Second

// Manager provides logging, context and worker supervision for a module.
type Manager struct {
	name   string
	logger *slog.Logger

	ctx       context.Context
	cancelCtx context.CancelFunc

	workerCnt  atomic.Int32
	workerDone chan struct{}
}

// New returns a new manager with the given name.
func New(name string) *Manager {
	ctx, cancelCtx := context.WithCancel(context.Background())
	return &Manager{
		name:       name,
		logger:     slog.Default().With("module", name),
		ctx:        ctx,
		cancelCtx:  cancelCtx,
		workerDone: make(chan struct{}, 1),
	}
}

// Name returns the manager name.
func (m *Manager) Name() string {
	return m.name
}

// Ctx returns the manager context.
// It is canceled when the manager is canceled.
func (m *Manager) Ctx() context.Context {
	return m.ctx
}

// Cancel cancels the manager context.
// All workers are expected to stop promptly afterwards.
func (m *Manager) Cancel() {
	m.cancelCtx()
}

// Done returns the context Done channel.
func (m *Manager) Done() <-chan struct{} {
	return m.ctx.Done()
}

// IsDone checks whether the manager context is done.
func (m *Manager) IsDone() bool {
	return m.ctx.Err() != nil
}

// Go starts the given function as a supervised worker in a new goroutine.
// Panics are recovered and logged, errors are logged.
func (m *Manager) Go(name string, fn func(w *WorkerCtx) error) {
	m.workerCnt.Add(1)
	go func() {
		defer m.workerFinished()
		m.runWorker(name, fn)
	}()
}

// Do executes the given function synchronously as a supervised worker.
// Panics are recovered and returned as errors.
func (m *Manager) Do(name string, fn func(w *WorkerCtx) error) error {
	m.workerCnt.Add(1)
	defer m.workerFinished()
	return m.runWorker(name, fn)
}

func (m *Manager) runWorker(name string, fn func(w *WorkerCtx) error) (err error) {
	w := &WorkerCtx{
		ctx:    m.ctx,
		logger: m.logger.With("worker", name),
	}

	defer func() {
		if panicVal := recover(); panicVal != nil {
			err = &WorkerPanic{Value: panicVal}
			w.Error("worker panicked", "panic", panicVal)
		}
	}()

	err = fn(w)
	if err != nil {
		w.Error("worker failed", "err", err)
	}
	return err
}

func (m *Manager) workerFinished() {
	m.workerCnt.Add(-1)

	// Notify any waiter, drop notification if nobody listens.
	select {
	case m.workerDone <- struct{}{}:
	default:
	}
}

// WaitForWorkers waits for all workers of this manager to finish,
// but only up to the given maximum duration.
// Use a max of 0 for the default timeout.
// Returns true if all workers finished in time.
func (m *Manager) WaitForWorkers(max time.Duration) bool {
	if m.workerCnt.Load() == 0 {
		return true
	}
	if max <= 0 {
		max = DefaultWorkerStopTimeout
	}

	deadline := time.NewTimer(max)
	defer deadline.Stop()
	for {
		select {
		case <-m.workerDone:
			if m.workerCnt.Load() == 0 {
				return true
			}
		case <-deadline.C:
			return m.workerCnt.Load() == 0
		}
	}
}

// Debug logs at debug level with the manager's module attribute.
func (m *Manager) Debug(msg string, args ...any) { m.logger.Debug(msg, args...) }

// Info logs at info level with the manager's module attribute.
func (m *Manager) Info(msg string, args ...any) { m.logger.Info(msg, args...) }

// Warn logs at warn level with the manager's module attribute.
func (m *Manager) Warn(msg string, args ...any) { m.logger.Warn(msg, args...) }

// Error logs at error level with the manager's module attribute.
func (m *Manager) Error(msg string, args ...any) { m.logger.Error(msg, args...) }
