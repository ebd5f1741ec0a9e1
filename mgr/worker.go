package mgr

import (
	"context"
	"fmt"
	"log/slog"
)

// WorkerCtx is handed to workers and provides context and logging.
type WorkerCtx struct {
	ctx    context.Context
	logger *slog.Logger
}

// WorkerPanic is returned when a worker panicked.
type WorkerPanic struct {
	Value any
}

// Error implements the error interface.
func (wp *WorkerPanic) Error() string {
	return fmt.Sprintf("worker panic: %v", wp.Value)
}

// Ctx returns the worker context.
func (w *WorkerCtx) Ctx() context.Context {
	return w.ctx
}

// Done returns the context Done channel.
func (w *WorkerCtx) Done() <-chan struct{} {
	return w.ctx.Done()
}

// IsDone checks whether the worker context is done.
func (w *WorkerCtx) IsDone() bool {
	return w.ctx.Err() != nil
}

// Debug logs at debug level with the worker attributes.
func (w *WorkerCtx) Debug(msg string, args ...any) { w.logger.Debug(msg, args...) }

// Info logs at info level with the worker attributes.
func (w *WorkerCtx) Info(msg string, args ...any) { w.logger.Info(msg, args...) }

// Warn logs at warn level with the worker attributes.
func (w *WorkerCtx) Warn(msg string, args ...any) { w.logger.Warn(msg, args...) }

// Error logs at error level with the worker attributes.
func (w *WorkerCtx) Error(msg string, args ...any) { w.logger.Error(msg, args...) }
