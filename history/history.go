package history

import (
	"fmt"

	"github.com/pingdeck/pingdeck/mgr"
	"github.com/pingdeck/pingdeck/probe"
)

// DefaultCapacity is how many reports are kept when no other capacity
// is configured.
const DefaultCapacity = 50

// History records recent probe reports.
type History struct {
	mgr *mgr.Manager

	storage  Storage
	capacity int
}

// New returns a new report history.
// If storagePath is empty, reports are kept in memory only.
func New(storagePath string, capacity int) (*History, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	var (
		storage Storage
		err     error
	)
	if storagePath != "" {
		storage, err = NewJSONFileStorage(storagePath)
		if err != nil {
			return nil, fmt.Errorf("open report storage: %w", err)
		}
	} else {
		storage = NewMemStorage()
	}

	return &History{
		mgr:      mgr.New("history"),
		storage:  storage,
		capacity: capacity,
	}, nil
}

// Manager returns the module manager.
func (h *History) Manager() *mgr.Manager {
	return h.mgr
}

// Start starts the history.
func (h *History) Start() error {
	return nil
}

// Stop writes the history to storage.
func (h *History) Stop() error {
	if err := h.storage.Flush(); err != nil {
		h.mgr.Warn("failed to flush report storage", "err", err)
	}
	return nil
}

// Add records a report, pruning the oldest entries over capacity.
func (h *History) Add(report *probe.Report) {
	if err := h.storage.AddReport(report); err != nil {
		h.mgr.Warn("failed to record report", "host", report.Host, "err", err)
		return
	}
	h.storage.Prune(h.capacity)
}

// Recent returns up to max reports, newest first.
// A max of zero returns all kept reports.
func (h *History) Recent(max int) []*probe.Report {
	reports, err := h.storage.RecentReports(max)
	if err != nil {
		h.mgr.Warn("failed to load recent reports", "err", err)
		return nil
	}
	return reports
}

// Size returns how many reports are currently kept.
func (h *History) Size() int {
	return h.storage.Size()
}
