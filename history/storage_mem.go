package history

import (
	"sync"

	"github.com/pingdeck/pingdeck/probe"
)

// MemStorage is a simple storage implementation using memory only.
type MemStorage struct {
	reports     []*probe.Report
	reportsLock sync.RWMutex
}

// NewMemStorage returns an empty storage.
func NewMemStorage() *MemStorage {
	return &MemStorage{}
}

// AddReport appends a report to the storage.
func (s *MemStorage) AddReport(report *probe.Report) error {
	s.reportsLock.Lock()
	defer s.reportsLock.Unlock()

	s.reports = append(s.reports, report)
	return nil
}

// RecentReports returns up to max reports, newest first.
func (s *MemStorage) RecentReports(max int) ([]*probe.Report, error) {
	s.reportsLock.RLock()
	defer s.reportsLock.RUnlock()

	if max <= 0 || max > len(s.reports) {
		max = len(s.reports)
	}

	result := make([]*probe.Report, 0, max)
	for i := len(s.reports) - 1; i >= len(s.reports)-max; i-- {
		result = append(result, s.reports[i])
	}
	return result, nil
}

// Size returns the current size of the storage.
func (s *MemStorage) Size() int {
	s.reportsLock.RLock()
	defer s.reportsLock.RUnlock()

	return len(s.reports)
}

// Prune removes the oldest entries until only keep entries remain.
func (s *MemStorage) Prune(keep int) {
	s.reportsLock.Lock()
	defer s.reportsLock.Unlock()

	if keep < 0 || len(s.reports) <= keep {
		return
	}
	s.reports = append(s.reports[:0:0], s.reports[len(s.reports)-keep:]...)
}

// Flush does nothing.
func (s *MemStorage) Flush() error {
	return nil
}
