// Package history keeps recent probe reports.
package history

import (
	"github.com/pingdeck/pingdeck/probe"
)

// Storage is an interface to a probe report store.
type Storage interface {
	AddReport(report *probe.Report) error
	RecentReports(max int) ([]*probe.Report, error)
	Size() int
	Prune(keep int)
	Flush() error
}
