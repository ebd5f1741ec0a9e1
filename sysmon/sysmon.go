// Package sysmon reports device specifications and live CPU/RAM usage.
package sysmon

import (
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/tevino/abool"

	"github.com/pingdeck/pingdeck/mgr"
)

// sampleInterval is how often the live view takes a usage sample.
const sampleInterval = 500 * time.Millisecond

// Specs holds static device information.
// Fields that cannot be determined on this platform are "N/A".
type Specs struct {
	Platform    string
	Hostname    string
	CPUModel    string
	TotalMemGB  float64
	GoVersion   string
}

// Sample is one live usage measurement.
type Sample struct {
	CPUPercent float64
	UsedMemGB  float64
}

// Monitor samples device usage as a periodic task.
type Monitor struct {
	mgr *mgr.Manager

	running *abool.AtomicBool
	task    *mgr.Task

	lock     sync.Mutex
	callback func(Sample)
	lastCPU  cpuTimes
}

// cpuTimes is a cumulative CPU time reading used for delta computation.
type cpuTimes struct {
	idle  uint64
	total uint64
}

// New returns a new device monitor.
func New() *Monitor {
	return &Monitor{
		mgr:     mgr.New("sysmon"),
		running: abool.New(),
	}
}

// Manager returns the module manager.
func (m *Monitor) Manager() *mgr.Manager {
	return m.mgr
}

// Start starts the monitor. The sampling task exists for the module
// lifetime but only runs while a watcher is attached.
func (m *Monitor) Start() error {
	m.task = m.mgr.NewTask("usage sample", m.sampleWorker)
	return nil
}

// Stop stops the monitor and any live view.
func (m *Monitor) Stop() error {
	m.StopWatch()
	return nil
}

// Specs returns static device information.
func (m *Monitor) Specs() *Specs {
	kernel := readKernelRelease()
	platform := runtime.GOOS
	if kernel != "" {
		platform += " " + kernel
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "N/A"
	}

	return &Specs{
		Platform:   platform,
		Hostname:   hostname,
		CPUModel:   readCPUModel(),
		TotalMemGB: readTotalMemGB(),
		GoVersion:  runtime.Version(),
	}
}

// Watch starts periodic usage sampling and calls fn for every sample.
// Only one watcher is supported; watching again replaces the callback.
// Call StopWatch to cancel; stopping the module cancels as well.
func (m *Monitor) Watch(fn func(Sample)) {
	m.lock.Lock()
	m.callback = fn
	m.lastCPU = readCPUTimes()
	m.lock.Unlock()

	m.running.Set()
	m.task.Repeat(sampleInterval)
}

// StopWatch cancels the live view.
func (m *Monitor) StopWatch() {
	m.running.UnSet()
	if m.task != nil {
		m.task.Repeat(0)
	}
}

func (m *Monitor) sampleWorker(w *mgr.WorkerCtx) error {
	if m.running.IsNotSet() {
		return nil
	}

	m.lock.Lock()
	fn := m.callback
	last := m.lastCPU
	current := readCPUTimes()
	m.lastCPU = current
	m.lock.Unlock()

	if fn == nil {
		return nil
	}

	fn(Sample{
		CPUPercent: cpuPercent(last, current),
		UsedMemGB:  readUsedMemGB(),
	})
	return nil
}

// cpuPercent computes the busy share between two cumulative readings.
func cpuPercent(last, current cpuTimes) float64 {
	totalDelta := float64(current.total) - float64(last.total)
	idleDelta := float64(current.idle) - float64(last.idle)
	if totalDelta <= 0 {
		return 0
	}
	pct := (totalDelta - idleDelta) / totalDelta * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
