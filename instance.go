// Package pingdeck assembles the network diagnostics shell.
package pingdeck

import (
	"fmt"

	"github.com/pingdeck/pingdeck/config"
	"github.com/pingdeck/pingdeck/history"
	"github.com/pingdeck/pingdeck/mgr"
	"github.com/pingdeck/pingdeck/probe"
	"github.com/pingdeck/pingdeck/shell"
	"github.com/pingdeck/pingdeck/speedtest"
	"github.com/pingdeck/pingdeck/sysmon"
)

// Instance is an instance of the diagnostics shell.
type Instance struct {
	*mgr.Group

	version string
	config  *config.Config

	history   *history.History
	prober    *probe.Prober
	speedtest *speedtest.Runner
	sysmon    *sysmon.Monitor
	shell     *shell.Shell
}

// New returns a new instance.
// If historyPath is empty, probe reports are kept in memory only.
func New(version string, c *config.Config, historyPath string) (*Instance, error) {
	// Create instance to pass it to modules.
	instance := &Instance{
		version: version,
		config:  c,
	}

	var err error
	instance.history, err = history.New(historyPath, history.DefaultCapacity)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	instance.prober = probe.New(instance)
	instance.speedtest = speedtest.New()
	instance.sysmon = sysmon.New()
	instance.shell = shell.New(instance)

	// Add all modules to instance group.
	instance.Group = mgr.NewGroup(
		instance.history,
		instance.prober,
		instance.speedtest,
		instance.sysmon,

		instance.shell,
	)

	return instance, nil
}

// Version returns the version.
func (i *Instance) Version() string {
	return i.version
}

// Config returns the config.
func (i *Instance) Config() *config.Config {
	return i.config
}

// History returns the probe report history.
func (i *Instance) History() *history.History {
	return i.history
}

// Prober returns the host prober.
func (i *Instance) Prober() *probe.Prober {
	return i.prober
}

// SpeedTest returns the speed test runner.
func (i *Instance) SpeedTest() *speedtest.Runner {
	return i.speedtest
}

// SysMon returns the device monitor.
func (i *Instance) SysMon() *sysmon.Monitor {
	return i.sysmon
}

// Shell returns the interactive shell.
func (i *Instance) Shell() *shell.Shell {
	return i.shell
}
