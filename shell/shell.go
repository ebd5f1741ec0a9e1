// Package shell runs the interactive menu loop.
package shell

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/pingdeck/pingdeck/config"
	"github.com/pingdeck/pingdeck/history"
	"github.com/pingdeck/pingdeck/mgr"
	"github.com/pingdeck/pingdeck/probe"
	"github.com/pingdeck/pingdeck/speedtest"
	"github.com/pingdeck/pingdeck/sysmon"
)

// errInputClosed is returned by readLine when no more input can arrive.
var errInputClosed = errors.New("input closed")

// Shell is the interactive menu module.
type Shell struct {
	mgr      *mgr.Manager
	instance instance

	printer *Printer

	in    io.Reader
	lines chan string

	exited chan struct{}
}

type instance interface {
	Version() string
	Config() *config.Config
	Prober() *probe.Prober
	SpeedTest() *speedtest.Runner
	SysMon() *sysmon.Monitor
	History() *history.History
}

// New returns a new shell reading from stdin.
func New(instance instance) *Shell {
	cfg := instance.Config()
	theme := NewTheme(cfg.Theme(), cfg.ActivePalette())

	return &Shell{
		mgr:      mgr.New("shell"),
		instance: instance,
		printer:  NewPrinter(theme),
		in:       os.Stdin,
		lines:    make(chan string),
		exited:   make(chan struct{}),
	}
}

// Manager returns the module manager.
func (s *Shell) Manager() *mgr.Manager {
	return s.mgr
}

// Start starts the menu loop.
func (s *Shell) Start() error {
	// The input reader blocks on stdin and cannot be canceled, so it
	// runs detached from the manager. The menu worker consumes lines
	// through a channel and stays cancelable.
	go s.readInput()

	s.mgr.Go("menu loop", s.menuLoop)
	return nil
}

// Stop stops the shell.
func (s *Shell) Stop() error {
	return nil
}

// Exited is closed when the user chose to exit.
func (s *Shell) Exited() <-chan struct{} {
	return s.exited
}

func (s *Shell) readInput() {
	scanner := bufio.NewScanner(s.in)
	for scanner.Scan() {
		s.lines <- strings.TrimSpace(scanner.Text())
	}
	close(s.lines)
}

// readLine returns the next input line.
// It fails when input is exhausted or the module is stopping.
func (s *Shell) readLine(w *mgr.WorkerCtx) (string, error) {
	select {
	case line, ok := <-s.lines:
		if !ok {
			return "", errInputClosed
		}
		return line, nil
	case <-w.Done():
		return "", w.Ctx().Err()
	}
}

// prompt prints the input marker and reads one line.
func (s *Shell) prompt(w *mgr.WorkerCtx) (string, error) {
	s.printer.Printf("> ")
	return s.readLine(w)
}

// ask prints a question and reads one line.
func (s *Shell) ask(w *mgr.WorkerCtx, question string) (string, error) {
	s.printer.Printf("%s", question)
	return s.readLine(w)
}

func (s *Shell) menuLoop(w *mgr.WorkerCtx) error {
	defer close(s.exited)

	s.printBanner()

	err := s.mainMenu(w)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errInputClosed):
		s.mgr.Info("input closed, exiting")
		return nil
	case errors.Is(err, w.Ctx().Err()):
		return nil
	default:
		return err
	}
}
