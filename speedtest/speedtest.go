// Package speedtest wraps an external speedtest binary with a
// line-oriented simple output mode.
package speedtest

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os/exec"
	"strings"
	"time"

	"github.com/pingdeck/pingdeck/mgr"
)

// ipEndpoint is the public "what is my IP" service.
const ipEndpoint = "https://api.ipify.org"

// requestTimeout bounds the public IP lookup, not the subprocess.
const requestTimeout = 5 * time.Second

// Runner runs speed tests.
type Runner struct {
	mgr *mgr.Manager

	httpClient *http.Client

	// Overridable for tests.
	binary string
	args   []string
	ipURL  string
}

// Result holds one speed test outcome. The three measurements are
// reported as the binary printed them, unit included.
type Result struct {
	Ping     string `json:"ping"`
	Download string `json:"download"`
	Upload   string `json:"upload"`

	// ExternalIP is the caller's public IP, or a message when it
	// could not be retrieved.
	ExternalIP string `json:"external_ip"`
}

// New returns a new speed test runner.
func New() *Runner {
	return &Runner{
		mgr: mgr.New("speedtest"),
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		binary: "speedtest",
		args:   []string{"--simple"},
		ipURL:  ipEndpoint,
	}
}

// Manager returns the module manager.
func (r *Runner) Manager() *mgr.Manager {
	return r.mgr
}

// Start starts the runner.
func (r *Runner) Start() error {
	return nil
}

// Stop stops the runner.
func (r *Runner) Stop() error {
	r.httpClient.CloseIdleConnections()
	return nil
}

// Run executes the speed test binary and parses its simple output.
// A missing binary, non-zero exit or unparseable output each yield an
// error; there is no retry and no partial result.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	cmd := exec.CommandContext(ctx, r.binary, r.args...)

	var stderr strings.Builder
	cmd.Stderr = &stderr
	stdout, err := cmd.Output()
	if err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return nil, errors.New(
				"speedtest binary not found - install it with your package manager (e.g. apt install speedtest-cli)")
		}
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		r.mgr.Warn("speedtest run failed", "err", err)
		return nil, errors.New("speed test failed: " + detail)
	}

	result, err := parseSimpleOutput(string(stdout))
	if err != nil {
		return nil, err
	}

	result.ExternalIP = r.externalIP(ctx)
	return result, nil
}

// parseSimpleOutput parses the three fixed-format lines of the simple
// output mode: "Ping: ...", "Download: ...", "Upload: ...".
func parseSimpleOutput(output string) (*Result, error) {
	output = strings.TrimSpace(output)
	if output == "" {
		return nil, errors.New("speed test produced no output - check your internet connection")
	}

	values := make(map[string]string, 3)
	for _, line := range strings.Split(output, "\n") {
		key, value, found := strings.Cut(strings.TrimSpace(line), ": ")
		if !found {
			continue
		}
		values[key] = value
	}

	result := &Result{
		Ping:     values["Ping"],
		Download: values["Download"],
		Upload:   values["Upload"],
	}
	if result.Ping == "" || result.Download == "" || result.Upload == "" {
		return nil, errors.New("unexpected speed test output format")
	}
	return result, nil
}

// externalIP fetches the caller's public IP address.
// Failures degrade to a message, never fail the speed test.
func (r *Runner) externalIP(ctx context.Context) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.ipURL, nil)
	if err != nil {
		return "Could not retrieve IP address"
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.mgr.Debug("public IP lookup failed", "err", err)
		return "Could not retrieve IP address"
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return "Could not retrieve IP address"
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64))
	if err != nil || len(body) == 0 {
		return "Could not retrieve IP address"
	}
	return strings.TrimSpace(string(body))
}
