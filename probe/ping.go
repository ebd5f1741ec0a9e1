package probe

import (
	"context"
	"os/exec"
	"regexp"
	"runtime"
	"strconv"
	"strings"
)

// pingTimeRegex extracts per-packet round-trip times from ping output.
// Both "time=10.5 ms" and "time=10.5ms" forms occur in the wild.
var pingTimeRegex = regexp.MustCompile(`time=([\d.]+)\s?ms`)

// pingCountFlag is the repeat-count flag of the platform ping binary.
func pingCountFlag() string {
	if runtime.GOOS == "windows" {
		return "-n"
	}
	return "-c"
}

// Ping invokes the platform ping binary against the given host and
// returns the mean round-trip time over all replies. The subprocess
// has no enforced timeout beyond the binary's own behavior; cancel the
// context to kill it.
func (p *Prober) Ping(ctx context.Context, host string, count int) (*PingResult, error) {
	if count <= 0 {
		count = 1
	}

	cmd := exec.CommandContext(ctx, p.pingBinary, pingCountFlag(), strconv.Itoa(count), host)
	output, err := cmd.CombinedOutput()
	if err != nil {
		detail := strings.TrimSpace(string(output))
		if detail == "" {
			detail = err.Error()
		}
		p.mgr.Debug("ping failed", "host", host, "err", err)
		return nil, &Unavailable{Reason: ReasonNetwork, Detail: detail}
	}

	result, ok := parsePingOutput(string(output))
	if !ok {
		return nil, &Unavailable{
			Reason: ReasonProtocol,
			Detail: "no round-trip times found in ping output",
		}
	}
	return result, nil
}

// parsePingOutput extracts all round-trip times and computes their
// arithmetic mean. Returns false when no time could be extracted.
func parsePingOutput(output string) (*PingResult, bool) {
	matches := pingTimeRegex.FindAllStringSubmatch(output, -1)
	if len(matches) == 0 {
		return nil, false
	}

	times := make([]float64, 0, len(matches))
	var sum float64
	for _, match := range matches {
		value, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			continue
		}
		times = append(times, value)
		sum += value
	}
	if len(times) == 0 {
		return nil, false
	}

	return &PingResult{
		AvgLatency: sum / float64(len(times)),
		Times:      times,
	}, true
}
