package shell

import (
	"fmt"
	"strings"
	"time"

	"github.com/pingdeck/pingdeck/mgr"
	"github.com/pingdeck/pingdeck/probe"
	"github.com/pingdeck/pingdeck/sysmon"
)

// probeHost runs the full probe for a user-chosen host: ping with the
// configured count, certificate info and negotiated TLS version.
// No network call runs after the last result line is printed; the menu
// is ready for input again right away.
func (s *Shell) probeHost(w *mgr.WorkerCtx, host string) {
	prober := s.instance.Prober()

	s.printer.Printf("Pinging %s...\n", host)
	country := prober.Country(w.Ctx(), host)
	ping, pingErr := s.pingHost(w, host)

	cert, certErr := prober.Certificate(w.Ctx(), host)
	s.printCertificate(cert)

	version := prober.TLSVersion(w.Ctx(), host)
	s.printer.Cyanln("    Encryption Type: %s", version)

	s.instance.History().Add(&probe.Report{
		Host:       host,
		Taken:      time.Now().UTC(),
		Country:    country,
		Ping:       ping,
		PingErr:    asUnavailable(pingErr),
		Cert:       cert,
		CertErr:    asUnavailable(certErr),
		TLSVersion: version,
	})
}

// pingHost pings with the configured count and prints the outcome.
func (s *Shell) pingHost(w *mgr.WorkerCtx, host string) (*probe.PingResult, error) {
	count := s.instance.Config().GetPingCount()

	result, err := s.instance.Prober().Ping(w.Ctx(), host, count)
	if err != nil {
		s.printer.Redln("Ping to %s failed.", host)
		return nil, err
	}

	s.printer.Greenln("Ping to %s successful. Avg Ping Time: %.2f ms", host, result.AvgLatency)
	return result, nil
}

// displayStatus probes a host once and prints a one-glance status
// block. The report is recorded in the history.
func (s *Shell) displayStatus(w *mgr.WorkerCtx, host string) {
	report := s.instance.Prober().Status(w.Ctx(), host)
	s.instance.History().Add(report)

	theme := s.printer.Theme()
	var status string
	if report.Ping != nil {
		status = theme.Green(fmt.Sprintf("Available - Ping: %.2f ms", report.Ping.AvgLatency))
	} else {
		status = theme.Red("Unavailable")
	}
	s.printer.Printf("  - %s (%s) - %s\n", host, report.Country, status)

	s.printCertificate(report.Cert)
	s.printer.Cyanln("    Encryption Type: %s", report.TLSVersion)
}

func (s *Shell) printCertificate(cert *probe.CertInfo) {
	if cert == nil {
		s.printer.Yellowln("    Could not retrieve certificate information.")
		return
	}

	s.printer.Greenln("    Certificate Name: %s", cert.CommonName)

	lifetime := cert.Lifetime(time.Now())
	if lifetime > 0 {
		s.printer.Greenln("    Certificate Lifetime: %s", formatLifetime(lifetime))
	} else {
		s.printer.Yellowln("    Could not determine certificate lifetime.")
	}
}

// formatLifetime renders a remaining lifetime as days and hours.
func formatLifetime(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	return fmt.Sprintf("%d days, %d hours", days, hours)
}

func (s *Shell) speedTest(w *mgr.WorkerCtx) {
	s.printer.Println("Running speed test, this can take a minute...")

	result, err := s.instance.SpeedTest().Run(w.Ctx())
	if err != nil {
		s.printer.Redln("Speed test failed: %s", err.Error())
		return
	}

	s.printer.Greenln("\n--- Speed Test Results ---")
	s.printer.Printf("  Ping: %s\n", result.Ping)
	s.printer.Printf("  Download: %s\n", result.Download)
	s.printer.Printf("  Upload: %s\n", result.Upload)
	s.printer.Printf("  External IP: %s\n\n", result.ExternalIP)
}

func (s *Shell) versionInfo() {
	s.printer.Yellowln("\n--- Version Information ---")
	s.printer.Printf("  pingdeck Version: %s\n\n", s.instance.Version())
}

func (s *Shell) resolveHostname(w *mgr.WorkerCtx) error {
	host, err := s.ask(w, "Enter hostname to resolve: ")
	if err != nil {
		return err
	}

	addrs, err := s.instance.Prober().LookupIP(w.Ctx(), host)
	if err != nil || len(addrs) == 0 {
		s.printer.Redln("Could not resolve hostname '%s'.", host)
		return nil
	}

	s.printer.Greenln("Hostname '%s' resolves to: %s", host, addrs[0].String())
	return nil
}

func (s *Shell) headerAnalysis(w *mgr.WorkerCtx) error {
	host, err := s.ask(w, "Enter hostname to analyze HTTP headers: ")
	if err != nil {
		return err
	}

	report, err := s.instance.Prober().Headers(w.Ctx(), host)
	if err != nil {
		s.printer.Redln("Failed to retrieve HTTP headers for %s: %s", host, err.Error())
		return nil
	}

	s.printer.Greenln("\n--- HTTP Headers for %s ---", host)
	for _, header := range report.Headers {
		s.printer.Printf("  %s: %s\n", header.Name, header.Value)
	}
	s.printer.Printf("  Status Code: %d\n", report.StatusCode)
	return nil
}

func (s *Shell) recentResults() {
	reports := s.instance.History().Recent(10)
	if len(reports) == 0 {
		s.printer.Println("No recent results.")
		return
	}

	s.printer.Yellowln("\nRecent Results:")
	for _, report := range reports {
		line := fmt.Sprintf("  %s  %s (%s)",
			report.Taken.Local().Format("15:04:05"), report.Host, report.Country)
		if report.Ping != nil {
			line += fmt.Sprintf(" - %.2f ms", report.Ping.AvgLatency)
		} else {
			line += " - unavailable"
		}
		s.printer.Println(line)
	}
}

func (s *Shell) deviceSpecs(w *mgr.WorkerCtx) error {
	specs := s.instance.SysMon().Specs()

	s.printer.Yellowln("\nDevice Specifications - Enter 'q' to quit:")
	s.printer.Printf("  Platform: %s\n", specs.Platform)
	s.printer.Printf("  Hostname: %s\n", specs.Hostname)
	s.printer.Printf("  CPU Model: %s\n", specs.CPUModel)
	s.printer.Printf("  Total Memory: %.2f GB\n", specs.TotalMemGB)
	s.printer.Printf("  Go Version: %s\n", specs.GoVersion)

	theme := s.printer.Theme()
	s.instance.SysMon().Watch(func(sample sysmon.Sample) {
		s.printer.Printf("\r  %s  %s",
			theme.Cyan(fmt.Sprintf("CPU Usage: %s %.1f%%", usageBar(sample.CPUPercent), sample.CPUPercent)),
			theme.Magenta(fmt.Sprintf("RAM Usage: %.2f GB", sample.UsedMemGB)),
		)
	})
	defer s.instance.SysMon().StopWatch()

	for {
		line, err := s.readLine(w)
		if err != nil {
			return err
		}
		if strings.EqualFold(line, "q") {
			s.printer.Println("\nReturning to Settings Menu...")
			return nil
		}
	}
}

// usageBar renders a 20-slot progress bar for a 0-100 percentage.
func usageBar(percent float64) string {
	filled := int(percent / 5)
	if filled < 0 {
		filled = 0
	}
	if filled > 20 {
		filled = 20
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(" ", 20-filled) + "]"
}

// asUnavailable keeps typed probe failures in recorded reports.
func asUnavailable(err error) *probe.Unavailable {
	if err == nil {
		return nil
	}
	if u, ok := err.(*probe.Unavailable); ok { //nolint:errorlint // direct returns only
		return u
	}
	return &probe.Unavailable{Reason: probe.ReasonNetwork, Detail: err.Error()}
}
