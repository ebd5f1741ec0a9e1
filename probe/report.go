package probe

import (
	"fmt"
	"time"
)

// Reason classifies why a probe result is not available.
type Reason string

// Unavailability reasons.
const (
	ReasonNetwork  Reason = "network"
	ReasonTimeout  Reason = "timeout"
	ReasonProtocol Reason = "protocol"
	ReasonNotFound Reason = "not-found"
)

// Unavailable reports that a probe field could not be determined.
// It carries a machine-checkable reason and a human-readable detail,
// so the presentation layer decides the display text.
type Unavailable struct {
	Reason Reason `json:"reason"`
	Detail string `json:"detail,omitempty"`
}

// Error implements the error interface.
func (u *Unavailable) Error() string {
	if u.Detail == "" {
		return string(u.Reason)
	}
	return fmt.Sprintf("%s: %s", u.Reason, u.Detail)
}

// PingResult holds the outcome of a successful ping.
type PingResult struct {
	// AvgLatency is the arithmetic mean of all extracted
	// round-trip times, in milliseconds.
	AvgLatency float64 `json:"avg_latency_ms"`

	// Times are the individual round-trip times, in milliseconds.
	Times []float64 `json:"times_ms,omitempty"`
}

// CertInfo holds peer certificate metadata.
type CertInfo struct {
	CommonName string    `json:"common_name"`
	NotAfter   time.Time `json:"not_after"`
}

// Lifetime returns the remaining certificate lifetime relative to now.
func (ci *CertInfo) Lifetime(now time.Time) time.Duration {
	return ci.NotAfter.Sub(now.UTC())
}

// Report is the result of a full host status probe.
// Every field is independently optional: a failure in one probe
// operation never aborts the others.
type Report struct {
	Host  string    `json:"host"`
	Taken time.Time `json:"taken"`

	// Country is the DNS-resolved country code, or "Unknown".
	Country string `json:"country"`

	Ping    *PingResult  `json:"ping,omitempty"`
	PingErr *Unavailable `json:"ping_err,omitempty"`

	Cert    *CertInfo    `json:"cert,omitempty"`
	CertErr *Unavailable `json:"cert_err,omitempty"`

	// TLSVersion is the negotiated protocol version, or a
	// descriptive "Unknown - <reason>" diagnostic string.
	TLSVersion string `json:"tls_version"`
}

// asUnavailable converts any probe error into an Unavailable value.
func asUnavailable(err error, fallback Reason) *Unavailable {
	if err == nil {
		return nil
	}
	if u, ok := err.(*Unavailable); ok { //nolint:errorlint // direct returns only
		return u
	}
	return &Unavailable{Reason: fallback, Detail: err.Error()}
}
