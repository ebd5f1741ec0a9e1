package probe

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"net"
	"net/netip"
)

// Certificate opens a verified TLS connection to port 443 and returns
// the peer certificate's common name and expiry.
func (p *Prober) Certificate(ctx context.Context, host string) (*CertInfo, error) {
	state, err := p.handshake(ctx, host)
	if err != nil {
		p.mgr.Debug("certificate probe failed", "host", host, "err", err)
		return nil, err
	}

	if len(state.PeerCertificates) == 0 {
		return nil, &Unavailable{Reason: ReasonProtocol, Detail: "peer sent no certificate"}
	}
	leaf := state.PeerCertificates[0]
	return &CertInfo{
		CommonName: leaf.Subject.CommonName,
		NotAfter:   leaf.NotAfter,
	}, nil
}

// TLSVersion reports the negotiated TLS protocol version, or a
// descriptive "Unknown - <reason>" string. This is a user-facing
// diagnostic string, not a structured error.
func (p *Prober) TLSVersion(ctx context.Context, host string) string {
	state, err := p.handshake(ctx, host)
	if err != nil {
		u := asUnavailable(err, ReasonProtocol)
		switch u.Reason {
		case ReasonNotFound:
			return "Unknown - could not resolve hostname"
		case ReasonTimeout:
			return "Unknown - connection timed out"
		case ReasonProtocol:
			return "Unknown - TLS error: " + u.Detail
		default:
			return "Unknown - " + u.Detail
		}
	}

	return tlsVersionName(state.Version)
}

// handshake performs one TLS handshake to port 443 with server-name
// verification and a fixed timeout.
func (p *Prober) handshake(ctx context.Context, host string) (*tls.ConnectionState, error) {
	addr, err := p.dialTarget(ctx, host)
	if err != nil {
		return nil, err
	}

	dialer := &net.Dialer{Timeout: probeTimeout}
	conn, err := tls.DialWithDialer(dialer, "tcp", addr, &tls.Config{
		ServerName: host,
		MinVersion: tls.VersionTLS10, // report old versions instead of refusing
	})
	if err != nil {
		return nil, classifyDialError(err)
	}
	defer conn.Close() //nolint:errcheck

	state := conn.ConnectionState()
	return &state, nil
}

// dialTarget returns the host:443 dial address. When DNS overrides are
// active, the hostname is resolved here so the overrides take effect;
// the TLS config keeps the hostname for SNI and verification.
func (p *Prober) dialTarget(ctx context.Context, host string) (string, error) {
	if _, err := netip.ParseAddr(host); err == nil {
		return net.JoinHostPort(host, p.tlsPort), nil
	}

	primary, secondary := p.instance.Config().DNS()
	if primary == "" && secondary == "" {
		// System resolution happens inside the dial.
		return net.JoinHostPort(host, p.tlsPort), nil
	}

	addrs, err := p.LookupIP(ctx, host)
	if err != nil {
		return "", err
	}
	return net.JoinHostPort(addrs[0].String(), p.tlsPort), nil
}

// classifyDialError maps dial and handshake errors to typed
// unavailability.
func classifyDialError(err error) error {
	var (
		dnsErr    *net.DNSError
		netErr    net.Error
		recordErr tls.RecordHeaderError
		certErr   *tls.CertificateVerificationError
		x509Err   x509.HostnameError
	)
	switch {
	case errors.As(err, &dnsErr) && dnsErr.IsNotFound:
		return &Unavailable{Reason: ReasonNotFound, Detail: err.Error()}
	case errors.As(err, &netErr) && netErr.Timeout():
		return &Unavailable{Reason: ReasonTimeout, Detail: err.Error()}
	case errors.As(err, &recordErr),
		errors.As(err, &certErr),
		errors.As(err, &x509Err):
		return &Unavailable{Reason: ReasonProtocol, Detail: err.Error()}
	default:
		return &Unavailable{Reason: ReasonNetwork, Detail: err.Error()}
	}
}

// tlsVersionName returns the display name of a TLS version constant.
func tlsVersionName(version uint16) string {
	switch version {
	case tls.VersionTLS10:
		return "TLS 1.0"
	case tls.VersionTLS11:
		return "TLS 1.1"
	case tls.VersionTLS12:
		return "TLS 1.2"
	case tls.VersionTLS13:
		return "TLS 1.3"
	default:
		return "Unknown - unrecognized protocol version"
	}
}
