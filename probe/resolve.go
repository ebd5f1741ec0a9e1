package probe

import (
	"context"
	"errors"
	"net"
	"net/netip"
	"time"

	"github.com/miekg/dns"
)

// Resolver resolves hostnames to IP addresses.
// It exists so that DNS server overrides from the settings apply to
// all lookups this process does itself.
type Resolver interface {
	LookupIP(ctx context.Context, host string) ([]netip.Addr, error)
}

// systemResolver resolves via the OS resolver.
type systemResolver struct {
	resolver *net.Resolver
}

func newSystemResolver() Resolver {
	return &systemResolver{resolver: net.DefaultResolver}
}

// LookupIP implements Resolver.
func (r *systemResolver) LookupIP(ctx context.Context, host string) ([]netip.Addr, error) {
	addrs, err := r.resolver.LookupNetIP(ctx, "ip", host)
	if err != nil {
		return nil, resolveError(err)
	}
	if len(addrs) == 0 {
		return nil, &Unavailable{Reason: ReasonNotFound, Detail: "no addresses for " + host}
	}
	return addrs, nil
}

// overrideResolver queries the configured DNS servers directly,
// in order, A records first, then AAAA.
type overrideResolver struct {
	client  *dns.Client
	servers []string // as ip:port
}

func newOverrideResolver(serverIPs ...string) Resolver {
	servers := make([]string, 0, len(serverIPs))
	for _, ip := range serverIPs {
		if ip != "" {
			servers = append(servers, net.JoinHostPort(ip, "53"))
		}
	}
	return &overrideResolver{
		client: &dns.Client{
			Timeout: 5 * time.Second,
		},
		servers: servers,
	}
}

// LookupIP implements Resolver.
func (r *overrideResolver) LookupIP(ctx context.Context, host string) ([]netip.Addr, error) {
	var lastErr error
	for _, qtype := range []uint16{dns.TypeA, dns.TypeAAAA} {
		for _, server := range r.servers {
			addrs, err := r.query(ctx, host, qtype, server)
			if err != nil {
				lastErr = err
				continue
			}
			if len(addrs) > 0 {
				return addrs, nil
			}
		}
	}

	if lastErr != nil {
		return nil, asUnavailable(lastErr, ReasonNetwork)
	}
	return nil, &Unavailable{Reason: ReasonNotFound, Detail: "no addresses for " + host}
}

func (r *overrideResolver) query(ctx context.Context, host string, qtype uint16, server string) ([]netip.Addr, error) {
	q := new(dns.Msg)
	q.SetQuestion(dns.Fqdn(host), qtype)

	in, _, err := r.client.ExchangeContext(ctx, q, server)
	if err != nil {
		return nil, err
	}

	addrs := make([]netip.Addr, 0, len(in.Answer))
	for _, rr := range in.Answer {
		var ip net.IP
		switch record := rr.(type) {
		case *dns.A:
			ip = record.A
		case *dns.AAAA:
			ip = record.AAAA
		default:
			continue
		}
		if addr, ok := netip.AddrFromSlice(ip); ok {
			addrs = append(addrs, addr.Unmap())
		}
	}
	return addrs, nil
}

// resolver returns the resolver matching the current DNS settings.
// Overrides apply the moment they are saved, no restart needed.
func (p *Prober) resolver() Resolver {
	primary, secondary := p.instance.Config().DNS()
	if primary == "" && secondary == "" {
		return p.system
	}
	return newOverrideResolver(primary, secondary)
}

// LookupIP resolves the given host with the active resolver.
// A host that already is an IP address resolves to itself.
func (p *Prober) LookupIP(ctx context.Context, host string) ([]netip.Addr, error) {
	if addr, err := netip.ParseAddr(host); err == nil {
		return []netip.Addr{addr}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	return p.resolver().LookupIP(ctx, host)
}

// resolveError maps resolver errors to typed unavailability.
func resolveError(err error) error {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		switch {
		case dnsErr.IsNotFound:
			return &Unavailable{Reason: ReasonNotFound, Detail: err.Error()}
		case dnsErr.IsTimeout:
			return &Unavailable{Reason: ReasonTimeout, Detail: err.Error()}
		}
	}
	return &Unavailable{Reason: ReasonNetwork, Detail: err.Error()}
}
