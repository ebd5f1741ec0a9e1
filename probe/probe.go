package probe

import (
	"context"
	"net/http"
	"time"

	"github.com/pingdeck/pingdeck/config"
	"github.com/pingdeck/pingdeck/mgr"
)

// probeTimeout bounds the TLS, HTTP and resolver calls.
// The external ping binary is only bounded by its own behavior.
const probeTimeout = 5 * time.Second

// geoEndpoint is the IP geolocation service queried for country codes.
const geoEndpoint = "https://ipinfo.io"

// Prober runs diagnostic operations against target hosts.
type Prober struct {
	mgr      *mgr.Manager
	instance instance

	system     Resolver
	httpClient *http.Client

	// Overridable for tests.
	geoURL     string
	pingBinary string
	tlsPort    string
}

// instance is an interface subset of the pingdeck instance.
type instance interface {
	Version() string
	Config() *config.Config
}

// New returns a new prober.
func New(instance instance) *Prober {
	return &Prober{
		mgr:      mgr.New("probe"),
		instance: instance,
		system:   newSystemResolver(),
		httpClient: &http.Client{
			Timeout: probeTimeout,
		},
		geoURL:     geoEndpoint,
		pingBinary: "ping",
		tlsPort:    "443",
	}
}

// Manager returns the module manager.
func (p *Prober) Manager() *mgr.Manager {
	return p.mgr
}

// Start starts the prober.
func (p *Prober) Start() error {
	primary, secondary := p.instance.Config().DNS()
	if primary != "" || secondary != "" {
		p.mgr.Info(
			"using DNS overrides for lookups",
			"primary", primary,
			"secondary", secondary,
		)
	}
	return nil
}

// Stop stops the prober.
func (p *Prober) Stop() error {
	p.httpClient.CloseIdleConnections()
	return nil
}

// Status runs the full probe pipeline against the given host:
// country, single ping, certificate and negotiated TLS version.
// Single operations are allowed to fail without aborting the others.
func (p *Prober) Status(ctx context.Context, host string) *Report {
	r := &Report{
		Host:  host,
		Taken: time.Now(),
	}

	r.Country = p.Country(ctx, host)

	ping, err := p.Ping(ctx, host, 1)
	r.Ping = ping
	r.PingErr = asUnavailable(err, ReasonNetwork)

	cert, err := p.Certificate(ctx, host)
	r.Cert = cert
	r.CertErr = asUnavailable(err, ReasonProtocol)

	r.TLSVersion = p.TLSVersion(ctx, host)

	p.mgr.Debug(
		"status probe finished",
		"host", host,
		"country", r.Country,
		"tls", r.TLSVersion,
	)
	return r
}
