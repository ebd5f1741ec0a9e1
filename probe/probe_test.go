package probe

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pingdeck/pingdeck/config"
)

// testInstance is a minimal instance stub for prober tests.
type testInstance struct {
	config *config.Config
}

func (i *testInstance) Version() string        { return "test" }
func (i *testInstance) Config() *config.Config { return i.config }

func newTestProber(t *testing.T) *Prober {
	t.Helper()

	c := config.LoadSettings(filepath.Join(t.TempDir(), "settings.json"))
	p := New(&testInstance{config: c})
	p.pingBinary = "/nonexistent/ping" // never exec a real binary in tests
	return p
}

func TestCountry(t *testing.T) {
	t.Parallel()

	geo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/country") {
			_, _ = w.Write([]byte("DE\n"))
			return
		}
		http.NotFound(w, r)
	}))
	defer geo.Close()

	p := newTestProber(t)
	p.geoURL = geo.URL

	// IP targets skip resolution entirely.
	assert.Equal(t, "DE", p.Country(context.Background(), "192.0.2.1"))
}

func TestCountryUnknown(t *testing.T) {
	t.Parallel()

	geo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer geo.Close()

	p := newTestProber(t)
	p.geoURL = geo.URL

	assert.Equal(t, UnknownCountry, p.Country(context.Background(), "192.0.2.1"))

	// Unresolvable hostnames degrade to Unknown as well.
	assert.Equal(t, UnknownCountry, p.Country(context.Background(), "nope.invalid"))
}

func TestHeaders(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Server", "testsrv")
		w.Header().Set("X-Answer", "42")
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	p := newTestProber(t)
	report, err := p.Headers(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, http.StatusTeapot, report.StatusCode)
	names := make([]string, 0, len(report.Headers))
	for _, h := range report.Headers {
		names = append(names, h.Name)
	}
	assert.Contains(t, names, "Server")
	assert.Contains(t, names, "X-Answer")
	assert.IsIncreasing(t, names, "headers must be in sorted order")
}

func TestHeadersFailure(t *testing.T) {
	t.Parallel()

	p := newTestProber(t)
	_, err := p.Headers(context.Background(), "nope.invalid")

	u := asUnavailable(err, ReasonNetwork)
	require.NotNil(t, u)
	assert.NotEmpty(t, u.Detail)
}

func TestStatusCompletesWithPartialData(t *testing.T) {
	t.Parallel()

	// A host that refuses everything: closed TCP port, failing ping
	// binary, unreachable geolocation endpoint. The pipeline must
	// still complete and report each field as unavailable.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	closedPort := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	p := newTestProber(t)
	p.geoURL = "http://127.0.0.1:1/unreachable"
	p.tlsPort = strconv.Itoa(closedPort)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	report := p.Status(ctx, "127.0.0.1")

	assert.Equal(t, UnknownCountry, report.Country)
	assert.Nil(t, report.Ping)
	require.NotNil(t, report.PingErr)
	assert.Nil(t, report.Cert)
	require.NotNil(t, report.CertErr)
	assert.True(t, strings.HasPrefix(report.TLSVersion, "Unknown - "), report.TLSVersion)
}

func TestTLSVersionAgainstTestServer(t *testing.T) {
	t.Parallel()

	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)

	p := newTestProber(t)
	p.tlsPort = u.Port()

	// The test server certificate is not trusted, so the handshake
	// fails verification; that is a protocol-level diagnostic.
	version := p.TLSVersion(context.Background(), u.Hostname())
	assert.True(t, strings.HasPrefix(version, "Unknown - "), version)

	_, err = p.Certificate(context.Background(), u.Hostname())
	require.Error(t, err)
}

func TestCertLifetime(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	ci := &CertInfo{CommonName: "example.com", NotAfter: now.Add(48 * time.Hour)}
	assert.InDelta(t, float64(48*time.Hour), float64(ci.Lifetime(now)), float64(time.Second))
}

func TestAsUnavailable(t *testing.T) {
	t.Parallel()

	assert.Nil(t, asUnavailable(nil, ReasonNetwork))

	u := asUnavailable(&Unavailable{Reason: ReasonTimeout}, ReasonNetwork)
	assert.Equal(t, ReasonTimeout, u.Reason)

	u = asUnavailable(context.Canceled, ReasonNetwork)
	assert.Equal(t, ReasonNetwork, u.Reason)
	assert.Equal(t, context.Canceled.Error(), u.Detail)
}

func TestLookupIPLiteral(t *testing.T) {
	t.Parallel()

	p := newTestProber(t)
	addrs, err := p.LookupIP(context.Background(), "192.0.2.7")
	require.NoError(t, err)
	require.Len(t, addrs, 1)
	assert.Equal(t, "192.0.2.7", addrs[0].String())
}

