package probe

import (
	"context"
	"io"
	"net/http"
	"strings"
)

// UnknownCountry is reported when the country cannot be determined.
const UnknownCountry = "Unknown"

// Country resolves the given host and looks up the country code of its
// first address. Resolution failures, non-200 responses and network
// errors all degrade to "Unknown".
func (p *Prober) Country(ctx context.Context, host string) string {
	addrs, err := p.LookupIP(ctx, host)
	if err != nil {
		p.mgr.Debug("country lookup failed", "host", host, "err", err)
		return UnknownCountry
	}

	url := p.geoURL + "/" + addrs[0].String() + "/country"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return UnknownCountry
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.mgr.Debug("geolocation request failed", "host", host, "err", err)
		return UnknownCountry
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return UnknownCountry
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64))
	if err != nil {
		return UnknownCountry
	}
	country := strings.TrimSpace(string(body))
	if country == "" {
		return UnknownCountry
	}
	return country
}
