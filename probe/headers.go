package probe

import (
	"context"
	"net/http"
	"sort"
	"strings"
)

// Header is one HTTP response header field.
type Header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// HeaderReport is the result of a plain-HTTP header fetch.
type HeaderReport struct {
	StatusCode int      `json:"status_code"`
	Status     string   `json:"status"`
	Headers    []Header `json:"headers"`
}

// Headers issues a plain HTTP GET (not HTTPS) against the given host,
// following redirects, and returns the response headers in
// name-sorted order plus the status code. No retry on failure.
func (p *Prober) Headers(ctx context.Context, host string) (*HeaderReport, error) {
	url := host
	if !strings.Contains(host, "://") {
		url = "http://" + host
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &Unavailable{Reason: ReasonProtocol, Detail: err.Error()}
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.mgr.Debug("header fetch failed", "host", host, "err", err)
		return nil, classifyDialError(err)
	}
	defer resp.Body.Close() //nolint:errcheck

	names := make([]string, 0, len(resp.Header))
	for name := range resp.Header {
		names = append(names, name)
	}
	sort.Strings(names)

	report := &HeaderReport{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Headers:    make([]Header, 0, len(names)),
	}
	for _, name := range names {
		for _, value := range resp.Header.Values(name) {
			report.Headers = append(report.Headers, Header{Name: name, Value: value})
		}
	}
	return report, nil
}
