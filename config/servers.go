package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/netip"
	"os"
	"regexp"
	"strings"

	"golang.org/x/net/idna"
	"gopkg.in/yaml.v3"
)

// Server is a predefined probe target: a display name mapped to a
// hostname or IP. Read-only for the process lifetime.
type Server struct {
	Name string `json:"name" yaml:"name"`
	Host string `json:"host" yaml:"host"`
}

var hostnameRegex = regexp.MustCompile(
	`^` + // match beginning
		`(` + // start subdomain group
		`(xn--)?` + // idn prefix
		`[a-z0-9_-]{1,63}` + // main chunk
		`\.` + // ending with a dot
		`)*` + // end subdomain group, allow any number of subdomains
		`(xn--)?` + // TLD idn prefix
		`[a-z0-9_-]{1,63}` + // TLD main chunk with at least one character
		`$`, // match end
)

// CleanHost cleans the given hostname and also returns if it is valid.
// IP addresses are valid hosts and returned unchanged.
func CleanHost(host string) (cleaned string, valid bool) {
	if _, err := netip.ParseAddr(host); err == nil {
		return host, true
	}

	host = strings.ToLower(strings.TrimSpace(host))
	host = strings.TrimSuffix(host, ".")
	if host == "" || len(host) > 256 {
		return host, false
	}

	if !hostnameRegex.MatchString(host) {
		// Check if this is an IDN hostname.
		punyHost, err := idna.ToASCII(host)
		if err == nil && hostnameRegex.MatchString(punyHost) {
			return punyHost, true
		}
		return host, false
	}

	return host, true
}

// LoadServers loads a predefined server list from the given file.
// The format is selected by file extension: .json or .yml/.yaml.
func LoadServers(path string) ([]Server, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read server file at %s: %w", path, err)
	}

	var servers []Server
	switch {
	case strings.HasSuffix(path, ".json"):
		err = json.Unmarshal(data, &servers)
	case strings.HasSuffix(path, ".yml"), strings.HasSuffix(path, ".yaml"):
		err = yaml.Unmarshal(data, &servers)
	default:
		return nil, errors.New("unknown server file type")
	}
	if err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", path, err)
	}

	if len(servers) == 0 {
		return nil, errors.New("server file defines no servers")
	}
	for i, srv := range servers {
		if srv.Name == "" {
			return nil, fmt.Errorf("server #%d has no name", i+1)
		}
		cleaned, valid := CleanHost(srv.Host)
		if !valid {
			return nil, fmt.Errorf("server %s (#%d) host %q is invalid", srv.Name, i+1, srv.Host)
		}
		servers[i].Host = cleaned
	}

	return servers, nil
}
