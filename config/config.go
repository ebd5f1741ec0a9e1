package config

import (
	"fmt"
	"log/slog"
	"net/netip"
	"sort"
	"sync"
	"time"
)

// Config holds initialized configuration.
// Mutating methods persist to the settings file immediately.
type Config struct {
	Store

	Servers []Server

	path string
	lock sync.Mutex

	started time.Time
}

// DNSKind selects which DNS override a mutation applies to.
type DNSKind string

// DNS override kinds.
const (
	PrimaryDNS   DNSKind = "primary"
	SecondaryDNS DNSKind = "secondary"
)

// ValidationError describes a rejected settings value.
type ValidationError struct {
	Field string
	Value string
	Msg   string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Msg)
}

// Parse validates the store and returns an initialized config.
// Out-of-range values fall back to defaults with a logged warning.
func (s Store) Parse() *Config {
	c := &Config{
		Store:   s,
		Servers: DefaultServers,
		started: time.Now(),
	}

	if c.PingCount <= 0 {
		slog.Warn("settings: ping_count must be positive, using default", "value", c.PingCount)
		c.PingCount = DefaultPingCount
	}
	if !c.themeKnown(c.ColorTheme) {
		slog.Warn("settings: unknown color theme, using default", "theme", c.ColorTheme)
		c.ColorTheme = DefaultThemeName
	}
	if c.Store.PrimaryDNS != "" && !ValidIPv4(c.Store.PrimaryDNS) {
		slog.Warn("settings: invalid primary_dns, clearing", "value", c.Store.PrimaryDNS)
		c.Store.PrimaryDNS = ""
	}
	if c.Store.SecondaryDNS != "" && !ValidIPv4(c.Store.SecondaryDNS) {
		slog.Warn("settings: invalid secondary_dns, clearing", "value", c.Store.SecondaryDNS)
		c.Store.SecondaryDNS = ""
	}

	// Drop custom themes with malformed tokens.
	for name, palette := range c.CustomThemes {
		if !palette.Validate() {
			slog.Warn("settings: dropping custom theme with invalid color tokens", "theme", name)
			delete(c.CustomThemes, name)
		}
	}

	return c
}

func (c *Config) themeKnown(name string) bool {
	if _, ok := BuiltinPalettes[name]; ok {
		return true
	}
	_, ok := c.CustomThemes[name]
	return ok
}

// Palette returns the palette of the given theme,
// falling back to the default palette for unknown names.
func (c *Config) Palette(name string) Palette {
	c.lock.Lock()
	defer c.lock.Unlock()

	if p, ok := BuiltinPalettes[name]; ok {
		return p
	}
	if p, ok := c.CustomThemes[name]; ok {
		return p
	}
	return BuiltinPalettes[DefaultThemeName]
}

// ActivePalette returns the palette of the active theme.
func (c *Config) ActivePalette() Palette {
	return c.Palette(c.Theme())
}

// Theme returns the active theme name.
func (c *Config) Theme() string {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.ColorTheme
}

// ThemeNames returns all selectable theme names: built-ins in their
// fixed order, then custom themes sorted by name.
func (c *Config) ThemeNames() []string {
	c.lock.Lock()
	defer c.lock.Unlock()

	names := make([]string, 0, len(BuiltinThemeNames)+len(c.CustomThemes))
	names = append(names, BuiltinThemeNames...)

	custom := make([]string, 0, len(c.CustomThemes))
	for name := range c.CustomThemes {
		if _, builtin := BuiltinPalettes[name]; !builtin {
			custom = append(custom, name)
		}
	}
	sort.Strings(custom)
	return append(names, custom...)
}

// GetPingCount returns the configured ping count.
func (c *Config) GetPingCount() int {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.PingCount
}

// SetPingCount validates, applies and persists a new ping count.
func (c *Config) SetPingCount(count int) error {
	if count <= 0 {
		return &ValidationError{
			Field: "ping_count",
			Value: fmt.Sprintf("%d", count),
			Msg:   "must be greater than 0",
		}
	}

	c.lock.Lock()
	c.PingCount = count
	c.lock.Unlock()

	return c.Save()
}

// DNS returns the configured DNS overrides.
// Both values are empty when no override is set.
func (c *Config) DNS() (primary, secondary string) {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.Store.PrimaryDNS, c.Store.SecondaryDNS
}

// SetDNS validates, applies and persists a DNS server override.
func (c *Config) SetDNS(kind DNSKind, ip string) error {
	if !ValidIPv4(ip) {
		return &ValidationError{
			Field: string(kind) + "_dns",
			Value: ip,
			Msg:   "not a valid IPv4 address",
		}
	}

	c.lock.Lock()
	switch kind {
	case PrimaryDNS:
		c.Store.PrimaryDNS = ip
	case SecondaryDNS:
		c.Store.SecondaryDNS = ip
	}
	c.lock.Unlock()

	return c.Save()
}

// ResetDNS clears both DNS overrides and persists.
func (c *Config) ResetDNS() error {
	c.lock.Lock()
	c.Store.PrimaryDNS = ""
	c.Store.SecondaryDNS = ""
	c.lock.Unlock()

	return c.Save()
}

// SetTheme applies and persists the theme with the given name.
// Unknown names fall back to the default theme.
func (c *Config) SetTheme(name string) error {
	c.lock.Lock()
	if !c.themeKnown(name) {
		name = DefaultThemeName
	}
	c.ColorTheme = name
	c.lock.Unlock()

	return c.Save()
}

// AddCustomTheme validates, registers, activates and persists a
// user-defined theme.
func (c *Config) AddCustomTheme(name string, palette Palette) error {
	if name == "" {
		return &ValidationError{Field: "theme", Value: name, Msg: "name must not be empty"}
	}
	if !palette.Validate() {
		return &ValidationError{Field: "theme", Value: name, Msg: "palette has invalid ANSI color tokens"}
	}

	c.lock.Lock()
	if c.CustomThemes == nil {
		c.CustomThemes = make(map[string]Palette)
	}
	c.CustomThemes[name] = palette
	c.ColorTheme = name
	c.lock.Unlock()

	return c.Save()
}

// ValidIPv4 reports whether the given string is a well-formed
// IPv4 dotted-quad address.
func ValidIPv4(s string) bool {
	addr, err := netip.ParseAddr(s)
	return err == nil && addr.Is4()
}

// Started returns the time when the config was loaded.
func (c *Config) Started() time.Time {
	return c.started
}

// Uptime returns the time since the config was loaded.
func (c *Config) Uptime() time.Duration {
	return time.Since(c.started)
}
