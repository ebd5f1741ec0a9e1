package config

// Default settings values.
const (
	DefaultPingCount = 4
	DefaultThemeName = "default"
)

// DefaultSettingsFile is the settings file used when none is given.
const DefaultSettingsFile = "pingdeck_settings.json"

// DefaultStore returns a store with the built-in default settings.
func DefaultStore() Store {
	return Store{
		PingCount:  DefaultPingCount,
		ColorTheme: DefaultThemeName,
	}
}

// DefaultServers is the built-in predefined server table.
// It can be replaced with a server file given at startup.
var DefaultServers = []Server{
	{Name: "google", Host: "google.com"},
	{Name: "cloudflare", Host: "1.1.1.1"},
	{Name: "opendns", Host: "208.67.222.222"},
	{Name: "localhost", Host: "127.0.0.1"},
	{Name: "example", Host: "example.com"},
	{Name: "microsoft", Host: "microsoft.com"},
}
