package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/brianvoe/gofakeit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func settingsPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "pingdeck_settings.json")
}

func TestLoadSettingsMissingFile(t *testing.T) {
	t.Parallel()

	c := LoadSettings(settingsPath(t))
	assert.Equal(t, DefaultPingCount, c.GetPingCount())
	assert.Equal(t, DefaultThemeName, c.Theme())

	primary, secondary := c.DNS()
	assert.Empty(t, primary)
	assert.Empty(t, secondary)
}

func TestLoadSettingsMalformedFile(t *testing.T) {
	t.Parallel()

	path := settingsPath(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o0644))

	c := LoadSettings(path)
	assert.Equal(t, DefaultPingCount, c.GetPingCount())
	assert.Equal(t, DefaultThemeName, c.Theme())
}

func TestLoadSettingsMergesDefaults(t *testing.T) {
	t.Parallel()

	path := settingsPath(t)
	require.NoError(t, os.WriteFile(path, []byte(`{"ping_count": 7}`), 0o0644))

	c := LoadSettings(path)
	assert.Equal(t, 7, c.GetPingCount())
	assert.Equal(t, DefaultThemeName, c.Theme(), "missing keys must be filled from defaults")
}

func TestLoadSettingsKeepsUnknownKeys(t *testing.T) {
	t.Parallel()

	path := settingsPath(t)
	require.NoError(t, os.WriteFile(path, []byte(
		`{"ping_count": 3, "future_feature": {"enabled": true}}`,
	), 0o0644))

	c := LoadSettings(path)
	require.NoError(t, c.Save())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "future_feature", "unknown keys must survive a save")
}

func TestSaveLoadIdempotent(t *testing.T) {
	t.Parallel()

	path := settingsPath(t)
	c := LoadSettings(path)
	require.NoError(t, c.SetPingCount(9))

	first, err := os.ReadFile(path)
	require.NoError(t, err)

	c2 := LoadSettings(path)
	require.NoError(t, c2.Save())

	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, string(first), string(second))
}

func TestParseFallsBackOnBadValues(t *testing.T) {
	t.Parallel()

	c := Store{
		PingCount:    -2,
		ColorTheme:   "no-such-theme",
		PrimaryDNS:   "999.1.1.1",
		SecondaryDNS: "not-an-ip",
	}.Parse()

	assert.Equal(t, DefaultPingCount, c.GetPingCount())
	assert.Equal(t, DefaultThemeName, c.Theme())
	primary, secondary := c.DNS()
	assert.Empty(t, primary)
	assert.Empty(t, secondary)
}

func TestValidIPv4(t *testing.T) {
	t.Parallel()

	// Any dotted quad with octets 0-255 must be accepted.
	for iter := 0; iter < 50; iter++ {
		ip := fmt.Sprintf("%d.%d.%d.%d",
			gofakeit.Number(0, 255), gofakeit.Number(0, 255),
			gofakeit.Number(0, 255), gofakeit.Number(0, 255),
		)
		assert.Truef(t, ValidIPv4(ip), "expected %s to be accepted", ip)
	}

	for _, invalid := range []string{
		"", "999.1.1.1", "1.2.3", "1.2.3.4.5", "8.8.8.8:53",
		"2606:4700:4700::1111", "a.b.c.d", "256.0.0.1",
	} {
		assert.Falsef(t, ValidIPv4(invalid), "expected %q to be rejected", invalid)
	}
}

func TestSetDNS(t *testing.T) {
	t.Parallel()

	path := settingsPath(t)
	c := LoadSettings(path)

	err := c.SetDNS(PrimaryDNS, "999.1.1.1")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)

	require.NoError(t, c.SetDNS(PrimaryDNS, "8.8.8.8"))
	require.NoError(t, c.SetDNS(SecondaryDNS, "1.0.0.1"))

	// Persisted?
	c2 := LoadSettings(path)
	primary, secondary := c2.DNS()
	assert.Equal(t, "8.8.8.8", primary)
	assert.Equal(t, "1.0.0.1", secondary)

	require.NoError(t, c2.ResetDNS())
	c3 := LoadSettings(path)
	primary, secondary = c3.DNS()
	assert.Empty(t, primary)
	assert.Empty(t, secondary)
}

func TestSetPingCount(t *testing.T) {
	t.Parallel()

	c := LoadSettings(settingsPath(t))
	require.Error(t, c.SetPingCount(0))
	require.Error(t, c.SetPingCount(-3))
	require.NoError(t, c.SetPingCount(12))
	assert.Equal(t, 12, c.GetPingCount())
}

func TestCustomTheme(t *testing.T) {
	t.Parallel()

	path := settingsPath(t)
	c := LoadSettings(path)

	bad := BuiltinPalettes["default"]
	bad.Cyan = "cyan"
	require.Error(t, c.AddCustomTheme("broken", bad))

	require.NoError(t, c.AddCustomTheme("mine", BuiltinPalettes["dark"]))
	assert.Equal(t, "mine", c.Theme())

	// Custom theme must survive a restart.
	c2 := LoadSettings(path)
	assert.Equal(t, "mine", c2.Theme())
	assert.Equal(t, BuiltinPalettes["dark"], c2.Palette("mine"))
	assert.Contains(t, c2.ThemeNames(), "mine")
}

func TestStoreCloneIsDeep(t *testing.T) {
	t.Parallel()

	original := DefaultStore()
	original.CustomThemes = map[string]Palette{"mine": BuiltinPalettes["dark"]}
	original.Extra = map[string]json.RawMessage{"future_feature": json.RawMessage(`1`)}

	clone, err := original.Clone()
	require.NoError(t, err)

	clone.CustomThemes["mine"] = BuiltinPalettes["pastel"]
	clone.CustomThemes["other"] = BuiltinPalettes["light"]
	clone.Extra["future_feature"] = json.RawMessage(`2`)

	assert.Equal(t, BuiltinPalettes["dark"], original.CustomThemes["mine"])
	assert.NotContains(t, original.CustomThemes, "other")
	assert.Equal(t, json.RawMessage(`1`), original.Extra["future_feature"])
}

func TestSetThemeFallback(t *testing.T) {
	t.Parallel()

	c := LoadSettings(settingsPath(t))
	require.NoError(t, c.SetTheme("dark"))
	assert.Equal(t, "dark", c.Theme())

	require.NoError(t, c.SetTheme("does-not-exist"))
	assert.Equal(t, DefaultThemeName, c.Theme())
}

func TestValidColorToken(t *testing.T) {
	t.Parallel()

	assert.True(t, ValidColorToken("\033[91m"))
	assert.True(t, ValidColorToken("\033[38;5;208m"))
	assert.False(t, ValidColorToken("red"))
	assert.False(t, ValidColorToken("\033[91"))
	assert.False(t, ValidColorToken("\033[m"))
}

func TestCleanHost(t *testing.T) {
	t.Parallel()

	for input, want := range map[string]string{
		"Example.COM":          "example.com",
		"example.com.":         "example.com",
		"1.1.1.1":              "1.1.1.1",
		"2606:4700:4700::1111": "2606:4700:4700::1111",
	} {
		cleaned, valid := CleanHost(input)
		assert.Truef(t, valid, "expected %q to be valid", input)
		assert.Equal(t, want, cleaned)
	}

	for _, invalid := range []string{"", "bad host", "ex ample.com"} {
		_, valid := CleanHost(invalid)
		assert.Falsef(t, valid, "expected %q to be invalid", invalid)
	}
}

func TestLoadServers(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "servers.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(
		`[{"name": "quad9", "host": "9.9.9.9"}, {"name": "example", "host": "Example.org"}]`,
	), 0o0644))
	servers, err := LoadServers(jsonPath)
	require.NoError(t, err)
	require.Len(t, servers, 2)
	assert.Equal(t, "example.org", servers[1].Host)

	yamlPath := filepath.Join(dir, "servers.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(
		"- name: quad9\n  host: 9.9.9.9\n",
	), 0o0644))
	servers, err = LoadServers(yamlPath)
	require.NoError(t, err)
	require.Len(t, servers, 1)

	_, err = LoadServers(filepath.Join(dir, "missing.json"))
	require.Error(t, err)

	badPath := filepath.Join(dir, "servers.toml")
	require.NoError(t, os.WriteFile(badPath, []byte("x"), 0o0644))
	_, err = LoadServers(badPath)
	require.Error(t, err)

	nonamePath := filepath.Join(dir, "noname.json")
	require.NoError(t, os.WriteFile(nonamePath, []byte(`[{"host": "a.com"}]`), 0o0644))
	_, err = LoadServers(nonamePath)
	require.Error(t, err)
}
