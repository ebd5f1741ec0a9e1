package config

import (
	"encoding/json"

	"github.com/mitchellh/copystructure"
)

// Store holds all settings in a storable format.
type Store struct {
	// PingCount is the number of echo requests sent per ping.
	PingCount int `json:"ping_count"`

	// ColorTheme is the name of the active color theme.
	ColorTheme string `json:"color_theme"`

	// PrimaryDNS and SecondaryDNS are optional DNS server overrides.
	// When set, they are used by the resolver for lookups done by this
	// process. The external ping binary keeps using the OS resolver.
	PrimaryDNS   string `json:"primary_dns"`
	SecondaryDNS string `json:"secondary_dns"`

	// CustomThemes holds user-defined color palettes by theme name.
	CustomThemes map[string]Palette `json:"custom_themes,omitempty"`

	// Extra carries unknown keys from the settings file, so that
	// saving the settings does not strip them.
	Extra map[string]json.RawMessage `json:"-"`
}

// Palette is a set of six ANSI color tokens.
type Palette struct {
	Red     string `json:"red"     yaml:"red"`
	Green   string `json:"green"   yaml:"green"`
	Yellow  string `json:"yellow"  yaml:"yellow"`
	Blue    string `json:"blue"    yaml:"blue"`
	Magenta string `json:"magenta" yaml:"magenta"`
	Cyan    string `json:"cyan"    yaml:"cyan"`
}

// storeKeys are the settings file keys owned by Store.
// Everything else is preserved in Extra.
var storeKeys = []string{
	"ping_count",
	"color_theme",
	"primary_dns",
	"secondary_dns",
	"custom_themes",
}

// UnmarshalJSON implements json.Unmarshaler.
// Keys missing from the data keep their current value, which gives
// merge-on-load semantics when unmarshaling over defaults.
func (s *Store) UnmarshalJSON(data []byte) error {
	raw := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if v, ok := raw["ping_count"]; ok {
		if err := json.Unmarshal(v, &s.PingCount); err != nil {
			return err
		}
	}
	if v, ok := raw["color_theme"]; ok {
		if err := json.Unmarshal(v, &s.ColorTheme); err != nil {
			return err
		}
	}
	if v, ok := raw["primary_dns"]; ok {
		if err := json.Unmarshal(v, &s.PrimaryDNS); err != nil {
			return err
		}
	}
	if v, ok := raw["secondary_dns"]; ok {
		if err := json.Unmarshal(v, &s.SecondaryDNS); err != nil {
			return err
		}
	}
	if v, ok := raw["custom_themes"]; ok {
		if err := json.Unmarshal(v, &s.CustomThemes); err != nil {
			return err
		}
	}

	for _, key := range storeKeys {
		delete(raw, key)
	}
	if len(raw) > 0 {
		s.Extra = raw
	}

	return nil
}

// MarshalJSON implements json.Marshaler.
// Preserved unknown keys are written back alongside the known ones.
func (s Store) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(storeKeys)+len(s.Extra))
	for key, value := range s.Extra {
		out[key] = value
	}

	out["ping_count"] = s.PingCount
	out["color_theme"] = s.ColorTheme
	out["primary_dns"] = s.PrimaryDNS
	out["secondary_dns"] = s.SecondaryDNS
	if len(s.CustomThemes) > 0 {
		out["custom_themes"] = s.CustomThemes
	}

	return json.Marshal(out)
}

// Clone returns a full copy of the store.
func (s Store) Clone() (Store, error) {
	copied, err := copystructure.Copy(s)
	if err != nil {
		return Store{}, err
	}
	return copied.(Store), nil //nolint:forcetypeassert
}
