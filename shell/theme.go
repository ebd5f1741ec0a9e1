package shell

import (
	"github.com/pingdeck/pingdeck/config"
)

// Reset clears all ANSI styling.
const Reset = "\x1b[0m"

// Theme is a named set of color tokens.
// It is a value: switching themes replaces the whole value instead of
// mutating shared state.
type Theme struct {
	Name    string
	Palette config.Palette
}

// NewTheme returns a theme with the given name and palette.
func NewTheme(name string, palette config.Palette) Theme {
	return Theme{
		Name:    name,
		Palette: palette,
	}
}

// Red colors the given text with the theme's red token.
func (t Theme) Red(text string) string { return t.Palette.Red + text + Reset }

// Green colors the given text with the theme's green token.
func (t Theme) Green(text string) string { return t.Palette.Green + text + Reset }

// Yellow colors the given text with the theme's yellow token.
func (t Theme) Yellow(text string) string { return t.Palette.Yellow + text + Reset }

// Blue colors the given text with the theme's blue token.
func (t Theme) Blue(text string) string { return t.Palette.Blue + text + Reset }

// Magenta colors the given text with the theme's magenta token.
func (t Theme) Magenta(text string) string { return t.Palette.Magenta + text + Reset }

// Cyan colors the given text with the theme's cyan token.
func (t Theme) Cyan(text string) string { return t.Palette.Cyan + text + Reset }
