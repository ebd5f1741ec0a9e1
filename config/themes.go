package config

import "regexp"

// BuiltinPalettes are the color palettes that ship with pingdeck.
var BuiltinPalettes = map[string]Palette{
	"default": {
		Red:     "\033[91m",
		Green:   "\033[92m",
		Yellow:  "\033[93m",
		Blue:    "\033[94m",
		Magenta: "\033[95m",
		Cyan:    "\033[96m",
	},
	"dark": {
		Red:     "\033[31m",
		Green:   "\033[32m",
		Yellow:  "\033[33m",
		Blue:    "\033[34m",
		Magenta: "\033[35m",
		Cyan:    "\033[36m",
	},
	"light": {
		// Red adjusted for better visibility on light backgrounds.
		Red:     "\033[37m",
		Green:   "\033[92m",
		Yellow:  "\033[93m",
		Blue:    "\033[94m",
		Magenta: "\033[95m",
		Cyan:    "\033[96m",
	},
	"pastel": {
		Red:     "\033[95m",
		Green:   "\033[96m",
		Yellow:  "\033[93m",
		Blue:    "\033[94m",
		Magenta: "\033[91m",
		Cyan:    "\033[92m",
	},
}

// BuiltinThemeNames is the display order of the built-in palettes.
var BuiltinThemeNames = []string{"default", "dark", "light", "pastel"}

// ansiTokenRegex matches a single ANSI SGR escape sequence.
var ansiTokenRegex = regexp.MustCompile(`^\x1b\[\d+(;\d+)*m$`)

// ValidColorToken reports whether the given string is a single
// well-formed ANSI color escape sequence.
func ValidColorToken(token string) bool {
	return ansiTokenRegex.MatchString(token)
}

// Validate checks all six tokens of the palette.
func (p Palette) Validate() bool {
	for _, token := range []string{p.Red, p.Green, p.Yellow, p.Blue, p.Magenta, p.Cyan} {
		if !ValidColorToken(token) {
			return false
		}
	}
	return true
}
