package shell

import (
	"fmt"
	"io"
	"sync"

	"github.com/mattn/go-colorable"

	"github.com/pingdeck/pingdeck/config"
)

// Printer renders menu output with the active theme.
// Output goes through an ANSI-aware stdout wrapper, so color tokens
// also work on Windows consoles.
type Printer struct {
	lock  sync.Mutex
	out   io.Writer
	theme Theme
}

// NewPrinter returns a printer writing to ANSI-safe stdout.
func NewPrinter(theme Theme) *Printer {
	return &Printer{
		out:   colorable.NewColorableStdout(),
		theme: theme,
	}
}

// Theme returns the active theme.
func (p *Printer) Theme() Theme {
	p.lock.Lock()
	defer p.lock.Unlock()

	return p.theme
}

// SetTheme replaces the active theme.
func (p *Printer) SetTheme(theme Theme) {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.theme = theme
}

// Printf writes formatted uncolored text.
func (p *Printer) Printf(format string, args ...any) {
	p.lock.Lock()
	defer p.lock.Unlock()

	fmt.Fprintf(p.out, format, args...)
}

// Println writes an uncolored line.
func (p *Printer) Println(args ...any) {
	p.lock.Lock()
	defer p.lock.Unlock()

	fmt.Fprintln(p.out, args...)
}

// colorln writes a formatted colored line. The color token is picked
// from the active palette under the same lock that SetTheme takes.
func (p *Printer) colorln(pick func(config.Palette) string, format string, args ...any) {
	p.lock.Lock()
	defer p.lock.Unlock()

	fmt.Fprintf(p.out, pick(p.theme.Palette)+format+Reset+"\n", args...)
}

// Redln writes a formatted line in the theme's red.
func (p *Printer) Redln(format string, args ...any) {
	p.colorln(func(pal config.Palette) string { return pal.Red }, format, args...)
}

// Greenln writes a formatted line in the theme's green.
func (p *Printer) Greenln(format string, args ...any) {
	p.colorln(func(pal config.Palette) string { return pal.Green }, format, args...)
}

// Yellowln writes a formatted line in the theme's yellow.
func (p *Printer) Yellowln(format string, args ...any) {
	p.colorln(func(pal config.Palette) string { return pal.Yellow }, format, args...)
}

// Blueln writes a formatted line in the theme's blue.
func (p *Printer) Blueln(format string, args ...any) {
	p.colorln(func(pal config.Palette) string { return pal.Blue }, format, args...)
}

// Magentaln writes a formatted line in the theme's magenta.
func (p *Printer) Magentaln(format string, args ...any) {
	p.colorln(func(pal config.Palette) string { return pal.Magenta }, format, args...)
}

// Cyanln writes a formatted line in the theme's cyan.
func (p *Printer) Cyanln(format string, args ...any) {
	p.colorln(func(pal config.Palette) string { return pal.Cyan }, format, args...)
}
