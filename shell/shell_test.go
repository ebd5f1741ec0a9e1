package shell

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pingdeck/pingdeck/config"
	"github.com/pingdeck/pingdeck/history"
	"github.com/pingdeck/pingdeck/probe"
	"github.com/pingdeck/pingdeck/speedtest"
	"github.com/pingdeck/pingdeck/sysmon"
)

type testInstance struct {
	config    *config.Config
	prober    *probe.Prober
	speedtest *speedtest.Runner
	sysmon    *sysmon.Monitor
	history   *history.History
}

func newTestInstance(t *testing.T) *testInstance {
	t.Helper()

	i := &testInstance{
		config:    config.DefaultStore().Parse(),
		speedtest: speedtest.New(),
		sysmon:    sysmon.New(),
	}
	i.prober = probe.New(i)

	var err error
	i.history, err = history.New("", 10)
	require.NoError(t, err)

	return i
}

func (i *testInstance) Version() string              { return "v0.0.0-test" }
func (i *testInstance) Config() *config.Config       { return i.config }
func (i *testInstance) Prober() *probe.Prober        { return i.prober }
func (i *testInstance) SpeedTest() *speedtest.Runner { return i.speedtest }
func (i *testInstance) SysMon() *sysmon.Monitor      { return i.sysmon }
func (i *testInstance) History() *history.History    { return i.history }

// runShell feeds the given input lines to a fresh shell and returns
// everything it printed.
func runShell(t *testing.T, input string) string {
	t.Helper()

	s := New(newTestInstance(t))
	out := &bytes.Buffer{}
	s.printer.out = out
	s.in = strings.NewReader(input)

	require.NoError(t, s.Start())
	select {
	case <-s.Exited():
	case <-time.After(30 * time.Second):
		t.Fatal("shell did not exit")
	}

	s.mgr.Cancel()
	require.NoError(t, s.Stop())
	return out.String()
}

func TestExit(t *testing.T) {
	t.Parallel()

	output := runShell(t, "6\n")
	assert.Contains(t, output, "Main Menu:")
	assert.Contains(t, output, "Exiting pingdeck.")
}

func TestInvalidChoiceReprintsMenu(t *testing.T) {
	t.Parallel()

	output := runShell(t, "99\nnope\n6\n")
	assert.Contains(t, output, "Invalid choice. Please try again.")
	assert.GreaterOrEqual(t, strings.Count(output, "Main Menu:"), 3)
}

func TestExitOnClosedInput(t *testing.T) {
	t.Parallel()

	output := runShell(t, "")
	assert.Contains(t, output, "Main Menu:")
}

func TestSettingsMenuRoundTrip(t *testing.T) {
	t.Parallel()

	output := runShell(t, "5\n10\n6\n")
	assert.Contains(t, output, "Settings Menu:")
	assert.Contains(t, output, "Exiting pingdeck.")
}

func TestServerMenuBack(t *testing.T) {
	t.Parallel()

	output := runShell(t, "1\n0\n6\n")
	assert.Contains(t, output, "Available Servers:")
	assert.Contains(t, output, "google (google.com)")
	assert.Contains(t, output, "Returning to main menu.")
}

func TestDNSMenuView(t *testing.T) {
	t.Parallel()

	output := runShell(t, "5\n8\n3\n5\n10\n6\n")
	assert.Contains(t, output, "Current DNS Servers:")
	assert.Contains(t, output, "Primary DNS: Not Set")
	assert.Contains(t, output, "Secondary DNS: Not Set")
}

func TestVersionInfo(t *testing.T) {
	t.Parallel()

	output := runShell(t, "5\n5\n10\n6\n")
	assert.Contains(t, output, "pingdeck Version: v0.0.0-test")
}

func TestCustomHostRecordsReport(t *testing.T) {
	t.Parallel()

	// Probe the loopback address, then list recent results. However
	// the single probe operations fare, the report must be recorded
	// and the menu must come back.
	output := runShell(t, "2\n127.0.0.1\n5\n9\n10\n6\n")
	assert.Contains(t, output, "Pinging 127.0.0.1...")
	assert.Contains(t, output, "Encryption Type:")
	assert.Contains(t, output, "Recent Results:")
	assert.Contains(t, output, "127.0.0.1 (")
	assert.Contains(t, output, "Exiting pingdeck.")
}

func TestPrinterThemeSwitch(t *testing.T) {
	t.Parallel()

	p := NewPrinter(NewTheme("default", config.BuiltinPalettes["default"]))
	out := &bytes.Buffer{}
	p.out = out

	p.Redln("one")
	p.SetTheme(NewTheme("dark", config.BuiltinPalettes["dark"]))
	p.Redln("two")
	p.Cyanln("three")

	want := "\x1b[91mone" + Reset + "\n" +
		"\x1b[31mtwo" + Reset + "\n" +
		"\x1b[36mthree" + Reset + "\n"
	assert.Equal(t, want, out.String())
}

func TestThemeTokens(t *testing.T) {
	t.Parallel()

	theme := NewTheme("default", config.BuiltinPalettes["default"])
	assert.Equal(t, "\x1b[92mok"+Reset, theme.Green("ok"))
	assert.Equal(t, "\x1b[91mbad"+Reset, theme.Red("bad"))
}

func TestUnescapeColorToken(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "\x1b[91m", unescapeColorToken(`\033[91m`))
	assert.Equal(t, "\x1b[1;31m", unescapeColorToken(`\x1b[1;31m`))
	assert.Equal(t, "\x1b[36m", unescapeColorToken(`\e[36m`))
	assert.True(t, config.ValidColorToken(unescapeColorToken(`\033[95m`)))
}

func TestUsageBar(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "["+strings.Repeat(" ", 20)+"]", usageBar(0))
	assert.Equal(t, "["+strings.Repeat("#", 10)+strings.Repeat(" ", 10)+"]", usageBar(50))
	assert.Equal(t, "["+strings.Repeat("#", 20)+"]", usageBar(100))
	assert.Equal(t, "["+strings.Repeat("#", 20)+"]", usageBar(250))
}

func TestFormatLifetime(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "90 days, 5 hours", formatLifetime(90*24*time.Hour+5*time.Hour))
	assert.Equal(t, "0 days, 1 hours", formatLifetime(90*time.Minute))
}

func TestCapitalize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Default", capitalize("default"))
	assert.Equal(t, "", capitalize(""))
}
