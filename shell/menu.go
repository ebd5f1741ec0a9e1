package shell

import (
	"math/rand"
	"strconv"
	"strings"

	"github.com/pingdeck/pingdeck/config"
	"github.com/pingdeck/pingdeck/mgr"
)

func (s *Shell) mainMenu(w *mgr.WorkerCtx) error {
	for {
		s.printer.Blueln("\nMain Menu:")
		s.printer.Println("  1. Ping a Predefined Server")
		s.printer.Println("  2. Search for a Custom Hostname/IP")
		s.printer.Println("  3. Randomly Ping a Server")
		s.printer.Println("  4. List Available Servers with Status")
		s.printer.Println("  5. Settings")
		s.printer.Println("  6. Exit")

		choice, err := s.prompt(w)
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			err = s.serverMenu(w)
		case "2":
			err = s.customHost(w)
		case "3":
			s.randomPing(w)
		case "4":
			s.serverList(w)
		case "5":
			err = s.settingsMenu(w)
		case "6":
			s.printer.Println("Exiting pingdeck.")
			return nil
		default:
			s.printer.Println("Invalid choice. Please try again.")
		}
		if err != nil {
			return err
		}
	}
}

func (s *Shell) serverMenu(w *mgr.WorkerCtx) error {
	servers := s.instance.Config().Servers

	for {
		s.printer.Cyanln("\nAvailable Servers:")
		for i, server := range servers {
			s.printer.Printf("  %d. %s (%s)\n", i+1, server.Name, server.Host)
		}
		s.printer.Println("\nEnter the number of the server you want to ping, or '0' to go back:")

		choice, err := s.prompt(w)
		if err != nil {
			return err
		}
		if choice == "0" {
			s.printer.Println("Returning to main menu.")
			return nil
		}

		index, err := strconv.Atoi(choice)
		if err != nil {
			s.printer.Println("Invalid input. Please enter a number.")
			continue
		}
		if index < 1 || index > len(servers) {
			s.printer.Println("Invalid server number. Please try again.")
			continue
		}

		s.probeHost(w, servers[index-1].Host)
		return nil
	}
}

func (s *Shell) customHost(w *mgr.WorkerCtx) error {
	host, err := s.ask(w, "Enter hostname/IP to search: ")
	if err != nil {
		return err
	}
	if host == "" {
		s.printer.Println("No hostname given.")
		return nil
	}

	s.probeHost(w, host)
	return nil
}

func (s *Shell) randomPing(w *mgr.WorkerCtx) {
	servers := s.instance.Config().Servers
	host := servers[rand.Intn(len(servers))].Host

	s.printer.Yellowln("Randomly selected: %s", host)
	s.displayStatus(w, host)
	s.pingHost(w, host)
}

func (s *Shell) serverList(w *mgr.WorkerCtx) {
	s.printer.Magentaln("\nAvailable Servers with Status:")
	for _, server := range s.instance.Config().Servers {
		if w.IsDone() {
			return
		}
		s.displayStatus(w, server.Host)
	}
}

func (s *Shell) settingsMenu(w *mgr.WorkerCtx) error {
	for {
		s.printer.Magentaln("\nSettings Menu:")
		s.printer.Println("  1. Ping Connection Tweaks")
		s.printer.Println("  2. Show Device Specs")
		s.printer.Println("  3. Change Color Theme")
		s.printer.Println("  4. Wi-Fi Speed Test")
		s.printer.Println("  5. Version Info")
		s.printer.Println("  6. Resolve Hostname")
		s.printer.Println("  7. Analyze HTTP Headers")
		s.printer.Println("  8. Custom DNS Server")
		s.printer.Println("  9. Recent Results")
		s.printer.Println("  10. Back to Main Menu")

		choice, err := s.prompt(w)
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			err = s.pingTweaksMenu(w)
		case "2":
			err = s.deviceSpecs(w)
		case "3":
			err = s.themeMenu(w)
		case "4":
			s.speedTest(w)
		case "5":
			s.versionInfo()
		case "6":
			err = s.resolveHostname(w)
		case "7":
			err = s.headerAnalysis(w)
		case "8":
			err = s.dnsMenu(w)
		case "9":
			s.recentResults()
		case "10":
			return nil
		default:
			s.printer.Println("Invalid choice. Please try again.")
		}
		if err != nil {
			return err
		}
	}
}

func (s *Shell) pingTweaksMenu(w *mgr.WorkerCtx) error {
	cfg := s.instance.Config()

	for {
		s.printer.Cyanln("\nPing Connection Tweaks:")
		s.printer.Printf("  Current Ping Count: %d\n", cfg.GetPingCount())
		s.printer.Println("  1. Change Ping Count")
		s.printer.Println("  2. Back to Settings Menu")

		choice, err := s.prompt(w)
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			input, err := s.ask(w, "Enter new ping count: ")
			if err != nil {
				return err
			}
			count, err := strconv.Atoi(input)
			if err != nil {
				s.printer.Println("Invalid input. Please enter a number.")
				continue
			}
			if err := cfg.SetPingCount(count); err != nil {
				s.printer.Redln("%s", err.Error())
				continue
			}
			s.printer.Printf("Ping count set to %d\n", count)

		case "2":
			return nil
		default:
			s.printer.Println("Invalid choice. Please try again.")
		}
	}
}

func (s *Shell) dnsMenu(w *mgr.WorkerCtx) error {
	for {
		s.printer.Cyanln("\nCustom DNS Server Settings:")
		s.printer.Println("  1. Set Primary DNS Server")
		s.printer.Println("  2. Set Secondary DNS Server")
		s.printer.Println("  3. View Current DNS Servers")
		s.printer.Println("  4. Reset to Default DNS Servers")
		s.printer.Println("  5. Back to Settings Menu")

		choice, err := s.prompt(w)
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			if err := s.setDNS(w, config.PrimaryDNS); err != nil {
				return err
			}
		case "2":
			if err := s.setDNS(w, config.SecondaryDNS); err != nil {
				return err
			}
		case "3":
			s.viewDNS()
		case "4":
			if err := s.instance.Config().ResetDNS(); err != nil {
				s.printer.Redln("Failed to reset DNS servers: %s", err.Error())
				continue
			}
			s.printer.Greenln("DNS servers reset to default (system-configured).")
		case "5":
			return nil
		default:
			s.printer.Println("Invalid choice. Please try again.")
		}
	}
}

func (s *Shell) setDNS(w *mgr.WorkerCtx, kind config.DNSKind) error {
	for {
		ip, err := s.ask(w, "Enter new "+string(kind)+" DNS server IP address: ")
		if err != nil {
			return err
		}

		if err := s.instance.Config().SetDNS(kind, ip); err != nil {
			s.printer.Redln("Invalid IP address format. Please try again.")
			continue
		}
		s.printer.Greenln("%s DNS server set to %s", capitalize(string(kind)), ip)
		return nil
	}
}

func (s *Shell) viewDNS() {
	primary, secondary := s.instance.Config().DNS()
	if primary == "" {
		primary = "Not Set"
	}
	if secondary == "" {
		secondary = "Not Set"
	}

	s.printer.Yellowln("\nCurrent DNS Servers:")
	s.printer.Printf("  Primary DNS: %s\n", primary)
	s.printer.Printf("  Secondary DNS: %s\n", secondary)
}

func (s *Shell) themeMenu(w *mgr.WorkerCtx) error {
	cfg := s.instance.Config()

	for {
		names := cfg.ThemeNames()

		s.printer.Cyanln("\nColor Theme Settings:")
		s.printer.Printf("  Current Theme: %s\n", cfg.Theme())
		for i, name := range names {
			s.printer.Printf("  %d. %s Theme\n", i+1, capitalize(name))
		}
		s.printer.Printf("  %d. Custom Theme (Advanced)\n", len(names)+1)
		s.printer.Printf("  %d. Back to Settings Menu\n", len(names)+2)
		s.printer.Println("\nEnter the number of the theme you want to use:")

		choice, err := s.prompt(w)
		if err != nil {
			return err
		}

		num, err := strconv.Atoi(choice)
		if err != nil {
			s.printer.Redln("Invalid input. Please try again.")
			continue
		}

		switch {
		case num >= 1 && num <= len(names):
			name := names[num-1]
			if err := cfg.SetTheme(name); err != nil {
				s.printer.Redln("Failed to save theme: %s", err.Error())
				continue
			}
			s.printer.SetTheme(NewTheme(name, cfg.ActivePalette()))
			s.printer.Greenln("Color theme set to %s.", capitalize(name))
			return nil

		case num == len(names)+1:
			return s.customTheme(w)

		case num == len(names)+2:
			return nil

		default:
			s.printer.Redln("Invalid theme number. Please try again.")
		}
	}
}

func (s *Shell) customTheme(w *mgr.WorkerCtx) error {
	cfg := s.instance.Config()
	defaults := config.BuiltinPalettes[config.DefaultThemeName]

	s.printer.Yellowln("\n--- Custom Color Theme Configuration ---")
	s.printer.Yellowln(`Enter ANSI color codes (e.g., \033[91m) or 'default' to use default for each color.`)

	tokens := []struct {
		name     string
		fallback string
		target   *string
	}{
		{"RED", defaults.Red, nil},
		{"GREEN", defaults.Green, nil},
		{"YELLOW", defaults.Yellow, nil},
		{"BLUE", defaults.Blue, nil},
		{"MAGENTA", defaults.Magenta, nil},
		{"CYAN", defaults.Cyan, nil},
	}

	var palette config.Palette
	tokens[0].target = &palette.Red
	tokens[1].target = &palette.Green
	tokens[2].target = &palette.Yellow
	tokens[3].target = &palette.Blue
	tokens[4].target = &palette.Magenta
	tokens[5].target = &palette.Cyan

	for _, token := range tokens {
		for {
			input, err := s.ask(w, "Enter color code for "+token.name+" (or 'default'): ")
			if err != nil {
				return err
			}

			if strings.EqualFold(input, "default") {
				*token.target = token.fallback
				break
			}

			code := unescapeColorToken(input)
			if config.ValidColorToken(code) {
				*token.target = code
				break
			}
			s.printer.Redln("Invalid ANSI color code. Please try again or enter 'default'.")
		}
	}

	name, err := s.ask(w, "Enter a name for your custom theme: ")
	if err != nil {
		return err
	}

	if err := cfg.AddCustomTheme(name, palette); err != nil {
		s.printer.Redln("%s", err.Error())
		return nil
	}

	s.printer.SetTheme(NewTheme(name, palette))
	s.printer.Greenln("Custom theme '%s' saved and applied.", name)
	return nil
}

// unescapeColorToken turns typed escape spellings into a real
// escape byte, so tokens can be entered on a plain keyboard.
func unescapeColorToken(input string) string {
	return strings.NewReplacer(
		`\033`, "\x1b",
		`\x1b`, "\x1b",
		`\e`, "\x1b",
	).Replace(input)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
