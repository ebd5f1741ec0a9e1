package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/pingdeck/pingdeck/config"
)

var (
	rootCmd = &cobra.Command{
		Use: "pingdeck",
	}

	settingsFile = pflag.String("settings", config.DefaultSettingsFile, "set settings file")
	serversFile  = pflag.String("servers", "", "set predefined server file (json or yaml)")
	historyFile  = pflag.String("history", "", "set probe report history file")
	logLevel     = pflag.String("log", "", "set log level")
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
