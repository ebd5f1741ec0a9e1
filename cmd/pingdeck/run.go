package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/pingdeck/pingdeck"
	"github.com/pingdeck/pingdeck/config"
)

func init() {
	rootCmd.AddCommand(runCmd)
}

var (
	runCmd = &cobra.Command{
		Use:  "run",
		RunE: run,
	}

	sigUSR1 = syscall.Signal(0xa)
)

func run(cmd *cobra.Command, args []string) error {
	// Configure logging first, settings loading already logs.
	// Logs go to stderr so they do not mix with menu output.
	level := slog.LevelWarn
	if *logLevel != "" {
		if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
			return fmt.Errorf("invalid log level %q: %w", *logLevel, err)
		}
	}
	logOutput := os.Stderr
	slog.SetDefault(slog.New(
		tint.NewHandler(logOutput, &tint.Options{
			Level:      level,
			TimeFormat: time.DateTime,
			NoColor:    !isatty.IsTerminal(logOutput.Fd()),
		}),
	))

	c := config.LoadSettings(*settingsFile)
	if *serversFile != "" {
		servers, err := config.LoadServers(*serversFile)
		if err != nil {
			return fmt.Errorf("failed to load server file: %w", err)
		}
		c.Servers = servers
	}

	// Setup up everything.
	deck, err := pingdeck.New(Version, c, *historyFile)
	if err != nil {
		return fmt.Errorf("failed to initialize pingdeck: %w", err)
	}

	// Finalize and start all workers.
	err = deck.Start()
	if err != nil {
		return fmt.Errorf("failed to start pingdeck: %w", err)
	}

	// Wait for signal.
	signalCh := make(chan os.Signal, 1)
	signal.Notify(
		signalCh,
		os.Interrupt,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
		sigUSR1,
	)

signalLoop:
	for {
		select {
		case sig := <-signalCh:
			// Only print and continue to wait if SIGUSR1
			if sig == sigUSR1 {
				printStackTo(os.Stderr, "PRINTING STACK ON REQUEST")
				continue signalLoop
			}

			fmt.Println(" <INTERRUPT>") // CLI output.
			slog.Warn("program was interrupted, stopping")

			// catch signals during shutdown
			go func() {
				forceCnt := 5
				for {
					<-signalCh
					forceCnt--
					if forceCnt > 0 {
						fmt.Printf(" <INTERRUPT> again, but already shutting down - %d more to force\n", forceCnt)
					} else {
						printStackTo(os.Stderr, "PRINTING STACK ON FORCED EXIT")
						os.Exit(1)
					}
				}
			}()

			go func() {
				time.Sleep(time.Minute)
				printStackTo(os.Stderr, "PRINTING STACK - TAKING TOO LONG FOR SHUTDOWN")
				os.Exit(1)
			}()

			if !deck.Stop() {
				slog.Error("failed to stop pingdeck")
				os.Exit(1)
			}
			break signalLoop

		case <-deck.Shell().Exited():
			if !deck.Stop() {
				slog.Error("failed to stop pingdeck")
				os.Exit(1)
			}
			break signalLoop

		case <-deck.Done():
			break signalLoop
		}
	}

	return nil
}

func printStackTo(writer io.Writer, msg string) {
	_, err := fmt.Fprintf(writer, "===== %s =====\n", msg)
	if err == nil {
		err = pprof.Lookup("goroutine").WriteTo(writer, 1)
	}
	if err != nil {
		slog.Error("failed to write stack trace", "err", err)
	}
}
