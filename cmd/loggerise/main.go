// Package main is the loggerise command line client.
//
// It drives a Loggerise tenant through the public API: sign in, follow
// tenant provisioning, and work with invoices, transport orders, loads,
// vehicles, trips, and quotes. Connection details live in named
// profiles; see "loggerise profile add".
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Futurecode-Software/loggerise-go/cmd/loggerise/auth"
	"github.com/Futurecode-Software/loggerise-go/cmd/loggerise/cmdutil"
	invoicescmd "github.com/Futurecode-Software/loggerise-go/cmd/loggerise/invoices"
	listencmd "github.com/Futurecode-Software/loggerise-go/cmd/loggerise/listen"
	loadscmd "github.com/Futurecode-Software/loggerise-go/cmd/loggerise/loads"
	orderscmd "github.com/Futurecode-Software/loggerise-go/cmd/loggerise/orders"
	profilecmd "github.com/Futurecode-Software/loggerise-go/cmd/loggerise/profile"
	quotescmd "github.com/Futurecode-Software/loggerise-go/cmd/loggerise/quotes"
	setupcmd "github.com/Futurecode-Software/loggerise-go/cmd/loggerise/setup"
	tripscmd "github.com/Futurecode-Software/loggerise-go/cmd/loggerise/trips"
	"github.com/Futurecode-Software/loggerise-go/cmd/loggerise/ui"
	vehiclescmd "github.com/Futurecode-Software/loggerise-go/cmd/loggerise/vehicles"
)

// Version information - set by GoReleaser at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.1.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

// run executes the root command and maps errors to exit codes, so
// deferred cleanup runs before the process exits.
func run() int {
	var (
		profileName string
		debug       bool
		noColor     bool
	)

	root := &cobra.Command{
		Use:           "loggerise",
		Short:         "Loggerise transport management from the command line",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(*cobra.Command, []string) {
			ui.ConfigureInteraction(noColor)

			level := slog.LevelWarn
			if debug {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			})))
		},
	}

	root.PersistentFlags().StringVarP(&profileName, "profile", "p", "", "Config profile to use")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colors and live rendering")

	root.AddCommand(auth.LoginCmd(&profileName))
	root.AddCommand(auth.LogoutCmd(&profileName))
	root.AddCommand(auth.WhoamiCmd(&profileName))
	root.AddCommand(auth.RegisterCmd(&profileName))
	root.AddCommand(setupcmd.Cmd(&profileName))
	root.AddCommand(invoicescmd.Cmd(&profileName))
	root.AddCommand(orderscmd.Cmd(&profileName))
	root.AddCommand(loadscmd.Cmd(&profileName))
	root.AddCommand(vehiclescmd.Cmd(&profileName))
	root.AddCommand(tripscmd.Cmd(&profileName))
	root.AddCommand(quotescmd.Cmd(&profileName))
	root.AddCommand(listencmd.Cmd(&profileName))
	root.AddCommand(profilecmd.Cmd())
	root.AddCommand(versionCmd())

	// cancel command contexts on SIGINT/SIGTERM so watch and listen shut
	// down cleanly
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		code := 1
		var exitErr *cmdutil.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.Code
		}
		if msg := err.Error(); msg != "" {
			fmt.Fprintln(os.Stderr, ui.ErrorMsg("%s", msg))
		}
		return code
	}
	return 0
}

// versionCmd prints version information.
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			fmt.Printf("loggerise %s\n", version)
			fmt.Printf("  commit: %s\n", commit)
			fmt.Printf("  built:  %s\n", date)
		},
	}
}
