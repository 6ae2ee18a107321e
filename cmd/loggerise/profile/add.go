package profile

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Futurecode-Software/loggerise-go/cmd/loggerise/ui"
	"github.com/Futurecode-Software/loggerise-go/config"
)

func addCmd() *cobra.Command {
	var (
		baseURL      string
		email        string
		token        string
		realtimeHost string
		realtimeKey  string
		timeout      time.Duration
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add or update a profile",
		Long: `Add or update a named connection profile.

String values may reference environment variables, resolved when the
profile is used: ${VAR} fails if VAR is unset, ${VAR:-default} falls
back. Storing the token as a reference keeps the secret out of the
config file:

  loggerise profile add acme \
    --base-url https://acme.loggerise.com \
    --token '${LOGGERISE_TOKEN}'`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			name := args[0]

			p := config.Profile{
				BaseURL:      baseURL,
				Email:        email,
				Token:        token,
				RealtimeHost: realtimeHost,
				RealtimeKey:  realtimeKey,
				Timeout:      config.Duration(timeout),
			}

			// Environment references resolve at use time, so an unset
			// variable is not an error here - but a profile that does
			// resolve must be valid.
			expanded, err := p.Expand()
			if err != nil {
				fmt.Println(ui.WarnMsg("%v; the profile is saved and the reference resolves at use time", err))
			} else if err := expanded.Validate(); err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			cfg.Set(name, p)
			if err := cfg.Save(); err != nil {
				return err
			}

			fmt.Println(ui.SuccessMsg("Profile %s saved.", ui.Bold(name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "", "Tenant API origin, e.g. https://acme.loggerise.com")
	cmd.Flags().StringVar(&email, "email", "", "Account email (informational)")
	cmd.Flags().StringVar(&token, "token", "", "Bearer token or ${VAR} reference")
	cmd.Flags().StringVar(&realtimeHost, "realtime-host", "", "Websocket host, e.g. ws.loggerise.com:443")
	cmd.Flags().StringVar(&realtimeKey, "realtime-key", "", "Websocket app key")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Per-request timeout override")
	_ = cmd.MarkFlagRequired("base-url")
	return cmd
}
