// Package auth holds the sign-in related top-level commands: login,
// logout, whoami, and register.
package auth

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Futurecode-Software/loggerise-go"
	"github.com/Futurecode-Software/loggerise-go/cmd/loggerise/cmdutil"
	"github.com/Futurecode-Software/loggerise-go/cmd/loggerise/ui"
)

// LoginCmd returns the "loggerise login" command.
func LoginCmd(profile *string) *cobra.Command {
	var email, password, deviceName string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the token on the profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := cmdutil.Client(*profile)
			if err != nil {
				return err
			}
			defer client.Close()

			if email == "" {
				email, err = ui.Prompt("Email", "set --email to skip the prompt")
				if err != nil {
					return err
				}
			}
			if password == "" {
				password, err = ui.PromptSecret("Password", "set --password to skip the prompt")
				if err != nil {
					return err
				}
			}

			session, err := client.Auth.Login(cmd.Context(), loggerise.LoginParams{
				Email:      email,
				Password:   password,
				DeviceName: deviceName,
			})
			if err != nil {
				return err
			}

			fmt.Println(ui.SuccessMsg("Signed in as %s (%s).", ui.Bold(session.User.Name), session.Tenant.Name))
			if session.Tenant.SetupState == loggerise.SetupStateSettingUp {
				fmt.Println(ui.InfoMsg("Tenant is still provisioning; follow it with %s.", ui.Bold("loggerise setup watch")))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prompted when omitted)")
	cmd.Flags().StringVar(&deviceName, "device-name", defaultDeviceName(), "Label for the issued token")
	return cmd
}

// defaultDeviceName labels issued tokens so they can be told apart in
// the tenant's device list.
func defaultDeviceName() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		return "loggerise-cli"
	}
	return "loggerise-cli@" + host
}
