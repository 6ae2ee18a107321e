package auth

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Futurecode-Software/loggerise-go"
	"github.com/Futurecode-Software/loggerise-go/cmd/loggerise/cmdutil"
	"github.com/Futurecode-Software/loggerise-go/cmd/loggerise/ui"
)

// RegisterCmd returns the "loggerise register" command. It creates a new
// tenant with its owner account and signs the owner in; provisioning
// continues in the background and can be followed with "setup watch".
func RegisterCmd(profile *string) *cobra.Command {
	var company, subdomain, name, email, deviceName string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new tenant and its owner account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := cmdutil.Client(*profile)
			if err != nil {
				return err
			}
			defer client.Close()

			prompts := []struct {
				dst   *string
				label string
				hint  string
			}{
				{&company, "Company name", "set --company to skip the prompt"},
				{&subdomain, "Subdomain", "set --subdomain to skip the prompt"},
				{&name, "Your name", "set --name to skip the prompt"},
				{&email, "Email", "set --email to skip the prompt"},
			}
			for _, p := range prompts {
				if *p.dst != "" {
					continue
				}
				if *p.dst, err = ui.Prompt(p.label, p.hint); err != nil {
					return err
				}
			}

			password, err := ui.PromptSecret("Password", "register requires a terminal")
			if err != nil {
				return err
			}
			confirm, err := ui.PromptSecret("Confirm password", "register requires a terminal")
			if err != nil {
				return err
			}
			if password != confirm {
				return errors.New("passwords do not match")
			}

			session, err := client.Auth.Register(cmd.Context(), loggerise.RegisterParams{
				CompanyName:          company,
				Subdomain:            subdomain,
				Name:                 name,
				Email:                email,
				Password:             password,
				PasswordConfirmation: confirm,
				DeviceName:           deviceName,
			})
			if err != nil {
				return err
			}

			fmt.Println(ui.SuccessMsg("Tenant %s created, signed in as %s.",
				ui.Bold(session.Tenant.Name), session.User.Email))
			fmt.Println(ui.InfoMsg("Provisioning has started; follow it with %s.", ui.Bold("loggerise setup watch")))
			return nil
		},
	}

	cmd.Flags().StringVar(&company, "company", "", "Company name")
	cmd.Flags().StringVar(&subdomain, "subdomain", "", "Tenant subdomain")
	cmd.Flags().StringVar(&name, "name", "", "Owner's full name")
	cmd.Flags().StringVar(&email, "email", "", "Owner's email")
	cmd.Flags().StringVar(&deviceName, "device-name", defaultDeviceName(), "Label for the issued token")
	return cmd
}
