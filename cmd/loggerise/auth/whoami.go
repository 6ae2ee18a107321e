package auth

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Futurecode-Software/loggerise-go"
	"github.com/Futurecode-Software/loggerise-go/cmd/loggerise/cmdutil"
	"github.com/Futurecode-Software/loggerise-go/cmd/loggerise/ui"
)

// WhoamiCmd returns the "loggerise whoami" command.
func WhoamiCmd(profile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user and tenant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := cmdutil.Client(*profile)
			if err != nil {
				return err
			}
			defer client.Close()

			account, err := client.Auth.Me(cmd.Context())
			if errors.Is(err, loggerise.ErrNotAuthenticated) || loggerise.IsUnauthorized(err) {
				return errors.New(`not signed in; run "loggerise login"`)
			}
			if err != nil {
				return err
			}

			fmt.Print(ui.KeyValues(
				ui.KV("User", fmt.Sprintf("%s <%s>", account.User.Name, account.User.Email)),
				ui.KV("Role", account.User.Role),
				ui.KV("Tenant", fmt.Sprintf("%s (%s)", account.Tenant.Name, account.Tenant.Subdomain)),
				ui.KV("Setup", setupStateCell(account.Tenant.SetupState)),
			))
			return nil
		},
	}
}

func setupStateCell(s loggerise.SetupState) string {
	switch s {
	case loggerise.SetupStateActive:
		return ui.Success(s.String())
	case loggerise.SetupStateFailed:
		return ui.ErrorStyle.Render(s.String())
	default:
		return ui.WarnStyle.Render(s.String())
	}
}
