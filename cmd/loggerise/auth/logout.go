package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Futurecode-Software/loggerise-go/cmd/loggerise/cmdutil"
	"github.com/Futurecode-Software/loggerise-go/cmd/loggerise/ui"
)

// LogoutCmd returns the "loggerise logout" command.
func LogoutCmd(profile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the token and remove it from the profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := cmdutil.Client(*profile)
			if err != nil {
				return err
			}
			defer client.Close()

			if !client.Authenticated() {
				fmt.Println(ui.InfoMsg("Not signed in."))
				return nil
			}
			if err := client.Auth.Logout(cmd.Context()); err != nil {
				return err
			}

			fmt.Println(ui.SuccessMsg("Signed out."))
			return nil
		},
	}
}
