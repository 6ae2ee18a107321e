// Package vehicles holds the fleet commands.
package vehicles

import "github.com/spf13/cobra"

// Cmd returns the parent "loggerise vehicles" command.
func Cmd(profile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vehicles",
		Short: "Work with the fleet",
	}

	cmd.AddCommand(listCmd(profile))
	cmd.AddCommand(getCmd(profile))
	return cmd
}
