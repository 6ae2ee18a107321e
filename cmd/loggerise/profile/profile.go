// Package profile manages the named connection profiles in the CLI
// config file.
package profile

import "github.com/spf13/cobra"

// Cmd returns the parent "loggerise profile" command.
func Cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage connection profiles",
	}

	cmd.AddCommand(addCmd())
	cmd.AddCommand(listCmd())
	cmd.AddCommand(useCmd())
	cmd.AddCommand(removeCmd())
	return cmd
}
