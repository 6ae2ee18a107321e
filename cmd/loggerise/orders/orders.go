// Package orders holds the transport order commands.
package orders

import "github.com/spf13/cobra"

// Cmd returns the parent "loggerise orders" command.
func Cmd(profile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Work with transport orders",
	}

	cmd.AddCommand(listCmd(profile))
	cmd.AddCommand(getCmd(profile))
	cmd.AddCommand(cancelCmd(profile))
	return cmd
}
