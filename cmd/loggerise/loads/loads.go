// Package loads holds the load commands.
package loads

import "github.com/spf13/cobra"

// Cmd returns the parent "loggerise loads" command.
func Cmd(profile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loads",
		Short: "Work with loads",
	}

	cmd.AddCommand(listCmd(profile))
	cmd.AddCommand(getCmd(profile))
	return cmd
}
