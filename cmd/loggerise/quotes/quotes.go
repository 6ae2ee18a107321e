// Package quotes holds the quote commands.
package quotes

import "github.com/spf13/cobra"

// Cmd returns the parent "loggerise quotes" command.
func Cmd(profile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quotes",
		Short: "Work with quotes",
	}

	cmd.AddCommand(listCmd(profile))
	cmd.AddCommand(getCmd(profile))
	cmd.AddCommand(acceptCmd(profile))
	cmd.AddCommand(declineCmd(profile))
	return cmd
}
