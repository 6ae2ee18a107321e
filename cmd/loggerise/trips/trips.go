// Package trips holds the trip commands, including the message thread.
package trips

import "github.com/spf13/cobra"

// Cmd returns the parent "loggerise trips" command.
func Cmd(profile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trips",
		Short: "Work with trips",
	}

	cmd.AddCommand(listCmd(profile))
	cmd.AddCommand(getCmd(profile))
	cmd.AddCommand(startCmd(profile))
	cmd.AddCommand(completeCmd(profile))
	cmd.AddCommand(messagesCmd(profile))
	cmd.AddCommand(sendCmd(profile))
	return cmd
}
