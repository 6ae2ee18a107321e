// Package setupcmd follows tenant provisioning from the terminal.
package setupcmd

import "github.com/spf13/cobra"

// Cmd returns the parent "loggerise setup" command.
func Cmd(profile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Inspect and follow tenant provisioning",
	}

	cmd.AddCommand(statusCmd(profile))
	cmd.AddCommand(watchCmd(profile))
	return cmd
}
