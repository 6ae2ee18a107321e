// Package invoices holds the invoice commands.
package invoices

import "github.com/spf13/cobra"

// Cmd returns the parent "loggerise invoices" command.
func Cmd(profile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoices",
		Short: "Work with invoices",
	}

	cmd.AddCommand(listCmd(profile))
	cmd.AddCommand(getCmd(profile))
	cmd.AddCommand(pdfCmd(profile))
	return cmd
}
