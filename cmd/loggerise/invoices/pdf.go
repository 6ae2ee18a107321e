package invoices

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Futurecode-Software/loggerise-go/cmd/loggerise/cmdutil"
	"github.com/Futurecode-Software/loggerise-go/cmd/loggerise/ui"
)

func pdfCmd(profile *string) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "pdf <id>",
		Short: "Download an invoice as PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cmdutil.ParseID(args[0])
			if err != nil {
				return err
			}

			client, err := cmdutil.Client(*profile)
			if err != nil {
				return err
			}
			defer client.Close()

			doc, err := client.Invoices.DownloadPDF(cmd.Context(), id)
			if err != nil {
				return err
			}

			path := output
			if path == "" {
				path = fmt.Sprintf("invoice-%d.pdf", id)
			}
			if path == "-" {
				_, err := os.Stdout.Write(doc)
				return err
			}
			if err := os.WriteFile(path, doc, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}

			fmt.Println(ui.SuccessMsg("Wrote %s (%d bytes).", ui.Bold(path), len(doc)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", `Output file ("-" for stdout)`)
	return cmd
}
