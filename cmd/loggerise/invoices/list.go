package invoices

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Futurecode-Software/loggerise-go"
	"github.com/Futurecode-Software/loggerise-go/cmd/loggerise/cmdutil"
	"github.com/Futurecode-Software/loggerise-go/cmd/loggerise/ui"
)

func listCmd(profile *string) *cobra.Command {
	var (
		flags      cmdutil.ListFlags
		status     string
		customerID int64
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List invoices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := cmdutil.Client(*profile)
			if err != nil {
				return err
			}
			defer client.Close()

			page, err := client.Invoices.List(cmd.Context(), loggerise.InvoiceListParams{
				ListParams: flags.Params(),
				Status:     loggerise.InvoiceStatus(status),
				CustomerID: customerID,
			})
			if err != nil {
				return err
			}

			if len(page.Data) == 0 {
				fmt.Println(ui.InfoMsg("No invoices found."))
				return nil
			}

			rows := make([][]string, 0, len(page.Data))
			for _, inv := range page.Data {
				rows = append(rows, []string{
					strconv.FormatInt(inv.ID, 10),
					inv.Number,
					string(inv.Status),
					inv.CustomerName,
					cmdutil.Money(inv.Currency, inv.Total),
					cmdutil.OrDash(inv.DueOn),
				})
			}
			fmt.Println(ui.Table([]string{"ID", "NUMBER", "STATUS", "CUSTOMER", "TOTAL", "DUE"}, rows))
			if footer := cmdutil.Pagination(page.Meta); footer != "" {
				fmt.Println(footer)
			}
			return nil
		},
	}

	flags.Bind(cmd)
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (draft, sent, paid, overdue, cancelled)")
	cmd.Flags().Int64Var(&customerID, "customer", 0, "Filter by customer id")
	return cmd
}
