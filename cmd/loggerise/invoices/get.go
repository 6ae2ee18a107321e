package invoices

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Futurecode-Software/loggerise-go/cmd/loggerise/cmdutil"
	"github.com/Futurecode-Software/loggerise-go/cmd/loggerise/ui"
)

func getCmd(profile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one invoice",
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

			inv, err := client.Invoices.Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			pairs := []ui.Pair{
				ui.KV("Number", ui.Bold(inv.Number)),
				ui.KV("Status", string(inv.Status)),
				ui.KV("Customer", inv.CustomerName),
				ui.KV("Issued", cmdutil.OrDash(inv.IssuedOn)),
				ui.KV("Due", cmdutil.OrDash(inv.DueOn)),
				ui.KV("Subtotal", cmdutil.Money(inv.Currency, inv.Subtotal)),
				ui.KV("Tax", cmdutil.Money(inv.Currency, inv.TaxTotal)),
				ui.KV("Total", ui.Bold(cmdutil.Money(inv.Currency, inv.Total))),
			}
			if inv.TransportOrderID != nil {
				pairs = append(pairs, ui.KV("Order", strconv.FormatInt(*inv.TransportOrderID, 10)))
			}
			if inv.Notes != "" {
				pairs = append(pairs, ui.KV("Notes", inv.Notes))
			}
			fmt.Print(ui.KeyValues(pairs...))

			if len(inv.Lines) == 0 {
				return nil
			}
			rows := make([][]string, 0, len(inv.Lines))
			for _, line := range inv.Lines {
				rows = append(rows, []string{
					line.Description,
					strconv.FormatFloat(line.Quantity, 'f', -1, 64),
					cmdutil.Money(inv.Currency, line.UnitPrice),
					cmdutil.Money(inv.Currency, line.Total),
				})
			}
			fmt.Println(ui.Table([]string{"DESCRIPTION", "QTY", "UNIT", "TOTAL"}, rows))
			return nil
		},
	}
}
