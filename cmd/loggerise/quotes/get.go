package quotes

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Futurecode-Software/loggerise-go/cmd/loggerise/cmdutil"
	"github.com/Futurecode-Software/loggerise-go/cmd/loggerise/ui"
)

func getCmd(profile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a quote",
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

			q, err := client.Quotes.Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			pairs := []ui.Pair{
				ui.KV("Number", ui.Bold(q.Number)),
				ui.KV("Status", string(q.Status)),
				ui.KV("Customer", q.CustomerName),
				ui.KV("Total", ui.Bold(cmdutil.Money(q.Currency, q.Total))),
				ui.KV("Valid until", cmdutil.OrDash(q.ValidUntil)),
			}
			if q.Notes != "" {
				pairs = append(pairs, ui.KV("Notes", q.Notes))
			}
			fmt.Print(ui.KeyValues(pairs...))
			return nil
		},
	}
}
