package quotes

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
		flags  cmdutil.ListFlags
		status string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List quotes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := cmdutil.Client(*profile)
			if err != nil {
				return err
			}
			defer client.Close()

			page, err := client.Quotes.List(cmd.Context(), loggerise.QuoteListParams{
				ListParams: flags.Params(),
				Status:     loggerise.QuoteStatus(status),
			})
			if err != nil {
				return err
			}

			if len(page.Data) == 0 {
				fmt.Println(ui.InfoMsg("No quotes found."))
				return nil
			}

			rows := make([][]string, 0, len(page.Data))
			for _, q := range page.Data {
				rows = append(rows, []string{
					strconv.FormatInt(q.ID, 10),
					q.Number,
					string(q.Status),
					q.CustomerName,
					cmdutil.Money(q.Currency, q.Total),
					cmdutil.OrDash(q.ValidUntil),
				})
			}
			fmt.Println(ui.Table([]string{"ID", "NUMBER", "STATUS", "CUSTOMER", "TOTAL", "VALID UNTIL"}, rows))
			if footer := cmdutil.Pagination(page.Meta); footer != "" {
				fmt.Println(footer)
			}
			return nil
		},
	}

	flags.Bind(cmd)
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (pending, sent, accepted, declined, expired)")
	return cmd
}
