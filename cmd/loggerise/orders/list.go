package orders

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
		Short: "List transport orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := cmdutil.Client(*profile)
			if err != nil {
				return err
			}
			defer client.Close()

			page, err := client.TransportOrders.List(cmd.Context(), loggerise.TransportOrderListParams{
				ListParams: flags.Params(),
				Status:     loggerise.TransportOrderStatus(status),
				CustomerID: customerID,
			})
			if err != nil {
				return err
			}

			if len(page.Data) == 0 {
				fmt.Println(ui.InfoMsg("No transport orders found."))
				return nil
			}

			rows := make([][]string, 0, len(page.Data))
			for _, o := range page.Data {
				rows = append(rows, []string{
					strconv.FormatInt(o.ID, 10),
					o.Reference,
					string(o.Status),
					o.CustomerName,
					fmt.Sprintf("%s → %s", o.PickupLocation, o.DeliveryLocation),
					cmdutil.FormatTime(o.PickupAt),
				})
			}
			fmt.Println(ui.Table([]string{"ID", "REFERENCE", "STATUS", "CUSTOMER", "ROUTE", "PICKUP"}, rows))
			if footer := cmdutil.Pagination(page.Meta); footer != "" {
				fmt.Println(footer)
			}
			return nil
		},
	}

	flags.Bind(cmd)
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (draft, planned, in_transit, delivered, cancelled)")
	cmd.Flags().Int64Var(&customerID, "customer", 0, "Filter by customer id")
	return cmd
}
