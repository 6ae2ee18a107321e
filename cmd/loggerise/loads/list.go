package loads

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
		flags   cmdutil.ListFlags
		status  string
		orderID int64
		tripID  int64
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List loads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := cmdutil.Client(*profile)
			if err != nil {
				return err
			}
			defer client.Close()

			page, err := client.Loads.List(cmd.Context(), loggerise.LoadListParams{
				ListParams:       flags.Params(),
				Status:           loggerise.LoadStatus(status),
				TransportOrderID: orderID,
				TripID:           tripID,
			})
			if err != nil {
				return err
			}

			if len(page.Data) == 0 {
				fmt.Println(ui.InfoMsg("No loads found."))
				return nil
			}

			rows := make([][]string, 0, len(page.Data))
			for _, l := range page.Data {
				trip := "-"
				if l.TripID != nil {
					trip = strconv.FormatInt(*l.TripID, 10)
				}
				rows = append(rows, []string{
					strconv.FormatInt(l.ID, 10),
					l.Reference,
					string(l.Status),
					strconv.FormatInt(l.TransportOrderID, 10),
					trip,
					fmt.Sprintf("%.0f kg", l.WeightKg),
				})
			}
			fmt.Println(ui.Table([]string{"ID", "REFERENCE", "STATUS", "ORDER", "TRIP", "WEIGHT"}, rows))
			if footer := cmdutil.Pagination(page.Meta); footer != "" {
				fmt.Println(footer)
			}
			return nil
		},
	}

	flags.Bind(cmd)
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (pending, assigned, in_transit, delivered)")
	cmd.Flags().Int64Var(&orderID, "order", 0, "Filter by transport order id")
	cmd.Flags().Int64Var(&tripID, "trip", 0, "Filter by trip id")
	return cmd
}
