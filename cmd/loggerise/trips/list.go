package trips

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
		flags     cmdutil.ListFlags
		status    string
		vehicleID int64
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List trips",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := cmdutil.Client(*profile)
			if err != nil {
				return err
			}
			defer client.Close()

			page, err := client.Trips.List(cmd.Context(), loggerise.TripListParams{
				ListParams: flags.Params(),
				Status:     loggerise.TripStatus(status),
				VehicleID:  vehicleID,
			})
			if err != nil {
				return err
			}

			if len(page.Data) == 0 {
				fmt.Println(ui.InfoMsg("No trips found."))
				return nil
			}

			rows := make([][]string, 0, len(page.Data))
			for _, t := range page.Data {
				rows = append(rows, []string{
					strconv.FormatInt(t.ID, 10),
					t.Reference,
					string(t.Status),
					strconv.FormatInt(t.VehicleID, 10),
					cmdutil.OrDash(t.DriverName),
					cmdutil.FormatTime(t.DepartureAt),
					cmdutil.FormatTimePtr(t.ArrivalAt),
				})
			}
			fmt.Println(ui.Table([]string{"ID", "REFERENCE", "STATUS", "VEHICLE", "DRIVER", "DEPARTURE", "ARRIVAL"}, rows))
			if footer := cmdutil.Pagination(page.Meta); footer != "" {
				fmt.Println(footer)
			}
			return nil
		},
	}

	flags.Bind(cmd)
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (planned, en_route, completed, cancelled)")
	cmd.Flags().Int64Var(&vehicleID, "vehicle", 0, "Filter by vehicle id")
	return cmd
}
