package trips

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
		Short: "Show one trip",
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

			t, err := client.Trips.Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			pairs := []ui.Pair{
				ui.KV("Reference", ui.Bold(t.Reference)),
				ui.KV("Status", string(t.Status)),
				ui.KV("Vehicle", strconv.FormatInt(t.VehicleID, 10)),
				ui.KV("Driver", cmdutil.OrDash(t.DriverName)),
				ui.KV("Departure", cmdutil.FormatTime(t.DepartureAt)),
				ui.KV("Arrival", cmdutil.FormatTimePtr(t.ArrivalAt)),
				ui.KV("Distance", fmt.Sprintf("%.0f km", t.DistanceKm)),
			}
			fmt.Print(ui.KeyValues(pairs...))
			return nil
		},
	}
}
