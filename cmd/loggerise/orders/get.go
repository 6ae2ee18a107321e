package orders

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
		Short: "Show one transport order",
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

			o, err := client.TransportOrders.Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			pairs := []ui.Pair{
				ui.KV("Reference", ui.Bold(o.Reference)),
				ui.KV("Status", string(o.Status)),
				ui.KV("Customer", o.CustomerName),
				ui.KV("Pickup", fmt.Sprintf("%s, %s", o.PickupLocation, cmdutil.FormatTime(o.PickupAt))),
				ui.KV("Delivery", fmt.Sprintf("%s, %s", o.DeliveryLocation, cmdutil.FormatTime(o.DeliveryAt))),
				ui.KV("Weight", fmt.Sprintf("%.0f kg", o.TotalWeightKg)),
			}
			if o.VehicleID != nil {
				pairs = append(pairs, ui.KV("Vehicle", strconv.FormatInt(*o.VehicleID, 10)))
			}
			if o.TripID != nil {
				pairs = append(pairs, ui.KV("Trip", strconv.FormatInt(*o.TripID, 10)))
			}
			if o.Notes != "" {
				pairs = append(pairs, ui.KV("Notes", o.Notes))
			}
			fmt.Print(ui.KeyValues(pairs...))
			return nil
		},
	}
}
