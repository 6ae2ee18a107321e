package loads

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
		Short: "Show one load",
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

			l, err := client.Loads.Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			pairs := []ui.Pair{
				ui.KV("Reference", ui.Bold(l.Reference)),
				ui.KV("Status", string(l.Status)),
				ui.KV("Order", strconv.FormatInt(l.TransportOrderID, 10)),
				ui.KV("Description", l.Description),
				ui.KV("Quantity", strconv.Itoa(l.Quantity)),
				ui.KV("Weight", fmt.Sprintf("%.0f kg", l.WeightKg)),
				ui.KV("Volume", fmt.Sprintf("%.1f m³", l.VolumeM3)),
			}
			if l.TripID != nil {
				pairs = append(pairs, ui.KV("Trip", strconv.FormatInt(*l.TripID, 10)))
			}
			fmt.Print(ui.KeyValues(pairs...))
			return nil
		},
	}
}
