package vehicles

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Futurecode-Software/loggerise-go/cmd/loggerise/cmdutil"
	"github.com/Futurecode-Software/loggerise-go/cmd/loggerise/ui"
)

func getCmd(profile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one vehicle",
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

			v, err := client.Vehicles.Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			fmt.Print(ui.KeyValues(
				ui.KV("Registration", ui.Bold(v.Registration)),
				ui.KV("Type", string(v.Type)),
				ui.KV("Model", fmt.Sprintf("%s %s", v.Make, v.Model)),
				ui.KV("Capacity", fmt.Sprintf("%.0f kg", v.CapacityKg)),
				ui.KV("Active", ui.Bool(v.Active)),
				ui.KV("Added", cmdutil.FormatTime(v.CreatedAt)),
			))
			return nil
		},
	}
}
