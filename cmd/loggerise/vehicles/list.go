package vehicles

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
		flags        cmdutil.ListFlags
		vehicleType  string
		activeOnly   bool
		inactiveOnly bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List vehicles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if activeOnly && inactiveOnly {
				return fmt.Errorf("--active and --inactive are mutually exclusive")
			}

			client, err := cmdutil.Client(*profile)
			if err != nil {
				return err
			}
			defer client.Close()

			params := loggerise.VehicleListParams{
				ListParams: flags.Params(),
				Type:       loggerise.VehicleType(vehicleType),
			}
			if activeOnly {
				t := true
				params.Active = &t
			}
			if inactiveOnly {
				f := false
				params.Active = &f
			}

			page, err := client.Vehicles.List(cmd.Context(), params)
			if err != nil {
				return err
			}

			if len(page.Data) == 0 {
				fmt.Println(ui.InfoMsg("No vehicles found."))
				return nil
			}

			rows := make([][]string, 0, len(page.Data))
			for _, v := range page.Data {
				rows = append(rows, []string{
					strconv.FormatInt(v.ID, 10),
					v.Registration,
					string(v.Type),
					fmt.Sprintf("%s %s", v.Make, v.Model),
					fmt.Sprintf("%.0f kg", v.CapacityKg),
					ui.Bool(v.Active),
				})
			}
			fmt.Println(ui.Table([]string{"ID", "REGISTRATION", "TYPE", "MODEL", "CAPACITY", "ACTIVE"}, rows))
			if footer := cmdutil.Pagination(page.Meta); footer != "" {
				fmt.Println(footer)
			}
			return nil
		},
	}

	flags.Bind(cmd)
	cmd.Flags().StringVar(&vehicleType, "type", "", "Filter by type (tractor, trailer, rigid, van)")
	cmd.Flags().BoolVar(&activeOnly, "active", false, "Only active vehicles")
	cmd.Flags().BoolVar(&inactiveOnly, "inactive", false, "Only inactive vehicles")
	return cmd
}
