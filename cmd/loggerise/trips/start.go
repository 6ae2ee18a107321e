package trips

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Futurecode-Software/loggerise-go/cmd/loggerise/cmdutil"
	"github.com/Futurecode-Software/loggerise-go/cmd/loggerise/ui"
)

func startCmd(profile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start <id>",
		Short: "Start a planned trip",
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

			t, err := client.Trips.Start(cmd.Context(), id)
			if err != nil {
				return err
			}

			fmt.Println(ui.SuccessMsg("Trip %s is now %s.", ui.Bold(t.Reference), t.Status))
			return nil
		},
	}
}
