package trips

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Futurecode-Software/loggerise-go/cmd/loggerise/cmdutil"
	"github.com/Futurecode-Software/loggerise-go/cmd/loggerise/ui"
)

func completeCmd(profile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <id>",
		Short: "Complete an en-route trip",
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

			t, err := client.Trips.Complete(cmd.Context(), id)
			if err != nil {
				return err
			}

			fmt.Println(ui.SuccessMsg("Trip %s completed, arrived %s.",
				ui.Bold(t.Reference), cmdutil.FormatTimePtr(t.ArrivalAt)))
			return nil
		},
	}
}
