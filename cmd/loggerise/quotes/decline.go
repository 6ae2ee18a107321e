package quotes

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Futurecode-Software/loggerise-go/cmd/loggerise/cmdutil"
	"github.com/Futurecode-Software/loggerise-go/cmd/loggerise/ui"
)

func declineCmd(profile *string) *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "decline <id>",
		Short: "Decline a quote",
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

			q, err := client.Quotes.Decline(cmd.Context(), id, reason)
			if err != nil {
				return err
			}

			fmt.Println(ui.SuccessMsg("Quote %s declined.", q.Number))
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Reason passed along to the customer")
	return cmd
}
