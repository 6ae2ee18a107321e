package orders

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Futurecode-Software/loggerise-go/cmd/loggerise/cmdutil"
	"github.com/Futurecode-Software/loggerise-go/cmd/loggerise/ui"
)

func cancelCmd(profile *string) *cobra.Command {
	var (
		reason string
		yes    bool
	)

	cmd := &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel a transport order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cmdutil.ParseID(args[0])
			if err != nil {
				return err
			}

			if !yes {
				confirmed, err := ui.Confirm(
					fmt.Sprintf("Cancel transport order %s?", ui.Bold(args[0])),
					"use --yes to skip",
				)
				if err != nil {
					return err
				}
				if !confirmed {
					return nil
				}
			}

			client, err := cmdutil.Client(*profile)
			if err != nil {
				return err
			}
			defer client.Close()

			o, err := client.TransportOrders.Cancel(cmd.Context(), id, reason)
			if err != nil {
				return err
			}

			fmt.Println(ui.SuccessMsg("Order %s cancelled.", ui.Bold(o.Reference)))
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Cancellation reason shown to the customer")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation prompt")
	return cmd
}
