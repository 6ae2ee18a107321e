package quotes

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Futurecode-Software/loggerise-go/cmd/loggerise/cmdutil"
	"github.com/Futurecode-Software/loggerise-go/cmd/loggerise/ui"
)

func acceptCmd(profile *string) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "accept <id>",
		Short: "Accept a quote and create its transport order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cmdutil.ParseID(args[0])
			if err != nil {
				return err
			}

			if !yes {
				ok, err := ui.Confirm(fmt.Sprintf("Accept quote %d?", id), "use --yes to skip the prompt")
				if err != nil {
					return err
				}
				if !ok {
					return nil
				}
			}

			client, err := cmdutil.Client(*profile)
			if err != nil {
				return err
			}
			defer client.Close()

			acc, err := client.Quotes.Accept(cmd.Context(), id)
			if err != nil {
				return err
			}

			fmt.Println(ui.SuccessMsg("Quote %s accepted.", acc.Quote.Number))
			if acc.TransportOrder.ID != 0 {
				fmt.Println(ui.InfoMsg("Created transport order %s (id %d).", acc.TransportOrder.Reference, acc.TransportOrder.ID))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
