package trips

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Futurecode-Software/loggerise-go/cmd/loggerise/cmdutil"
	"github.com/Futurecode-Software/loggerise-go/cmd/loggerise/ui"
)

func sendCmd(profile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "send <id> <message...>",
		Short: "Send a message to a trip's thread",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cmdutil.ParseID(args[0])
			if err != nil {
				return err
			}
			body := strings.Join(args[1:], " ")

			client, err := cmdutil.Client(*profile)
			if err != nil {
				return err
			}
			defer client.Close()

			m, err := client.Trips.SendMessage(cmd.Context(), id, body)
			if err != nil {
				return err
			}

			fmt.Println(ui.SuccessMsg("Sent to trip %d at %s.", m.TripID, cmdutil.FormatTime(m.SentAt)))
			return nil
		},
	}
}
