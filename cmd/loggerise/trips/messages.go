package trips

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Futurecode-Software/loggerise-go"
	"github.com/Futurecode-Software/loggerise-go/cmd/loggerise/cmdutil"
	"github.com/Futurecode-Software/loggerise-go/cmd/loggerise/ui"
)

func messagesCmd(profile *string) *cobra.Command {
	var flags cmdutil.ListFlags

	cmd := &cobra.Command{
		Use:   "messages <id>",
		Short: "Show a trip's message thread",
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

			page, err := client.Trips.Messages(cmd.Context(), id, flags.Params())
			if err != nil {
				return err
			}

			if len(page.Data) == 0 {
				fmt.Println(ui.InfoMsg("No messages yet."))
				return nil
			}

			for _, m := range page.Data {
				fmt.Println(printMessage(m))
			}
			if footer := cmdutil.Pagination(page.Meta); footer != "" {
				fmt.Println(footer)
			}
			return nil
		},
	}

	flags.Bind(cmd)
	return cmd
}

// printMessage renders one thread entry as "time author: body".
func printMessage(m loggerise.Message) string {
	return fmt.Sprintf("%s %s %s",
		ui.Muted(cmdutil.FormatTime(m.SentAt)),
		ui.Bold(m.AuthorName+":"),
		m.Body,
	)
}
