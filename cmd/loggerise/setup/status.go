package setupcmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Futurecode-Software/loggerise-go"
	"github.com/Futurecode-Software/loggerise-go/cmd/loggerise/cmdutil"
	"github.com/Futurecode-Software/loggerise-go/cmd/loggerise/ui"
)

func statusCmd(profile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the provisioning state once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := cmdutil.Client(*profile)
			if err != nil {
				return err
			}
			defer client.Close()

			st, err := client.SetupStatus(cmd.Context())
			if errors.Is(err, loggerise.ErrNotAuthenticated) || loggerise.IsUnauthorized(err) {
				return errors.New(`not signed in; run "loggerise login"`)
			}
			if err != nil {
				return err
			}

			pairs := []ui.Pair{
				ui.KV("State", stateCell(st.State)),
			}
			if st.Message != "" {
				pairs = append(pairs, ui.KV("Message", st.Message))
			}
			if st.EstimatedTime != "" {
				pairs = append(pairs, ui.KV("Estimate", st.EstimatedTime))
			}
			if st.Reason != "" {
				pairs = append(pairs, ui.KV("Reason", st.Reason))
			}
			fmt.Print(ui.KeyValues(pairs...))

			if st.State == loggerise.SetupStateSettingUp {
				fmt.Println(ui.InfoMsg("Follow provisioning with %s.", ui.Bold("loggerise setup watch")))
			}
			return nil
		},
	}
}

func stateCell(s loggerise.SetupState) string {
	switch s {
	case loggerise.SetupStateActive:
		return ui.Success(s.String())
	case loggerise.SetupStateFailed:
		return ui.ErrorStyle.Render(s.String())
	default:
		return ui.WarnStyle.Render(s.String())
	}
}
