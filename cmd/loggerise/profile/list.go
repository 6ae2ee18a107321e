package profile

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Futurecode-Software/loggerise-go/cmd/loggerise/ui"
	"github.com/Futurecode-Software/loggerise-go/config"
)

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List profiles",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			if len(cfg.Profiles) == 0 {
				fmt.Println(ui.InfoMsg("No profiles configured; add one with %s.", ui.Bold("loggerise profile add")))
				return nil
			}

			names := make([]string, 0, len(cfg.Profiles))
			for name := range cfg.Profiles {
				names = append(names, name)
			}
			sort.Strings(names)

			var rows [][]string
			for _, name := range names {
				p := cfg.Profiles[name]

				current := ""
				if name == cfg.CurrentProfile {
					current = "*"
				}

				realtime := "no"
				if p.RealtimeHost != "" {
					realtime = "yes"
				}

				rows = append(rows, []string{current, name, p.BaseURL, p.Email, realtime})
			}

			fmt.Println(ui.Table([]string{"", "NAME", "BASE URL", "EMAIL", "REALTIME"}, rows))
			return nil
		},
	}
}
