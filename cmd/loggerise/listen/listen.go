// Package listen tails realtime events from a trip or tenant channel.
package listen

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Futurecode-Software/loggerise-go"
	"github.com/Futurecode-Software/loggerise-go/cmd/loggerise/cmdutil"
	"github.com/Futurecode-Software/loggerise-go/cmd/loggerise/ui"
	"github.com/Futurecode-Software/loggerise-go/realtime"
)

// Cmd returns the listen command.
func Cmd(profile *string) *cobra.Command {
	var (
		tripID   int64
		tenantID int64
	)

	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Stream realtime events to the terminal",
		Long: `Stream realtime events to the terminal.

Subscribes to a trip's message thread (--trip) or to the tenant-wide
event channel (--tenant) and prints events as they arrive, one per
line, until interrupted. Requires a profile with realtime-host and
realtime-key set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if (tripID == 0) == (tenantID == 0) {
				return errors.New("pass exactly one of --trip or --tenant")
			}

			client, err := cmdutil.Client(*profile)
			if err != nil {
				return err
			}
			defer client.Close()

			conn, err := client.DialRealtime(cmd.Context())
			if err != nil {
				if errors.Is(err, loggerise.ErrNotAuthenticated) {
					return errors.New(`not signed in; run "loggerise login"`)
				}
				return err
			}
			defer conn.Close()

			name := loggerise.TenantChannel(tenantID)
			if tripID != 0 {
				name = loggerise.TripChannel(tripID)
			}
			ch, err := conn.Subscribe(cmd.Context(), name)
			if err != nil {
				return err
			}

			select {
			case <-ch.Subscribed():
			case <-conn.Done():
				return conn.Err()
			case <-cmd.Context().Done():
				return nil
			}
			fmt.Fprintln(os.Stderr, ui.InfoMsg("Listening on %s; press Ctrl-C to stop.", name))

			events := ch.BindAll()
			for {
				select {
				case ev, ok := <-events:
					if !ok {
						return conn.Err()
					}
					printEvent(ev)
				case <-conn.Done():
					return conn.Err()
				case <-cmd.Context().Done():
					return nil
				}
			}
		},
	}

	cmd.Flags().Int64Var(&tripID, "trip", 0, "Trip id to follow")
	cmd.Flags().Int64Var(&tenantID, "tenant", 0, "Tenant id to follow")
	return cmd
}

// printEvent writes one event line to stdout. Trip messages get their
// author and body pulled out; anything else prints name and raw payload.
func printEvent(ev realtime.Event) {
	stamp := ui.Muted(time.Now().Local().Format("2006-01-02 15:04:05"))
	if ev.Name == loggerise.EventMessageCreated {
		if msg, err := loggerise.ParseMessageEvent(ev); err == nil {
			fmt.Printf("%s %s %s\n", stamp, ui.Bold(msg.AuthorName+":"), msg.Body)
			return
		}
	}
	fmt.Printf("%s %s %s\n", stamp, ui.Bold(ev.Name), string(ev.Data))
}
