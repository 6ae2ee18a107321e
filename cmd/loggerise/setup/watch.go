package setupcmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Futurecode-Software/loggerise-go"
	"github.com/Futurecode-Software/loggerise-go/cmd/loggerise/cmdutil"
	"github.com/Futurecode-Software/loggerise-go/cmd/loggerise/ui"
)

// Exit codes for the terminal outcomes, so scripts can branch on how
// provisioning resolved.
const (
	exitFailed      = 1
	exitTimedOut    = 2
	exitAuthExpired = 3
	exitCancelled   = 130
)

func watchCmd(profile *string) *cobra.Command {
	var (
		interval    time.Duration
		maxAttempts int
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow provisioning until it resolves",
		Long: `Follow tenant provisioning until it resolves.

Polls the setup status and renders the provisioning milestones live.
The exit code reflects the outcome: 0 when the tenant becomes ready,
1 on a provisioning failure, 2 when the attempt ceiling passes without
resolution, 3 when the session's token expired.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := cmdutil.Client(*profile)
			if err != nil {
				return err
			}
			defer client.Close()

			var opts []loggerise.SetupOption
			if interval > 0 {
				opts = append(opts, loggerise.WithPollInterval(interval))
			}
			if maxAttempts > 0 {
				opts = append(opts, loggerise.WithMaxAttempts(maxAttempts))
			}

			watcher, err := client.WatchSetup(opts...)
			if errors.Is(err, loggerise.ErrNotAuthenticated) {
				return errors.New(`not signed in; run "loggerise login"`)
			}
			if err != nil {
				return err
			}

			watcher.Start(cmd.Context())
			defer watcher.Stop()

			if ui.IsInteractive() {
				watchLive(watcher)
			} else {
				watchPlain(watcher)
			}

			if cmd.Context().Err() != nil {
				fmt.Println(ui.WarnMsg("Watch cancelled; provisioning continues server-side."))
				return cmdutil.Exit(exitCancelled)
			}
			return finish(watcher.Result())
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 0, "Poll interval (default 5s)")
	cmd.Flags().IntVar(&maxAttempts, "max-attempts", 0, "Polls before giving up (default 60)")
	return cmd
}

// watchLive renders the milestone checklist in place, with a spinner on
// the milestone in progress.
func watchLive(w *loggerise.SetupWatcher) {
	list := ui.NewChecklist()
	defer list.Close()

	for u := range w.Updates() {
		list.Update(checklistSteps(u), note(u))
	}
}

// watchPlain logs one line per poll, for pipes and CI.
func watchPlain(w *loggerise.SetupWatcher) {
	for u := range w.Updates() {
		line := fmt.Sprintf("attempt %d: %s", u.Attempt, u.State)
		if u.Message != "" {
			line += " - " + u.Message
		}
		fmt.Println(line)
	}
}

// finish prints the resolution and maps it to the process exit code.
func finish(result loggerise.SetupResult) error {
	switch result.Outcome {
	case loggerise.SetupReady:
		fmt.Println(ui.SuccessMsg("%s", result.Message))
		return nil
	case loggerise.SetupFailed:
		fmt.Println(ui.ErrorMsg("%s", result.Message))
		return cmdutil.Exit(exitFailed)
	case loggerise.SetupTimedOut:
		fmt.Println(ui.WarnMsg("%s", result.Message))
		return cmdutil.Exit(exitTimedOut)
	case loggerise.SetupAuthExpired:
		fmt.Println(ui.ErrorMsg("%s", result.Message))
		fmt.Println(ui.InfoMsg("Sign in again with %s.", ui.Bold("loggerise login")))
		return cmdutil.Exit(exitAuthExpired)
	default:
		return nil
	}
}

// checklistSteps converts a progress update into checklist entries. On a
// terminal update that is not ready, the milestone that was in progress
// renders as failed.
func checklistSteps(u loggerise.SetupUpdate) []ui.Step {
	failed := u.Terminal && u.Outcome != loggerise.SetupReady
	steps := make([]ui.Step, len(u.Steps))
	for i, s := range u.Steps {
		state := ui.StepPending
		switch {
		case s.Completed:
			state = ui.StepDone
		case s.Current:
			state = ui.StepActive
		case failed:
			state = ui.StepFailed
			failed = false // only the first incomplete milestone
		}
		steps[i] = ui.Step{Title: s.Name, State: state}
	}
	return steps
}

func note(u loggerise.SetupUpdate) string {
	if u.Terminal {
		return ""
	}
	n := u.Message
	if u.EstimatedTime != "" {
		if n != "" {
			n += ", "
		}
		n += "about " + u.EstimatedTime
	}
	return n
}
