// Package cmdutil holds the glue shared by loggerise CLI commands:
// profile resolution, client construction, and output formatting.
package cmdutil

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/Futurecode-Software/loggerise-go"
	"github.com/Futurecode-Software/loggerise-go/cmd/loggerise/ui"
	"github.com/Futurecode-Software/loggerise-go/config"
)

// EnvProfile selects the profile when --profile is not given.
const EnvProfile = "LOGGERISE_PROFILE"

// ResolveProfile picks the profile to operate on: the --profile flag
// first, then the LOGGERISE_PROFILE environment variable, then the
// config file's current-profile.
func ResolveProfile(flagValue string) (string, config.Profile, error) {
	f, err := config.Load()
	if err != nil {
		return "", config.Profile{}, err
	}

	name := flagValue
	if name == "" {
		name = os.Getenv(EnvProfile)
	}
	if name == "" {
		current, p, ok := f.Current()
		if !ok {
			return "", config.Profile{}, errors.New(`no profile selected; run "loggerise profile add" or pass --profile`)
		}
		return current, p, nil
	}

	p, ok := f.Profiles[name]
	if !ok {
		return "", config.Profile{}, fmt.Errorf("profile %q not found", name)
	}
	return name, p, nil
}

// Client builds an SDK client for the selected profile. Tokens are
// stored back into the profile, so a login from one invocation carries
// into the next.
func Client(profileFlag string) (*loggerise.Client, error) {
	name, p, err := ResolveProfile(profileFlag)
	if err != nil {
		return nil, err
	}
	store, err := config.NewTokenStore(name)
	if err != nil {
		return nil, err
	}
	return config.BuildClient(p, loggerise.WithTokenStore(store))
}

// ExitError carries a specific process exit code out of a command. The
// message may be empty when the command has already reported the
// failure itself.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string { return e.Message }

// Exit returns an ExitError with code and no message.
func Exit(code int) error {
	return &ExitError{Code: code}
}

// ListFlags binds the pagination and filter flags shared by every list
// command.
type ListFlags struct {
	Page    int
	PerPage int
	Search  string
	Sort    string
}

// Bind registers the shared flags on cmd.
func (f *ListFlags) Bind(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.Page, "page", 0, "Page to fetch (1-based)")
	cmd.Flags().IntVar(&f.PerPage, "per-page", 0, "Results per page")
	cmd.Flags().StringVar(&f.Search, "search", "", "Free-text search filter")
	cmd.Flags().StringVar(&f.Sort, "sort", "", `Sort column, "-" prefix for descending`)
}

// Params converts the bound flags into SDK list parameters.
func (f *ListFlags) Params() loggerise.ListParams {
	return loggerise.ListParams{
		Page:    f.Page,
		PerPage: f.PerPage,
		Search:  f.Search,
		Sort:    f.Sort,
	}
}

// ParseID parses a positional id argument.
func ParseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

// Pagination renders the "page x of y" footer under a listing, or ""
// for single-page results.
func Pagination(meta loggerise.PageMeta) string {
	if meta.LastPage <= 1 {
		return ""
	}
	return ui.Muted(fmt.Sprintf("page %d of %d, %d total", meta.CurrentPage, meta.LastPage, meta.Total))
}

// FormatTime renders a timestamp for table cells, local time to the
// minute.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

// FormatTimePtr is FormatTime for optional timestamps.
func FormatTimePtr(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return FormatTime(*t)
}

// Money renders a decimal amount with its currency code, e.g.
// "EUR 1250.00". Amounts stay strings end to end.
func Money(currency, amount string) string {
	if amount == "" {
		return "-"
	}
	if currency == "" {
		return amount
	}
	return currency + " " + amount
}

// OrDash substitutes "-" for empty table cells.
func OrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
