package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"leavesmoke/internal/domain"
	"leavesmoke/internal/session"
	"leavesmoke/internal/storage"
)

// Formatter formats and displays output
type Formatter struct {
	storage storage.Storage
	out     io.Writer
}

// NewFormatter creates a new Formatter
func NewFormatter(st storage.Storage) *Formatter {
	return &Formatter{
		storage: st,
		out:     color.Output,
	}
}

// SetOutput redirects everything the formatter prints
func (f *Formatter) SetOutput(w io.Writer) {
	f.out = w
}

// Console prints one block per case while a run is in progress
type Console struct {
	out      io.Writer
	session  *session.Session
	progress *ProgressBar
}

// NewConsole creates a per-case printer. The session is used to describe
// the logged-in user after a login case stores its token.
func (f *Formatter) NewConsole(sess *session.Session, progress *ProgressBar) *Console {
	return &Console{out: f.out, session: sess, progress: progress}
}

// CaseStarted is a no-op; output is written once the response is known
func (c *Console) CaseStarted(index, total int, tc domain.TestCase) {}

// CaseFinished prints the case outcome: the payload verbatim on success,
// the status and server message otherwise
func (c *Console) CaseFinished(r domain.CaseResult) {
	if c.progress != nil {
		c.progress.Clear()
	}

	header := fmt.Sprintf("[%d] %s %s %s", r.Index, r.Method, r.Path, color.New(color.Faint).Sprintf("(%s)", r.Name))

	switch r.Outcome {
	case domain.OutcomeOK:
		fmt.Fprintf(c.out, "%s %s %s\n", color.GreenString("✓"), header, color.GreenString("%d", r.Status))
		if r.TokenStored {
			fmt.Fprintf(c.out, "  %s\n", color.CyanString("token stored"))
			if c.session != nil {
				if claims, err := c.session.Describe(); err == nil {
					fmt.Fprintf(c.out, "  %s %s\n", color.CyanString("logged in as"), claims)
				}
			}
		} else if r.Body != "" {
			fmt.Fprintf(c.out, "  %s\n", indent(r.Body))
		}
	case domain.OutcomeNetworkError:
		fmt.Fprintf(c.out, "%s %s %s\n", color.RedString("✗"), header, color.RedString("network error"))
		fmt.Fprintf(c.out, "  %s\n", color.RedString(r.Message))
	default:
		fmt.Fprintf(c.out, "%s %s %s\n", color.RedString("✗"), header, color.RedString("%d", r.Status))
		if r.Message != "" {
			fmt.Fprintf(c.out, "  %s\n", color.YellowString(r.Message))
		}
	}
}

func indent(s string) string {
	return strings.ReplaceAll(strings.TrimRight(s, "\n"), "\n", "\n  ")
}

// PrintMetaStats reads and displays meta statistics from the JSON report
func (f *Formatter) PrintMetaStats() error {
	output, err := f.storage.Load()
	if err != nil {
		return fmt.Errorf("failed to load report: %w", err)
	}
	meta := output.Meta

	fmt.Fprint(f.out, "\n")
	fmt.Fprintln(f.out, color.CyanString("╔═══════════════════════════════════════════════════════════════╗"))
	fmt.Fprintln(f.out, color.CyanString("║                    Smoke Run Statistics                       ║"))
	fmt.Fprintln(f.out, color.CyanString("╚═══════════════════════════════════════════════════════════════╝"))
	fmt.Fprint(f.out, "\n")

	const sep = "├─────────────────────────────────┼─────────────────────────────┤"
	row := func(label, value string, paint func(format string, a ...interface{}) string) {
		fmt.Fprintf(f.out, "│ %-31s │ %s │\n", label, paint("%-27s", value))
	}

	fmt.Fprintln(f.out, "┌─────────────────────────────────┬─────────────────────────────┐")
	row("Base URL", meta.BaseURL, color.WhiteString)
	fmt.Fprintln(f.out, sep)
	row("Total Cases", fmt.Sprint(meta.TotalCases), color.WhiteString)
	fmt.Fprintln(f.out, sep)
	row("Passed Cases", fmt.Sprint(meta.PassedCases), color.GreenString)
	fmt.Fprintln(f.out, sep)
	row("Failed Cases", fmt.Sprint(meta.FailedCases), color.RedString)
	fmt.Fprintln(f.out, sep)
	row("Network Errors", fmt.Sprint(meta.NetworkErrors), color.RedString)
	fmt.Fprintln(f.out, sep)
	row("Token Acquired", yesNo(meta.TokenAcquired), color.WhiteString)
	fmt.Fprintln(f.out, sep)
	row("Duration", fmt.Sprintf("%.2fs", meta.DurationSeconds), color.WhiteString)
	fmt.Fprintln(f.out, sep)
	row("Timestamp", meta.Timestamp, color.WhiteString)
	fmt.Fprintln(f.out, "└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Fprintln(f.out)
	if meta.FailedCases == 0 {
		fmt.Fprintln(f.out, color.GreenString("✓ All cases passed!"))
		return nil
	}

	fmt.Fprintln(f.out, color.RedString("✗ %d case(s) failed", meta.FailedCases))
	for i, failure := range output.Details {
		connector := "├──"
		if i == len(output.Details)-1 {
			connector = "└──"
		}
		status := fmt.Sprint(failure.Status)
		if failure.Outcome == domain.OutcomeNetworkError {
			status = "network error"
		}
		fmt.Fprintf(f.out, "%s %s %s\n", connector, color.YellowString("%s %s", failure.Method, failure.Path), color.RedString(status))
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// PrintCaseList prints the cases that would run in order.
// failed is optional; names in it are marked with [F] in red (from last run).
func (f *Formatter) PrintCaseList(cases []domain.TestCase, failed map[string]struct{}) {
	fmt.Fprintln(f.out, color.GreenString("Found %d case(s):", len(cases)))
	fmt.Fprintln(f.out)

	for i, tc := range cases {
		connector := "├──"
		if i == len(cases)-1 {
			connector = "└──"
		}

		failMarker := ""
		if _, ok := failed[tc.Name]; ok {
			failMarker = " " + color.RedString("[F]")
		}

		auth := string(tc.Auth)
		if tc.Login {
			auth = "login"
		}
		fmt.Fprintf(f.out, "%s %s %s %s%s\n",
			connector,
			color.CyanString("%-4s", tc.Method),
			tc.Path,
			color.YellowString("[%s] %s", auth, tc.Name),
			failMarker,
		)
	}
}

// PrintHistory prints archived runs, newest first
func (f *Formatter) PrintHistory(records []domain.RunRecord) {
	if len(records) == 0 {
		fmt.Fprintln(f.out, color.YellowString("No archived runs."))
		return
	}

	fmt.Fprintf(f.out, "%-36s  %-20s  %5s  %6s  %6s  %5s  %8s\n", "RUN", "STARTED", "TOTAL", "PASSED", "FAILED", "TOKEN", "DURATION")
	for _, r := range records {
		failed := fmt.Sprintf("%6d", r.FailedCases)
		if r.FailedCases > 0 {
			failed = color.RedString(failed)
		}
		fmt.Fprintf(f.out, "%-36s  %-20s  %5d  %s  %s  %5s  %7dms\n",
			r.RunID,
			r.StartedAt,
			r.TotalCases,
			color.GreenString("%6d", r.PassedCases),
			failed,
			yesNo(r.TokenAcquired),
			r.DurationMs,
		)
	}
}
