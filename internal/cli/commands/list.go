package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"leavesmoke/internal/config"
	"leavesmoke/internal/storage"
	"leavesmoke/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	cases     *caseLoader
	formatter *ui.Formatter
	storage   storage.Storage
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	cases *caseLoader,
	formatter *ui.Formatter,
	st storage.Storage,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		cases:     cases,
		formatter: formatter,
		storage:   st,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	cases, err := lc.cases.Load()
	if err != nil {
		return err
	}

	if len(cases) == 0 {
		color.Yellow("No cases found")
		return nil
	}

	lc.formatter.PrintCaseList(cases, lc.failedInLastRun())
	return nil
}

// failedInLastRun returns unresolved failures of the last run by case name
func (lc *ListCommand) failedInLastRun() map[string]struct{} {
	output, err := lc.storage.Load()
	if err != nil {
		return nil
	}
	failed := make(map[string]struct{}, len(output.Details))
	for _, f := range output.Details {
		if !f.Resolved {
			failed[f.CaseName] = struct{}{}
		}
	}
	return failed
}
