package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"leavesmoke/internal/config"
	"leavesmoke/internal/domain"
	"leavesmoke/internal/execution"
	"leavesmoke/internal/parser"
	"leavesmoke/internal/report"
	"leavesmoke/internal/session"
	"leavesmoke/internal/storage"
	"leavesmoke/internal/ui"
)

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	cases     *caseLoader
	executor  *execution.Sequence
	parser    parser.Parser
	storage   storage.Storage
	history   *HistoryCommand
	formatter *ui.Formatter
	viewer    ui.Viewer
	logger    *zap.Logger
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	cases *caseLoader,
	executor *execution.Sequence,
	parser parser.Parser,
	st storage.Storage,
	history *HistoryCommand,
	formatter *ui.Formatter,
	viewer ui.Viewer,
	logger *zap.Logger,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		cases:     cases,
		executor:  executor,
		parser:    parser,
		storage:   st,
		history:   history,
		formatter: formatter,
		viewer:    viewer,
		logger:    logger,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	cases, err := rc.cases.Load()
	if err != nil {
		return err
	}

	if len(cases) == 0 {
		color.Yellow("No cases to execute")
		return nil
	}

	ctx, stop := signal.NotifyContext(runContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runID := uuid.NewString()
	color.Cyan("Running %d case(s) against %s (run %s)\n\n", len(cases), rc.config.GetBaseURL(), runID)

	sess := session.New()

	var progressBar *ui.ProgressBar
	if !rc.config.Flags.NoProgress {
		progressBar = ui.NewProgressBar(len(cases))
		rc.executor.SetProgress(progressBar)
	}
	rc.executor.SetObserver(rc.formatter.NewConsole(sess, progressBar))

	results, duration, err := rc.executor.Execute(ctx, cases, sess)
	if err != nil {
		return err
	}

	meta := domain.NewRunMeta(runID, rc.config.GetBaseURL(), results, sess.HasToken(), duration)

	var failures []domain.CaseFailure
	for _, result := range results {
		if !result.Success {
			failures = append(failures, rc.parser.ParseFailure(result))
		}
	}

	if err := rc.storage.Save(meta, failures); err != nil {
		return fmt.Errorf("failed to save run report: %w", err)
	}

	if path := rc.config.Flags.ExcelReport; path != "" {
		if err := report.WriteWorkbook(path, meta, results); err != nil {
			return fmt.Errorf("failed to write workbook report: %w", err)
		}
		color.White("Workbook report written to %s\n", path)
	}

	// archiving is best effort; the JSON report is already written
	if rc.config.Flags.Record {
		if err := rc.history.Record(ctx, meta, results); err != nil {
			rc.logger.Warn("run not archived", zap.String("run_id", runID), zap.Error(err))
			color.Yellow("Run not archived: %v\n", err)
		}
	}

	if err := rc.formatter.PrintMetaStats(); err != nil {
		return err
	}

	if rc.config.Flags.OpenFaills && len(failures) > 0 {
		output, err := rc.storage.Load()
		if err != nil {
			return err
		}
		return rc.viewer.View(output)
	}
	return nil
}

// runContext is the parent context of a run when cobra has none
func runContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
