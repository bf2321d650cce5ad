package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"leavesmoke/internal/cli"
	"leavesmoke/internal/config"
	"leavesmoke/internal/discovery"
	"leavesmoke/internal/execution"
	"leavesmoke/internal/logging"
	"leavesmoke/internal/migration"
	"leavesmoke/internal/parser"
	"leavesmoke/internal/storage"
	"leavesmoke/internal/suite"
	"leavesmoke/internal/ui"
)

// Commands holds all CLI commands
type Commands struct {
	Run     *RunCommand
	List    *ListCommand
	Migrate *MigrateCommand
	Faills  *FaillsCommand
	History *HistoryCommand

	level zap.AtomicLevel
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	level := logging.NewLevel()
	logger := logging.Must(level)

	caseLoader := newCaseLoader(cfg, discovery.NewScanner(config.DefaultSkipDirs), suite.NewFilter())
	envelopeParser := parser.NewEnvelopeParser()
	runner := execution.NewRunner(cfg, envelopeParser, logger)
	executor := execution.NewSequence(runner)
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(jsonStorage)
	dbManager := migration.NewDatabaseManager(cfg)
	migrator := migration.NewSchemaMigrator(cfg, dbManager)
	errorViewer := ui.NewErrorViewer(jsonStorage)
	history := NewHistoryCommand(cfg, dbManager, formatter)

	return &Commands{
		Run:     NewRunCommand(cfg, caseLoader, executor, envelopeParser, jsonStorage, history, formatter, errorViewer, logger),
		List:    NewListCommand(cfg, caseLoader, formatter, jsonStorage),
		Migrate: NewMigrateCommand(migrator),
		Faills:  NewFaillsCommand(jsonStorage, errorViewer),
		History: history,
		level:   level,
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	applyFlags := func(cmd *cobra.Command, args []string) error {
		// Update config with flags after parsing
		cfg.ApplyFlags(flags.ToConfigFlags())
		logging.SetVerbose(c.level, flags.Verbose)
		return nil
	}

	// Run command
	runCmd := &cobra.Command{
		Use:     "run",
		Short:   "Run the smoke suite against the leave-management API",
		Long:    "Execute every case in order, print each outcome and write the run report",
		RunE:    c.Run.Execute,
		PreRunE: applyFlags,
	}
	runCmd.Flags().StringVarP(&flags.BaseURL, "base-url", "u", "", "Base URL of the API (default "+config.DefaultBaseURL+")")
	runCmd.Flags().StringVar(&flags.Email, "email", "", "Login email for the session token")
	runCmd.Flags().StringVar(&flags.Password, "password", "", "Login password for the session token")
	runCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter cases by name pattern (supports wildcards, e.g., 'leave*' or '*token*')")
	runCmd.Flags().StringVarP(&flags.CasesFile, "cases", "c", "", "Load cases from an xlsx workbook, or a directory of workbooks, instead of the built-in suite")
	runCmd.Flags().StringVar(&flags.Sheet, "sheet", "", "Workbook sheet holding the cases (default "+config.DefaultCaseSheet+")")
	runCmd.Flags().DurationVar(&flags.Timeout, "timeout", 0, "Per-request timeout (default "+config.DefaultRequestTimeout.String()+")")
	runCmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Log every request and response")
	runCmd.Flags().BoolVar(&flags.NoProgress, "no-progress", false, "Disable the progress bar")
	runCmd.Flags().StringVar(&flags.ExcelReport, "xlsx", "", "Also export the run to this xlsx file")
	runCmd.Flags().BoolVar(&flags.Record, "record", false, "Archive the run in the MySQL history database")
	runCmd.Flags().BoolVar(&flags.OpenFaills, "open-faills", false, "Open the faills viewer when the run finishes with failures")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List the cases that would run",
		Long:    "Print the ordered cases after filtering, marking those that failed in the last run",
		RunE:    c.List.Execute,
		PreRunE: applyFlags,
	}
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter cases by name pattern (supports wildcards, e.g., 'leave*' or '*token*')")
	listCmd.Flags().StringVarP(&flags.CasesFile, "cases", "c", "", "Load cases from an xlsx workbook, or a directory of workbooks, instead of the built-in suite")
	listCmd.Flags().StringVar(&flags.Sheet, "sheet", "", "Workbook sheet holding the cases (default "+config.DefaultCaseSheet+")")
	rootCmd.AddCommand(listCmd)

	// Migrate command
	migrateCmd := &cobra.Command{
		Use:     "migrate",
		Short:   "Create the run history database",
		Long:    "Create the MySQL history database and its tables if they do not exist",
		RunE:    c.Migrate.Execute,
		PreRunE: applyFlags,
	}
	rootCmd.AddCommand(migrateCmd)

	// History command
	historyCmd := &cobra.Command{
		Use:     "history",
		Short:   "Show archived runs",
		Long:    "Print the most recent runs recorded with run --record",
		RunE:    c.History.Execute,
		PreRunE: applyFlags,
	}
	historyCmd.Flags().IntVarP(&flags.Limit, "limit", "n", config.DefaultHistoryLimit, "Number of runs to show")
	rootCmd.AddCommand(historyCmd)

	// Faills command
	faillsCmd := &cobra.Command{
		Use:   "faills",
		Short: "View case failures interactively",
		Long:  "Display case failures from the last run in an interactive viewer",
		RunE:  c.Faills.Execute,
	}
	rootCmd.AddCommand(faillsCmd)
}
