package migration

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"leavesmoke/internal/config"
)

// Table is a history table and the statement that creates it
type Table struct {
	Name string
	DDL  string
}

// Tables lists the history schema in creation order
var Tables = []Table{
	{
		Name: "smoke_runs",
		DDL: `CREATE TABLE IF NOT EXISTS smoke_runs (
	run_id VARCHAR(36) NOT NULL PRIMARY KEY,
	base_url VARCHAR(255) NOT NULL,
	total_cases INT NOT NULL,
	passed_cases INT NOT NULL,
	failed_cases INT NOT NULL,
	network_errors INT NOT NULL DEFAULT 0,
	token_acquired BOOLEAN NOT NULL DEFAULT FALSE,
	duration_ms BIGINT NOT NULL,
	started_at DATETIME NOT NULL,
	INDEX idx_smoke_runs_started_at (started_at)
)`,
	},
	{
		Name: "smoke_case_results",
		DDL: `CREATE TABLE IF NOT EXISTS smoke_case_results (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	run_id VARCHAR(36) NOT NULL,
	position INT NOT NULL,
	name VARCHAR(255) NOT NULL,
	method VARCHAR(8) NOT NULL,
	path VARCHAR(255) NOT NULL,
	status INT NOT NULL,
	outcome VARCHAR(16) NOT NULL,
	message TEXT,
	duration_ms BIGINT NOT NULL,
	trace_id VARCHAR(32),
	CONSTRAINT fk_smoke_case_results_run FOREIGN KEY (run_id) REFERENCES smoke_runs (run_id) ON DELETE CASCADE
)`,
	},
}

// SchemaMigrator creates the history database and its tables
type SchemaMigrator struct {
	config          *config.Config
	databaseManager *DatabaseManager
	out             io.Writer
}

// NewSchemaMigrator creates a new SchemaMigrator
func NewSchemaMigrator(cfg *config.Config, dbManager *DatabaseManager) *SchemaMigrator {
	return &SchemaMigrator{
		config:          cfg,
		databaseManager: dbManager,
		out:             os.Stderr,
	}
}

// SetOutput redirects the progress bar
func (sm *SchemaMigrator) SetOutput(w io.Writer) {
	sm.out = w
}

// Run ensures the database exists and applies every table statement
func (sm *SchemaMigrator) Run(ctx context.Context) error {
	color.Cyan("\n╔════════════════════════════════════════════════════════════╗")
	color.Cyan("║               Running Database Migrations                  ║")
	color.Cyan("╚════════════════════════════════════════════════════════════╝\n")

	startTime := time.Now()

	created, err := sm.databaseManager.EnsureDatabase(ctx)
	if err != nil {
		return fmt.Errorf("failed to check database: %w", err)
	}
	if created {
		color.White("Created database %s\n", sm.config.Database.Name)
	}

	db, err := sm.databaseManager.Connect(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	total := len(Tables)
	color.White("Database: %s | Tables: %d\n\n", sm.config.Database.Name, total)

	bar := progressbar.NewOptions(total,
		progressbar.OptionSetDescription(
			color.CyanString("Migrating: ")+
				color.GreenString("[completed: 0/%d]", total),
		),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(sm.out),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(sm.out, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)

	for i, table := range Tables {
		if _, err := db.ExecContext(ctx, table.DDL); err != nil {
			_ = bar.Exit()
			color.Red("✗ Migration failed at table %s: %v\n", table.Name, err)
			return fmt.Errorf("create table %s: %w", table.Name, err)
		}
		_ = bar.Set(i + 1)
		bar.Describe(color.CyanString("Migrating: ") +
			color.GreenString("[completed: %d/%d]", i+1, total))
	}
	_ = bar.Finish()

	fmt.Print("\n")
	color.Green("✓ Migrations completed successfully for %s\n", sm.config.Database.Name)
	color.White("Duration: %s\n", time.Since(startTime).Round(time.Millisecond))
	return nil
}
