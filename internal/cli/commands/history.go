package commands

import (
	"context"

	"github.com/spf13/cobra"

	"leavesmoke/internal/config"
	"leavesmoke/internal/domain"
	"leavesmoke/internal/migration"
	"leavesmoke/internal/storage"
	"leavesmoke/internal/ui"
)

// HistoryCommand handles the history command and archives runs for run --record
type HistoryCommand struct {
	config    *config.Config
	dbManager *migration.DatabaseManager
	formatter *ui.Formatter
}

// NewHistoryCommand creates a new HistoryCommand
func NewHistoryCommand(cfg *config.Config, dbManager *migration.DatabaseManager, formatter *ui.Formatter) *HistoryCommand {
	return &HistoryCommand{
		config:    cfg,
		dbManager: dbManager,
		formatter: formatter,
	}
}

func (hc *HistoryCommand) open(ctx context.Context) (*storage.HistoryStore, error) {
	db, err := hc.dbManager.Connect(ctx)
	if err != nil {
		return nil, err
	}
	return storage.NewHistoryStore(db), nil
}

// Record archives a finished run
func (hc *HistoryCommand) Record(ctx context.Context, meta domain.RunMeta, results []domain.CaseResult) error {
	store, err := hc.open(ctx)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Record(ctx, meta, results)
}

// Execute runs the command
func (hc *HistoryCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := runContext(cmd)
	store, err := hc.open(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.Recent(ctx, hc.config.GetHistoryLimit())
	if err != nil {
		return err
	}
	hc.formatter.PrintHistory(records)
	return nil
}
