package commands

import (
	"github.com/spf13/cobra"

	"leavesmoke/internal/storage"
	"leavesmoke/internal/ui"
)

// FaillsCommand handles the faills command
type FaillsCommand struct {
	storage storage.Storage
	viewer  ui.Viewer
}

// NewFaillsCommand creates a new FaillsCommand
func NewFaillsCommand(st storage.Storage, viewer ui.Viewer) *FaillsCommand {
	return &FaillsCommand{
		storage: st,
		viewer:  viewer,
	}
}

// Execute runs the command
func (fc *FaillsCommand) Execute(cmd *cobra.Command, args []string) error {
	output, err := fc.storage.Load()
	if err != nil {
		return err
	}

	return fc.viewer.View(output)
}
