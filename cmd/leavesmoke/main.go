package main

import (
	"fmt"
	"os"

	"leavesmoke/internal/cli"
	"leavesmoke/internal/cli/commands"
	"leavesmoke/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:     "leavesmoke",
		Short:   "Smoke tests for the college leave-management API",
		Long:    `Runs an ordered suite of HTTP calls against the leave-management API, logs in once to obtain a session token, and reports the outcome of every call.`,
		Version: version,
	}

	// Defaults, then .env and SMOKE_*/DB_* variables; flags are applied per command
	cfg := config.New()
	cfg.ApplyEnv()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
