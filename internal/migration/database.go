package migration

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"

	"leavesmoke/internal/config"
)

// Opener opens a database handle for a DSN
type Opener func(dsn string) (*sql.DB, error)

func openMySQL(dsn string) (*sql.DB, error) {
	return sql.Open("mysql", dsn)
}

// DatabaseManager manages the history database
type DatabaseManager struct {
	config *config.Config
	open   Opener
}

// NewDatabaseManager creates a new DatabaseManager
func NewDatabaseManager(cfg *config.Config) *DatabaseManager {
	return &DatabaseManager{config: cfg, open: openMySQL}
}

// SetOpener replaces how connections are opened
func (dm *DatabaseManager) SetOpener(open Opener) {
	dm.open = open
}

// EnsureDatabase creates the history database if it does not exist yet.
// It reports whether the database was created.
func (dm *DatabaseManager) EnsureDatabase(ctx context.Context) (bool, error) {
	dbName := dm.config.Database.Name
	if !isValidDatabaseName(dbName) {
		return false, fmt.Errorf("invalid database name: %s", dbName)
	}

	// Connect to MySQL server (without specifying database)
	db, err := dm.open(dm.config.Database.ServerDSN())
	if err != nil {
		return false, fmt.Errorf("failed to connect to database server: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return false, fmt.Errorf("failed to ping database server: %w", err)
	}

	exists, err := databaseExists(ctx, db, dbName)
	if err != nil {
		return false, fmt.Errorf("failed to check database %s: %w", dbName, err)
	}
	if exists {
		return false, nil
	}

	if _, err := db.ExecContext(ctx, fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", dbName)); err != nil {
		return false, fmt.Errorf("failed to create database %s: %w", dbName, err)
	}
	return true, nil
}

// Connect opens the history database itself
func (dm *DatabaseManager) Connect(ctx context.Context) (*sql.DB, error) {
	db, err := dm.open(dm.config.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", dm.config.Database.Name, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", dm.config.Database.Name, err)
	}
	return db, nil
}

func databaseExists(ctx context.Context, db *sql.DB, dbName string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT SCHEMA_NAME FROM INFORMATION_SCHEMA.SCHEMATA WHERE SCHEMA_NAME = ?)"
	err := db.QueryRowContext(ctx, query, dbName).Scan(&exists)
	return exists, err
}

// isValidDatabaseName validates database name (basic check)
func isValidDatabaseName(name string) bool {
	if len(name) == 0 || len(name) > 64 {
		return false
	}
	// Check for SQL injection patterns
	invalidChars := []string{"'", "\"", "`", ";", "--", "/*", "*/", "DROP", "DELETE", "TRUNCATE"}
	upperName := strings.ToUpper(name)
	for _, char := range invalidChars {
		if strings.Contains(upperName, char) {
			return false
		}
	}
	return true
}
