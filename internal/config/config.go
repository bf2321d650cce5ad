package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	// Target API
	BaseURL        string
	Email          string
	Password       string
	DummyToken     string
	RequestTimeout time.Duration

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string

	// Case workbook sheet
	CaseSheet string

	// History archive
	Database Database

	// Command flags
	Flags Flags
}

// Database holds MySQL connection settings for the run history archive
type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// Flags holds command-line flags
type Flags struct {
	BaseURL     string
	Email       string
	Password    string
	NameFilter  string
	CasesFile   string
	Sheet       string
	Timeout     time.Duration
	Verbose     bool
	NoProgress  bool
	ExcelReport string
	Record      bool
	OpenFaills  bool
	Limit       int
}

// New creates a new Config with defaults
func New() *Config {
	return &Config{
		BaseURL:        DefaultBaseURL,
		Email:          DefaultEmail,
		Password:       DefaultPassword,
		DummyToken:     DefaultDummyToken,
		RequestTimeout: DefaultRequestTimeout,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
		CaseSheet:      DefaultCaseSheet,
		Database: Database{
			Host: DefaultDBHost,
			Port: DefaultDBPort,
			User: DefaultDBUser,
			Name: DefaultDBDatabase,
		},
	}
}

// ApplyFlags stores the flags and lets non-zero values override the current settings
func (c *Config) ApplyFlags(flags Flags) {
	c.Flags = flags

	if flags.BaseURL != "" {
		c.BaseURL = flags.BaseURL
	}
	if flags.Email != "" {
		c.Email = flags.Email
	}
	if flags.Password != "" {
		c.Password = flags.Password
	}
	if flags.Timeout > 0 {
		c.RequestTimeout = flags.Timeout
	}
	if flags.Sheet != "" {
		c.CaseSheet = flags.Sheet
	}
}

// GetBaseURL returns the base URL without a trailing slash
func (c *Config) GetBaseURL() string {
	return strings.TrimSuffix(c.BaseURL, "/")
}

// GetOutputPath returns the absolute path of the JSON report, so run and faills
// always read and write the same file
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetHistoryLimit returns the number of archived runs to print
func (c *Config) GetHistoryLimit() int {
	if c.Flags.Limit > 0 {
		return c.Flags.Limit
	}
	return DefaultHistoryLimit
}

// ServerDSN returns a DSN for the MySQL server without selecting a database
func (d Database) ServerDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/?parseTime=true", d.User, d.Password, d.Host, d.Port)
}

// DSN returns a DSN for the history database
func (d Database) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", d.User, d.Password, d.Host, d.Port, d.Name)
}
