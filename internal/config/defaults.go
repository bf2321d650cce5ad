package config

import "time"

const (
	// DefaultBaseURL is the leave-management API the suite targets
	DefaultBaseURL = "http://localhost:5000"
	// DefaultEmail is the login used by the login case
	DefaultEmail = "rajesh.kumar@college.com"
	// DefaultPassword is the password used by the login case
	DefaultPassword = "password123"
	// DefaultDummyToken is sent by cases that probe token rejection
	DefaultDummyToken = "dummy-token"
	// DefaultRequestTimeout bounds a single request
	DefaultRequestTimeout = 30 * time.Second
	// DefaultOutputJSONFile is the default report file name
	DefaultOutputJSONFile = "smoke-results.json"
	// DefaultOutputJSONDir is the default output directory
	DefaultOutputJSONDir = "storage"
	// DefaultCaseSheet is the workbook sheet read by --cases
	DefaultCaseSheet = "Cases"
	// DefaultEnvFile is loaded from the working directory when present
	DefaultEnvFile = ".env"
	// DefaultHistoryLimit is the number of runs printed by the history command
	DefaultHistoryLimit = 10
)

// Database defaults for the run history archive
const (
	DefaultDBHost     = "127.0.0.1"
	DefaultDBPort     = "3306"
	DefaultDBUser     = "root"
	DefaultDBDatabase = "leave_smoke"
)

// DefaultSkipDirs are not searched when --cases names a directory
var DefaultSkipDirs = []string{"node_modules", "vendor", "storage"}
