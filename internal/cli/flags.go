package cli

import (
	"time"

	"leavesmoke/internal/config"
)

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

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		BaseURL:     f.BaseURL,
		Email:       f.Email,
		Password:    f.Password,
		NameFilter:  f.NameFilter,
		CasesFile:   f.CasesFile,
		Sheet:       f.Sheet,
		Timeout:     f.Timeout,
		Verbose:     f.Verbose,
		NoProgress:  f.NoProgress,
		ExcelReport: f.ExcelReport,
		Record:      f.Record,
		OpenFaills:  f.OpenFaills,
		Limit:       f.Limit,
	}
}
