package commands

import (
	"fmt"

	"leavesmoke/internal/config"
	"leavesmoke/internal/discovery"
	"leavesmoke/internal/domain"
	"leavesmoke/internal/suite"
)

// caseLoader resolves which cases a command works on
type caseLoader struct {
	config  *config.Config
	scanner *discovery.Scanner
	filter  *suite.Filter
}

func newCaseLoader(cfg *config.Config, scanner *discovery.Scanner, filter *suite.Filter) *caseLoader {
	return &caseLoader{config: cfg, scanner: scanner, filter: filter}
}

// Load returns the workbook cases when --cases is set (a file, or a directory
// of workbooks read in lexical order), the built-in suite otherwise, narrowed
// by --filter
func (cl *caseLoader) Load() ([]domain.TestCase, error) {
	if cl.config.Flags.CasesFile == "" {
		cases, err := suite.Default(cl.config.Email, cl.config.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to load cases: %w", err)
		}
		return cl.filter.FilterByName(cases, cl.config.Flags.NameFilter), nil
	}

	workbooks, err := cl.scanner.Resolve(cl.config.Flags.CasesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load cases: %w", err)
	}

	var cases []domain.TestCase
	for _, path := range workbooks {
		loaded, err := suite.LoadWorkbook(path, cl.config.CaseSheet)
		if err != nil {
			return nil, fmt.Errorf("failed to load cases: %w", err)
		}
		cases = append(cases, loaded...)
	}
	return cl.filter.FilterByName(cases, cl.config.Flags.NameFilter), nil
}
