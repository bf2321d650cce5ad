package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// WorkbookExt is the extension of case workbooks
const WorkbookExt = ".xlsx"

// Scanner finds case workbooks in a directory
type Scanner struct {
	skipDirs map[string]bool
}

// NewScanner creates a new Scanner with the given directories to skip
func NewScanner(skipDirs []string) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{skipDirs: skipMap}
}

// Resolve returns the workbooks for a --cases value: the file itself, or
// every workbook under a directory in lexical order
func (s *Scanner) Resolve(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cases path does not exist: %s", path)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	return s.Scan(path)
}

// Scan finds all workbooks in the given root directory
func (s *Scanner) Scan(root string) ([]string, error) {
	var workbooks []string

	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("cases path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("cases path is not a directory: %s", root)
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		name := d.Name()
		if d.IsDir() {
			// Skip hidden directories (starting with .)
			if path != root && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if s.skipDirs[name] {
				return filepath.SkipDir
			}
			return nil
		}

		// ~$ files are Excel lock files
		if strings.HasPrefix(name, "~$") {
			return nil
		}
		if strings.EqualFold(filepath.Ext(name), WorkbookExt) {
			workbooks = append(workbooks, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(workbooks)
	return workbooks, nil
}
