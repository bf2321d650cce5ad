package suite

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"leavesmoke/internal/domain"
)

// Workbook columns, header on row 1
const (
	colName = iota
	colMethod
	colPath
	colBody
	colAuth
	colLogin
)

// CaseHeaders is the header row expected in a case workbook
var CaseHeaders = []string{"name", "method", "path", "body", "auth", "login"}

// LoadWorkbook reads test cases from the given sheet of an xlsx file.
// Rows without method and path are skipped.
func LoadWorkbook(path, sheet string) ([]domain.TestCase, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open case workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("no test cases found in sheet %s", sheet)
	}

	var cases []domain.TestCase
	for i, row := range rows[1:] {
		rowNum := i + 2
		tc, skip, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}
		if skip {
			continue
		}
		if tc.Name == "" {
			tc.Name = fmt.Sprintf("%s %s", tc.Method, tc.Path)
		}
		if err := tc.Validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}
		cases = append(cases, tc)
	}

	if len(cases) == 0 {
		return nil, fmt.Errorf("no test cases found in sheet %s", sheet)
	}
	return cases, nil
}

func parseRow(row []string) (domain.TestCase, bool, error) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	method := strings.ToUpper(cell(colMethod))
	path := cell(colPath)
	if method == "" && path == "" {
		return domain.TestCase{}, true, nil
	}

	auth, err := domain.ParseAuthMode(cell(colAuth))
	if err != nil {
		return domain.TestCase{}, false, err
	}

	login := false
	if v := cell(colLogin); v != "" {
		login, err = strconv.ParseBool(v)
		if err != nil {
			return domain.TestCase{}, false, fmt.Errorf("invalid login value %q", v)
		}
	}

	var body json.RawMessage
	if v := cell(colBody); v != "" {
		if !json.Valid([]byte(v)) {
			return domain.TestCase{}, false, fmt.Errorf("body is not valid JSON")
		}
		body = json.RawMessage(v)
	}

	return domain.TestCase{
		Name:   cell(colName),
		Method: method,
		Path:   path,
		Body:   body,
		Auth:   auth,
		Login:  login,
	}, false, nil
}
