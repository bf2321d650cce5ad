package suite

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"leavesmoke/internal/domain"
)

func writeWorkbook(t *testing.T, sheet string, rows [][]string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		if _, err := f.NewSheet(sheet); err != nil {
			t.Fatalf("failed to create sheet: %v", err)
		}
	}
	for r, row := range append([][]string{CaseHeaders}, rows...) {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				t.Fatalf("bad coordinates: %v", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				t.Fatalf("failed to set %s: %v", cell, err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "cases.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save workbook: %v", err)
	}
	return path
}

func TestLoadWorkbook(t *testing.T) {
	path := writeWorkbook(t, "Cases", [][]string{
		{"health", "get", "/api/health", "", "", ""},
		{"", "", "", "", "", ""},
		{"login", "POST", "/api/auth/login", `{"email":"a@b.c","password":"x"}`, "none", "true"},
		{"", "GET", "/api/teachers/leave-limits", "", "session", "false"},
	})

	cases, err := LoadWorkbook(path, "Cases")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cases) != 3 {
		t.Fatalf("expected 3 cases, got %d", len(cases))
	}
	if cases[0].Method != "GET" || cases[0].Auth != domain.AuthNone {
		t.Errorf("unexpected first case: %+v", cases[0])
	}
	if !cases[1].Login || string(cases[1].Body) != `{"email":"a@b.c","password":"x"}` {
		t.Errorf("unexpected login case: %+v", cases[1])
	}
	if cases[2].Name != "GET /api/teachers/leave-limits" || !cases[2].RequiresAuth() {
		t.Errorf("unexpected session case: %+v", cases[2])
	}
}

func TestLoadWorkbook_Errors(t *testing.T) {
	tests := []struct {
		name    string
		rows    [][]string
		wantErr string
	}{
		{"bad auth", [][]string{{"x", "GET", "/api/x", "", "bearer", ""}}, "row 2"},
		{"bad method", [][]string{{"x", "PATCH", "/api/x", "", "", ""}}, "unsupported method"},
		{"bad body", [][]string{{"x", "POST", "/api/x", "{", "", ""}}, "not valid JSON"},
		{"bad login", [][]string{{"x", "POST", "/api/x", "", "", "maybe"}}, "invalid login"},
		{"only blank rows", [][]string{{"", "", "", "", "", ""}}, "no test cases"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeWorkbook(t, "Cases", tt.rows)
			_, err := LoadWorkbook(path, "Cases")
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadWorkbook(filepath.Join(t.TempDir(), "missing.xlsx"), "Cases")
		if err == nil {
			t.Error("expected error for missing workbook")
		}
	})

	t.Run("missing sheet", func(t *testing.T) {
		path := writeWorkbook(t, "Cases", [][]string{{"x", "GET", "/api/x", "", "", ""}})
		_, err := LoadWorkbook(path, "Other")
		if err == nil {
			t.Errorf("expected error for missing sheet in %s", path)
		}
	})
}
