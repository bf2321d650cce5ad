package commands

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"leavesmoke/internal/config"
	"leavesmoke/internal/discovery"
	"leavesmoke/internal/suite"
)

func saveWorkbook(t *testing.T, path string, rows [][]interface{}) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", config.DefaultCaseSheet))
	header := make([]interface{}, len(suite.CaseHeaders))
	for i, h := range suite.CaseHeaders {
		header[i] = h
	}
	for i, row := range append([][]interface{}{header}, rows...) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow(config.DefaultCaseSheet, cell, &r))
	}
	require.NoError(t, f.SaveAs(path))
}

func TestCaseLoader_Directory(t *testing.T) {
	dir := t.TempDir()
	saveWorkbook(t, filepath.Join(dir, "b.xlsx"), [][]interface{}{
		{"leave limits", "GET", "/api/teachers/leave-limits", "", "session", "false"},
	})
	saveWorkbook(t, filepath.Join(dir, "a.xlsx"), [][]interface{}{
		{"health", "GET", "/api/health", "", "", ""},
		{"login", "POST", "/api/auth/login", `{"email":"a@b.c","password":"x"}`, "", "true"},
	})

	cfg := config.New()
	cfg.ApplyFlags(config.Flags{CasesFile: dir})
	loader := newCaseLoader(cfg, discovery.NewScanner(nil), suite.NewFilter())

	cases, err := loader.Load()
	require.NoError(t, err)
	require.Len(t, cases, 3)
	assert.Equal(t, "health", cases[0].Name)
	assert.Equal(t, "login", cases[1].Name)
	assert.Equal(t, "leave limits", cases[2].Name)

	cfg.ApplyFlags(config.Flags{CasesFile: dir, NameFilter: "leave*"})
	cases, err = loader.Load()
	require.NoError(t, err)
	require.Len(t, cases, 2, "login is kept for the session case")
	assert.True(t, cases[0].Login)
}

func TestCaseLoader_DefaultSuite(t *testing.T) {
	cfg := config.New()
	loader := newCaseLoader(cfg, discovery.NewScanner(nil), suite.NewFilter())

	cases, err := loader.Load()
	require.NoError(t, err)
	assert.Len(t, cases, 9)
}
