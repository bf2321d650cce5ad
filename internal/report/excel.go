package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"leavesmoke/internal/domain"
)

const (
	resultsSheet       = "Results"
	summarySheet       = "Summary"
	defaultColumnWidth = 14
	wideColumnWidth    = 48

	patternType  = "pattern"
	patternValue = 1
	errorBgColor = "FF5900"
	slowBgColor  = "FFEB9C"

	slowCaseThreshold = time.Second
)

// ResultHeaders are the columns of the results sheet
var ResultHeaders = []string{
	"#", "name", "method", "path", "status", "outcome",
	"message", "auth sent", "token stored", "duration ms", "trace id", "curl",
}

// WriteWorkbook exports a run to an xlsx file: one row per case, failed rows
// filled red and slow rows yellow, plus a summary sheet.
func WriteWorkbook(path string, meta domain.RunMeta, results []domain.CaseResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", resultsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	errorStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: patternType, Pattern: patternValue, Color: []string{errorBgColor}},
	})
	if err != nil {
		return fmt.Errorf("create error style: %w", err)
	}
	slowStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: patternType, Pattern: patternValue, Color: []string{slowBgColor}},
	})
	if err != nil {
		return fmt.Errorf("create slow style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	lastCol, _ := excelize.ColumnNumberToName(len(ResultHeaders))
	_ = f.SetColWidth(resultsSheet, "A", lastCol, defaultColumnWidth)
	_ = f.SetColWidth(resultsSheet, "G", "G", wideColumnWidth)
	_ = f.SetColWidth(resultsSheet, lastCol, lastCol, wideColumnWidth)

	if err := f.SetSheetRow(resultsSheet, "A1", &ResultHeaders); err != nil {
		return fmt.Errorf("write headers: %w", err)
	}
	_ = f.SetCellStyle(resultsSheet, "A1", lastCol+"1", headerStyle)

	for i, r := range results {
		row := i + 2
		cells := []interface{}{
			r.Index,
			r.Name,
			r.Method,
			r.Path,
			r.Status,
			string(r.Outcome),
			r.Message,
			r.AuthSent,
			r.TokenStored,
			r.Duration.Milliseconds(),
			r.TraceID,
			r.Curl,
		}
		start := fmt.Sprintf("A%d", row)
		if err := f.SetSheetRow(resultsSheet, start, &cells); err != nil {
			return fmt.Errorf("write row %d: %w", row, err)
		}

		end := fmt.Sprintf("%s%d", lastCol, row)
		if !r.Success {
			_ = f.SetCellStyle(resultsSheet, start, end, errorStyle)
		} else if r.Duration > slowCaseThreshold {
			_ = f.SetCellStyle(resultsSheet, start, end, slowStyle)
		}
	}

	if err := writeSummary(f, meta); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, meta domain.RunMeta) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}
	_ = f.SetColWidth(summarySheet, "A", "A", 18)
	_ = f.SetColWidth(summarySheet, "B", "B", wideColumnWidth)

	rows := [][]interface{}{
		{"run id", meta.RunID},
		{"base url", meta.BaseURL},
		{"timestamp", meta.Timestamp},
		{"total cases", meta.TotalCases},
		{"passed", meta.PassedCases},
		{"failed", meta.FailedCases},
		{"network errors", meta.NetworkErrors},
		{"token acquired", meta.TokenAcquired},
		{"duration", meta.Duration},
	}
	for i, row := range rows {
		if err := f.SetSheetRow(summarySheet, fmt.Sprintf("A%d", i+1), &row); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}
	return nil
}
