package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"perfpoints/internal/domain/points"
)

// MonthlyEntriesExcel renders a month of approved entries as an XLSX
// workbook for payroll/HR hand-off.
func MonthlyEntriesExcel(employeeID string, year int, month time.Month, entries []points.EntryWithType, summary points.MonthlySummary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Entries"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headers := []string{"Entry Date", "Standard ID", "Points Type", "Base", "Bonus", "Penalty", "Multiplier", "Earned", "Description"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDE6F2"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, "A1", "I1", headerStyle); err != nil {
		return nil, err
	}

	for i, entry := range entries {
		row := i + 2
		values := []any{
			entry.EntryDate.Format("2006-01-02"),
			entry.StandardID,
			entry.PointsType,
			entry.BasePoints.StringFixed(2),
			entry.BonusPoints.StringFixed(2),
			entry.PenaltyPoints.StringFixed(2),
			entry.Multiplier.StringFixed(2),
			entry.PointsEarned.StringFixed(2),
			entry.Description,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	totalRow := len(entries) + 3
	if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", totalRow), "Total"); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(sheet, fmt.Sprintf("H%d", totalRow), summary.Total.StringFixed(2)); err != nil {
		return nil, err
	}
	passed := "not met"
	if summary.MeetsMinimum {
		passed = "met"
	}
	if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", totalRow+1), fmt.Sprintf("Target %s (%s)", summary.TargetPoints.StringFixed(2), passed)); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
