package export

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/jung-kurt/gofpdf"

	"perfpoints/internal/domain/points"
)

// MonthlySummaryPDF renders the monthly points summary as a one-page PDF.
func MonthlySummaryPDF(employeeName string, year int, month time.Month, summary points.MonthlySummary) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Monthly Performance Points")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Employee: %s", employeeName))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Period: %s %d", month, year))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Category Breakdown")
	pdf.Ln(9)

	pdf.SetFont("Helvetica", "", 11)
	categories := make([]string, 0, len(summary.CategoryTotals))
	for category := range summary.CategoryTotals {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for _, category := range categories {
		pdf.Cell(60, 7, category)
		pdf.Cell(0, 7, summary.CategoryTotals[category].StringFixed(2))
		pdf.Ln(7)
	}
	pdf.Ln(5)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(60, 8, "Total")
	pdf.Cell(0, 8, summary.Total.StringFixed(2))
	pdf.Ln(9)

	pdf.SetFont("Helvetica", "", 11)
	status := "Target not met"
	if summary.MeetsMinimum {
		status = "Target met"
	}
	pdf.Cell(0, 7, fmt.Sprintf("%s (target %s)", status, summary.TargetPoints.StringFixed(2)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
