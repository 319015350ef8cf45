package interfaces

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	estimationapp "fleetdesk/internal/estimation/application"
)

type departmentRow struct {
	Department  string
	Count       int
	Repair      float64
	Replacement float64
	Total       float64
}

func departmentRows(totals estimationapp.AggregateTotals) []departmentRow {
	rows := make([]departmentRow, 0, len(totals.ByDepartment))
	for department, bucket := range totals.ByDepartment {
		rows = append(rows, departmentRow{
			Department:  department,
			Count:       bucket.Count,
			Repair:      bucket.Repair,
			Replacement: bucket.Replacement,
			Total:       bucket.Repair + bucket.Replacement,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Department < rows[j].Department })
	return rows
}

// BuildBudgetCSV renders the department budget rollup as CSV.
func BuildBudgetCSV(totals estimationapp.AggregateTotals, currency string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"department", "devices", "repair_" + currency, "replacement_" + currency, "total_" + currency}); err != nil {
		return nil, err
	}
	for _, row := range departmentRows(totals) {
		record := []string{
			row.Department,
			strconv.Itoa(row.Count),
			strconv.FormatFloat(row.Repair, 'f', 2, 64),
			strconv.FormatFloat(row.Replacement, 'f', 2, 64),
			strconv.FormatFloat(row.Total, 'f', 2, 64),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}
	if err := writer.Write([]string{
		"TOTAL",
		"",
		strconv.FormatFloat(totals.EstimatedRepairsTotal, 'f', 2, 64),
		strconv.FormatFloat(totals.EstimatedReplacementsTotal, 'f', 2, 64),
		strconv.FormatFloat(totals.EstimatedBudgetNeeded, 'f', 2, 64),
	}); err != nil {
		return nil, err
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildBudgetPDF renders a minimal PDF budget report.
func BuildBudgetPDF(totals estimationapp.AggregateTotals, currency string, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Fleet Budget Estimate")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", generatedAt.Format(time.RFC3339)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Estimated Repairs (%s): %.2f", currency, totals.EstimatedRepairsTotal))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Estimated Replacements (%s): %.2f", currency, totals.EstimatedReplacementsTotal))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Estimated Budget Needed (%s): %.2f", currency, totals.EstimatedBudgetNeeded))
	pdf.Ln(8)

	// Department table
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(50, 6, "Department", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "Devices", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 6, "Repair", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 6, "Replacement", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 6, "Total", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, row := range departmentRows(totals) {
		pdf.CellFormat(50, 6, row.Department, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, strconv.Itoa(row.Count), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("%.2f", row.Repair), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%.2f", row.Replacement), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("%.2f", row.Total), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildBudgetXLSX renders a minimal XLSX budget report.
func BuildBudgetXLSX(totals estimationapp.AggregateTotals, currency string, generatedAt time.Time) ([]byte, error) {
	f := excelize.NewFile()
	summarySheet := "summary"
	departmentsSheet := "departments"
	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(departmentsSheet); err != nil {
		return nil, err
	}

	_ = f.SetCellValue(summarySheet, "A1", "Fleet Budget Estimate")
	_ = f.SetCellValue(summarySheet, "A3", "Generated")
	_ = f.SetCellValue(summarySheet, "B3", generatedAt.Format(time.RFC3339))
	_ = f.SetCellValue(summarySheet, "A4", "Currency")
	_ = f.SetCellValue(summarySheet, "B4", currency)
	_ = f.SetCellValue(summarySheet, "A5", "Estimated Repairs")
	_ = f.SetCellValue(summarySheet, "B5", totals.EstimatedRepairsTotal)
	_ = f.SetCellValue(summarySheet, "A6", "Estimated Replacements")
	_ = f.SetCellValue(summarySheet, "B6", totals.EstimatedReplacementsTotal)
	_ = f.SetCellValue(summarySheet, "A7", "Estimated Budget Needed")
	_ = f.SetCellValue(summarySheet, "B7", totals.EstimatedBudgetNeeded)

	_ = f.SetCellValue(departmentsSheet, "A1", "Department")
	_ = f.SetCellValue(departmentsSheet, "B1", "Devices")
	_ = f.SetCellValue(departmentsSheet, "C1", "Repair")
	_ = f.SetCellValue(departmentsSheet, "D1", "Replacement")
	_ = f.SetCellValue(departmentsSheet, "E1", "Total")
	for i, row := range departmentRows(totals) {
		line := i + 2
		_ = f.SetCellValue(departmentsSheet, fmt.Sprintf("A%d", line), row.Department)
		_ = f.SetCellValue(departmentsSheet, fmt.Sprintf("B%d", line), row.Count)
		_ = f.SetCellValue(departmentsSheet, fmt.Sprintf("C%d", line), row.Repair)
		_ = f.SetCellValue(departmentsSheet, fmt.Sprintf("D%d", line), row.Replacement)
		_ = f.SetCellValue(departmentsSheet, fmt.Sprintf("E%d", line), row.Total)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
