package interfaces

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	estimationapp "fleetdesk/internal/estimation/application"
)

func exportTotals() estimationapp.AggregateTotals {
	return estimationapp.AggregateTotals{
		EstimatedRepairsTotal:      1200,
		EstimatedReplacementsTotal: 6500,
		EstimatedBudgetNeeded:      7700,
		ByDepartment: map[string]estimationapp.BucketTotals{
			"Marketing": {Repair: 400, Replacement: 0, Count: 2},
			"Finance":   {Repair: 800, Replacement: 6500, Count: 2},
		},
		ByOS:         map[string]estimationapp.BucketTotals{},
		ByDeviceType: map[string]estimationapp.BucketTotals{},
	}
}

func TestBuildBudgetCSV(t *testing.T) {
	payload, err := BuildBudgetCSV(exportTotals(), "RM")
	if err != nil {
		t.Fatalf("BuildBudgetCSV: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(payload)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	// Header, two department rows sorted by name, total footer.
	if len(records) != 4 {
		t.Fatalf("rows = %d, want 4: %v", len(records), records)
	}
	if records[0][0] != "department" || records[0][4] != "total_RM" {
		t.Errorf("header = %v", records[0])
	}
	if records[1][0] != "Finance" || records[1][4] != "7300.00" {
		t.Errorf("Finance row = %v", records[1])
	}
	if records[2][0] != "Marketing" || records[2][4] != "400.00" {
		t.Errorf("Marketing row = %v", records[2])
	}
	if records[3][0] != "TOTAL" || records[3][4] != "7700.00" {
		t.Errorf("total row = %v", records[3])
	}
}

func TestBuildBudgetXLSX(t *testing.T) {
	generatedAt := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	payload, err := BuildBudgetXLSX(exportTotals(), "RM", generatedAt)
	if err != nil {
		t.Fatalf("BuildBudgetXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	needed, err := f.GetCellValue("summary", "B7")
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	if needed != "7700" {
		t.Errorf("budget needed cell = %q, want 7700", needed)
	}

	department, err := f.GetCellValue("departments", "A2")
	if err != nil {
		t.Fatalf("read departments: %v", err)
	}
	if department != "Finance" {
		t.Errorf("first department = %q, want Finance", department)
	}
}

func TestBuildBudgetPDF(t *testing.T) {
	generatedAt := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	payload, err := BuildBudgetPDF(exportTotals(), "RM", generatedAt)
	if err != nil {
		t.Fatalf("BuildBudgetPDF: %v", err)
	}
	if !bytes.HasPrefix(payload, []byte("%PDF")) {
		t.Errorf("payload does not start with a PDF header")
	}
}
