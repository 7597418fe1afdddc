package xlsxutil

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/dalemusser/fieldhub/internal/domain/models"
)

func TestExportFileName(t *testing.T) {
	now := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	got := ExportFileName("Nepal", models.TypeAdministrative, now)
	want := "Nepal Administrative Local Units 2025-03-14.xlsx"
	if got != want {
		t.Errorf("ExportFileName() = %q, want %q", got, want)
	}
}

func TestBuildAndParseRoundTrip(t *testing.T) {
	units := []models.LocalUnit{
		{
			Type:            models.TypeAdministrative,
			LocalBranchName: "Kathmandu Branch",
			FocalPersonLoc:  "R. Shrestha",
			DateOfData:      time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			Location:        models.Location{Lat: 27.7, Lng: 85.3},
			Status:          models.StatusValidated,
		},
		{
			Type:            models.TypeAdministrative,
			LocalBranchName: "Pokhara Branch",
			FocalPersonLoc:  "S. Gurung",
			Location:        models.Location{Lat: 28.2, Lng: 83.9},
			Status:          models.StatusUnvalidated,
		},
	}

	data, err := BuildLocalUnitsWorkbook(units, models.TypeAdministrative)
	if err != nil {
		t.Fatalf("BuildLocalUnitsWorkbook() error: %v", err)
	}

	parsed, rowErrs, err := ParseLocalUnitRows(bytes.NewReader(data), models.TypeAdministrative)
	if err != nil {
		t.Fatalf("ParseLocalUnitRows() error: %v", err)
	}
	if len(rowErrs) != 0 {
		t.Fatalf("expected no row errors, got %v", rowErrs)
	}
	if len(parsed) != 2 {
		t.Fatalf("expected 2 units, got %d", len(parsed))
	}
	if parsed[0].LocalBranchName != "Kathmandu Branch" {
		t.Errorf("branch name = %q", parsed[0].LocalBranchName)
	}
	if parsed[0].Location.Lat != 27.7 || parsed[0].Location.Lng != 85.3 {
		t.Errorf("location = %+v", parsed[0].Location)
	}
	if !parsed[0].DateOfData.Equal(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date of data = %v", parsed[0].DateOfData)
	}
}

func TestParseLocalUnitRows_RowErrors(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	headers := []string{"Local Branch Name", "Focal Person (Local)", "Latitude", "Longitude"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	rows := [][]string{
		{"Good Branch", "A. Person", "10.5", "20.5"},
		{"", "B. Person", "10.5", "20.5"},        // missing branch name
		{"Bad Coord", "C. Person", "999", "20.5"}, // latitude out of range
		{"No Focal", "", "10.5", "20.5"},          // missing focal person
	}
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			f.SetCellValue(sheet, cell, v)
		}
	}
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	f.Close()

	units, rowErrs, err := ParseLocalUnitRows(&buf, models.TypeAdministrative)
	if err != nil {
		t.Fatalf("ParseLocalUnitRows() error: %v", err)
	}
	if len(units) != 1 {
		t.Errorf("expected 1 good unit, got %d", len(units))
	}
	if len(rowErrs) != 3 {
		t.Fatalf("expected 3 row errors, got %d: %v", len(rowErrs), rowErrs)
	}
	// sheet rows are 1-based, header is row 1
	if rowErrs[0].Row != 3 {
		t.Errorf("first error row = %d, want 3", rowErrs[0].Row)
	}
	if !strings.Contains(rowErrs[1].Message, "latitude") {
		t.Errorf("second error = %q, want latitude message", rowErrs[1].Message)
	}
}

func TestParseLocalUnitRows_HealthCareRequiresFocalPoint(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	headers := []string{"Local Branch Name", "Latitude", "Longitude", "Focal Point Email", "Focal Point Position"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	rows := [][]string{
		{"City Hospital", "10.5", "20.5", "fp@example.org", "Manager"},
		{"No Focal Hospital", "10.5", "20.5", "", ""},
	}
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			f.SetCellValue(sheet, cell, v)
		}
	}
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	f.Close()

	units, rowErrs, err := ParseLocalUnitRows(&buf, models.TypeHealthCare)
	if err != nil {
		t.Fatalf("ParseLocalUnitRows() error: %v", err)
	}
	if len(units) != 1 {
		t.Fatalf("expected 1 unit, got %d", len(units))
	}
	u := units[0]
	if u.Health == nil {
		t.Fatal("expected health profile present")
	}
	if u.Health.FocalPointEmail != "fp@example.org" {
		t.Errorf("focal point email = %q", u.Health.FocalPointEmail)
	}
	if u.FocalPersonLoc != "" || u.Phone != "" || u.Email != "" {
		t.Error("health-care unit should not carry generic contact fields")
	}
	if len(rowErrs) != 1 {
		t.Fatalf("expected 1 row error, got %d", len(rowErrs))
	}
}

func TestBuildImportTemplate_HasHeaders(t *testing.T) {
	data, err := BuildImportTemplate(models.TypeHealthCare)
	if err != nil {
		t.Fatalf("BuildImportTemplate() error: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open template: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected header row only, got %d rows", len(rows))
	}
	found := false
	for _, h := range rows[0] {
		if h == "Focal Point Email" {
			found = true
		}
	}
	if !found {
		t.Error("health template missing Focal Point Email header")
	}
}

func TestBuildErrorFile(t *testing.T) {
	data, err := BuildErrorFile([]RowError{
		{Row: 3, Message: "missing branch name"},
		{Row: 7, Message: "invalid latitude"},
	})
	if err != nil {
		t.Fatalf("BuildErrorFile() error: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open error file: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows("Errors")
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[1][0] != "3" || rows[1][1] != "missing branch name" {
		t.Errorf("first error row = %v", rows[1])
	}
}
