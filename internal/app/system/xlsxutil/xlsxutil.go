// internal/app/system/xlsxutil/xlsxutil.go

// Package xlsxutil builds and parses the spreadsheet files used by the bulk
// import pipeline and the registry export. All workbooks use a single sheet
// named "Local Units" with a frozen header row; import parsing accepts any
// first sheet so hand-edited files still load.
package xlsxutil

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/dalemusser/fieldhub/internal/domain/models"
)

const sheetName = "Local Units"

// MaxUploadSize bounds uploaded workbooks. Files are stored inline on the
// job document, so this also keeps documents well under Mongo's 16 MB cap.
const MaxUploadSize = 10 << 20

// column binds a header label to a value extractor for exports.
type column struct {
	Header string
	Width  float64
	Value  func(u *models.LocalUnit) any
}

func baseColumns() []column {
	return []column{
		{"Local Branch Name", 30, func(u *models.LocalUnit) any { return u.LocalBranchName }},
		{"English Branch Name", 30, func(u *models.LocalUnit) any { return u.EnglishBranchName }},
		{"Type", 20, func(u *models.LocalUnit) any { return models.TypeName(u.Type) }},
		{"Subtype", 20, func(u *models.LocalUnit) any { return u.Subtype }},
		{"Status", 20, func(u *models.LocalUnit) any { return u.Status.String() }},
		{"Focal Person (English)", 25, func(u *models.LocalUnit) any { return u.FocalPersonEN }},
		{"Focal Person (Local)", 25, func(u *models.LocalUnit) any { return u.FocalPersonLoc }},
		{"Date of Data", 15, func(u *models.LocalUnit) any {
			if u.DateOfData.IsZero() {
				return ""
			}
			return u.DateOfData.Format("2006-01-02")
		}},
		{"Source (English)", 25, func(u *models.LocalUnit) any { return u.SourceEN }},
		{"Address (English)", 35, func(u *models.LocalUnit) any { return u.AddressEN }},
		{"Address (Local)", 35, func(u *models.LocalUnit) any { return u.AddressLoc }},
		{"City (English)", 20, func(u *models.LocalUnit) any { return u.CityEN }},
		{"City (Local)", 20, func(u *models.LocalUnit) any { return u.CityLoc }},
		{"Postcode", 12, func(u *models.LocalUnit) any { return u.Postcode }},
		{"Phone", 20, func(u *models.LocalUnit) any { return u.Phone }},
		{"Email", 25, func(u *models.LocalUnit) any { return u.Email }},
		{"Website", 30, func(u *models.LocalUnit) any { return u.Link }},
		{"Latitude", 12, func(u *models.LocalUnit) any { return u.Location.Lat }},
		{"Longitude", 12, func(u *models.LocalUnit) any { return u.Location.Lng }},
	}
}

func healthColumns() []column {
	cols := baseColumns()
	return append(cols,
		column{"Focal Point Email", 25, func(u *models.LocalUnit) any {
			if u.Health == nil {
				return ""
			}
			return u.Health.FocalPointEmail
		}},
		column{"Focal Point Position", 25, func(u *models.LocalUnit) any {
			if u.Health == nil {
				return ""
			}
			return u.Health.FocalPointPosition
		}},
		column{"Focal Point Phone", 20, func(u *models.LocalUnit) any {
			if u.Health == nil {
				return ""
			}
			return u.Health.FocalPointPhone
		}},
		column{"Affiliation", 15, func(u *models.LocalUnit) any {
			if u.Health == nil {
				return ""
			}
			return u.Health.Affiliation
		}},
		column{"Functionality", 15, func(u *models.LocalUnit) any {
			if u.Health == nil {
				return ""
			}
			return u.Health.Functionality
		}},
		column{"Health Facility Type", 20, func(u *models.LocalUnit) any {
			if u.Health == nil {
				return ""
			}
			return u.Health.HealthFacilityType
		}},
		column{"Maximum Capacity", 18, func(u *models.LocalUnit) any {
			if u.Health == nil || u.Health.MaximumCapacity == nil {
				return ""
			}
			return *u.Health.MaximumCapacity
		}},
		column{"Teaching Hospital", 18, func(u *models.LocalUnit) any {
			if u.Health == nil {
				return ""
			}
			return yesNo(u.Health.IsTeachingHospital)
		}},
		column{"In-Patient Capacity", 18, func(u *models.LocalUnit) any {
			if u.Health == nil {
				return ""
			}
			return yesNo(u.Health.IsInPatientCapacity)
		}},
		column{"Warehousing", 15, func(u *models.LocalUnit) any {
			if u.Health == nil {
				return ""
			}
			return yesNo(u.Health.IsWarehousing)
		}},
		column{"Cold Chain", 15, func(u *models.LocalUnit) any {
			if u.Health == nil {
				return ""
			}
			return yesNo(u.Health.IsColdChain)
		}},
	)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func columnsFor(unitType int) []column {
	if unitType == models.TypeHealthCare {
		return healthColumns()
	}
	return baseColumns()
}

// ExportFileName composes the download filename for a registry export.
func ExportFileName(country string, unitType int, now time.Time) string {
	return fmt.Sprintf("%s %s Local Units %s.xlsx",
		country, models.TypeName(unitType), now.Format("2006-01-02"))
}

// BuildLocalUnitsWorkbook renders units into an xlsx workbook for download.
// The column set depends on the unit type.
func BuildLocalUnitsWorkbook(units []models.LocalUnit, unitType int) ([]byte, error) {
	cols := columnsFor(unitType)
	f, err := newWorkbook(cols)
	if err != nil {
		return nil, err
	}

	for i := range units {
		row := i + 2
		for c, col := range cols {
			cell, err := excelize.CoordinatesToCellName(c+1, row)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("cell name: %w", err)
			}
			v := col.Value(&units[i])
			if v == nil || v == "" {
				continue
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				f.Close()
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}

	return closeToBytes(f)
}

// BuildImportTemplate renders a header-only workbook for the given unit type.
func BuildImportTemplate(unitType int) ([]byte, error) {
	f, err := newWorkbook(columnsFor(unitType))
	if err != nil {
		return nil, err
	}
	return closeToBytes(f)
}

// RowError records a failed import row for the error-detail file.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// BuildErrorFile renders row errors into a two-column workbook attached to a
// failed bulk upload.
func BuildErrorFile(errs []RowError) ([]byte, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet("Errors")
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("new sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	if err := f.SetCellValue("Errors", "A1", "Row"); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetCellValue("Errors", "B1", "Error"); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetColWidth("Errors", "B", "B", 60); err != nil {
		f.Close()
		return nil, err
	}
	for i, e := range errs {
		row := strconv.Itoa(i + 2)
		if err := f.SetCellValue("Errors", "A"+row, e.Row); err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetCellValue("Errors", "B"+row, e.Message); err != nil {
			f.Close()
			return nil, err
		}
	}

	return closeToBytes(f)
}

// ParseLocalUnitRows reads an uploaded workbook and converts data rows into
// local units for the given country and type. Invalid rows are reported in
// the returned RowError slice; a non-nil error means the file itself could
// not be read. Row numbers in errors are 1-based sheet rows.
func ParseLocalUnitRows(r io.Reader, unitType int) ([]models.LocalUnit, []RowError, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, nil
	}

	idx := make(map[string]int)
	for i, h := range rows[0] {
		idx[strings.TrimSpace(h)] = i
	}
	get := func(row []string, header string) string {
		i, ok := idx[header]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var units []models.LocalUnit
	var rowErrs []RowError
	for n := 1; n < len(rows); n++ {
		row := rows[n]
		if isBlank(row) {
			continue
		}
		u, err := parseRow(row, get, unitType)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Row: n + 1, Message: err.Error()})
			continue
		}
		units = append(units, u)
	}
	return units, rowErrs, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseRow(row []string, get func([]string, string) string, unitType int) (models.LocalUnit, error) {
	u := models.LocalUnit{
		Type:              unitType,
		LocalBranchName:   get(row, "Local Branch Name"),
		EnglishBranchName: get(row, "English Branch Name"),
		Subtype:           get(row, "Subtype"),
		FocalPersonEN:     get(row, "Focal Person (English)"),
		SourceEN:          get(row, "Source (English)"),
		AddressEN:         get(row, "Address (English)"),
		AddressLoc:        get(row, "Address (Local)"),
		CityEN:            get(row, "City (English)"),
		CityLoc:           get(row, "City (Local)"),
		Postcode:          get(row, "Postcode"),
	}
	if u.LocalBranchName == "" && u.EnglishBranchName == "" {
		return u, fmt.Errorf("missing branch name")
	}

	if d := get(row, "Date of Data"); d != "" {
		t, err := parseDate(d)
		if err != nil {
			return u, fmt.Errorf("invalid date of data %q", d)
		}
		u.DateOfData = t
	}

	lat, err := parseCoord(get(row, "Latitude"), -90, 90)
	if err != nil {
		return u, fmt.Errorf("invalid latitude %q", get(row, "Latitude"))
	}
	lng, err := parseCoord(get(row, "Longitude"), -180, 180)
	if err != nil {
		return u, fmt.Errorf("invalid longitude %q", get(row, "Longitude"))
	}
	u.Location = models.Location{Lat: lat, Lng: lng}

	if unitType == models.TypeHealthCare {
		h := models.HealthProfile{
			FocalPointEmail:    get(row, "Focal Point Email"),
			FocalPointPosition: get(row, "Focal Point Position"),
			FocalPointPhone:    get(row, "Focal Point Phone"),
		}
		if h.FocalPointEmail == "" || h.FocalPointPosition == "" {
			return u, fmt.Errorf("missing health focal point")
		}
		if v := get(row, "Affiliation"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return u, fmt.Errorf("invalid affiliation %q", v)
			}
			h.Affiliation = n
		}
		if v := get(row, "Functionality"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return u, fmt.Errorf("invalid functionality %q", v)
			}
			h.Functionality = n
		}
		if v := get(row, "Health Facility Type"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return u, fmt.Errorf("invalid health facility type %q", v)
			}
			h.HealthFacilityType = n
		}
		if v := get(row, "Maximum Capacity"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return u, fmt.Errorf("invalid maximum capacity %q", v)
			}
			h.MaximumCapacity = &n
		}
		h.IsTeachingHospital = parseYes(get(row, "Teaching Hospital"))
		h.IsInPatientCapacity = parseYes(get(row, "In-Patient Capacity"))
		h.IsWarehousing = parseYes(get(row, "Warehousing"))
		h.IsColdChain = parseYes(get(row, "Cold Chain"))
		u.Health = &h
	} else {
		u.FocalPersonLoc = get(row, "Focal Person (Local)")
		u.Phone = get(row, "Phone")
		u.Email = get(row, "Email")
		u.Link = get(row, "Website")
		if u.FocalPersonLoc == "" {
			return u, fmt.Errorf("missing focal person")
		}
	}

	return u, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", "01-02-06", "1/2/2006", "2006/01/02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

func parseCoord(s string, min, max float64) (float64, error) {
	if s == "" {
		return 0, fmt.Errorf("missing")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if v < min || v > max {
		return 0, fmt.Errorf("out of range")
	}
	return v, nil
}

func parseYes(s string) bool {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true
	}
	return false
}

func newWorkbook(cols []column) (*excelize.File, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("new sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("header style: %w", err)
	}

	for i, col := range cols {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, col.Header); err != nil {
			f.Close()
			return nil, fmt.Errorf("set header %s: %w", col.Header, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("style header %s: %w", col.Header, err)
		}
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("column name: %w", err)
		}
		if err := f.SetColWidth(sheetName, name, name, col.Width); err != nil {
			f.Close()
			return nil, fmt.Errorf("column width %s: %w", name, err)
		}
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("freeze header: %w", err)
	}

	return f, nil
}

func closeToBytes(f *excelize.File) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close workbook: %w", err)
	}
	return buf.Bytes(), nil
}
