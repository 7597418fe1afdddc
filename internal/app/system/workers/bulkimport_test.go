package workers

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	bulkuploadstore "github.com/dalemusser/fieldhub/internal/app/store/bulkuploads"
	localunitstore "github.com/dalemusser/fieldhub/internal/app/store/localunits"
	"github.com/dalemusser/fieldhub/internal/domain/models"
	"github.com/dalemusser/fieldhub/internal/testutil"
)

// buildWorkbook renders a minimal administrative-unit workbook.
func buildWorkbook(t *testing.T, rows [][]string) []byte {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	headers := []string{"Local Branch Name", "Focal Person (Local)", "Latitude", "Longitude"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			f.SetCellValue(sheet, cell, v)
		}
	}
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	f.Close()
	return buf.Bytes()
}

func TestBulkImport_ProcessOne(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)

	country := fx.CreateCountry(ctx, "Importland", models.RegionAfrica)
	jobs := bulkuploadstore.New(db)

	data := buildWorkbook(t, [][]string{
		{"Alpha Branch", "A. Person", "10.0", "20.0"},
		{"Beta Branch", "B. Person", "11.0", "21.0"},
		{"", "C. Person", "12.0", "22.0"}, // missing branch name
	})
	job, err := jobs.Create(ctx, models.BulkUpload{
		CountryID:     country.ID,
		LocalUnitType: models.TypeAdministrative,
		FileName:      "import.xlsx",
		FileData:      data,
	})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}

	w := NewBulkImport(db, zap.NewNop(), time.Minute)
	if err := w.ProcessOne(ctx); err != nil {
		t.Fatalf("ProcessOne() error: %v", err)
	}

	done, err := jobs.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("reload job: %v", err)
	}
	if done.Status != models.BulkSuccess {
		t.Errorf("status = %v, want success", done.Status)
	}
	if done.SuccessCount != 2 || done.FailedCount != 1 {
		t.Errorf("counts = %d/%d, want 2/1", done.SuccessCount, done.FailedCount)
	}
	if !done.HasErrorFile {
		t.Error("expected error file for the bad row")
	}

	units := localunitstore.New(db)
	u, err := units.FindByName(ctx, country.ID, models.TypeAdministrative, "Alpha Branch")
	if err != nil {
		t.Fatalf("find imported unit: %v", err)
	}
	if u.Status != models.StatusExternallyManaged {
		t.Errorf("imported status = %v, want EXTERNALLY_MANAGED", u.Status)
	}
}

func TestBulkImport_ReimportUpdatesInPlace(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)

	country := fx.CreateCountry(ctx, "Reimportland", models.RegionEurope)
	jobs := bulkuploadstore.New(db)
	units := localunitstore.New(db)
	w := NewBulkImport(db, zap.NewNop(), time.Minute)

	first := buildWorkbook(t, [][]string{{"Gamma Branch", "Old Person", "1.0", "2.0"}})
	if _, err := jobs.Create(ctx, models.BulkUpload{
		CountryID: country.ID, LocalUnitType: models.TypeAdministrative,
		FileName: "a.xlsx", FileData: first,
	}); err != nil {
		t.Fatalf("create first job: %v", err)
	}
	if err := w.ProcessOne(ctx); err != nil {
		t.Fatalf("process first: %v", err)
	}
	orig, err := units.FindByName(ctx, country.ID, models.TypeAdministrative, "Gamma Branch")
	if err != nil {
		t.Fatalf("find unit: %v", err)
	}

	second := buildWorkbook(t, [][]string{{"Gamma Branch", "New Person", "1.0", "2.0"}})
	if _, err := jobs.Create(ctx, models.BulkUpload{
		CountryID: country.ID, LocalUnitType: models.TypeAdministrative,
		FileName: "b.xlsx", FileData: second,
	}); err != nil {
		t.Fatalf("create second job: %v", err)
	}
	if err := w.ProcessOne(ctx); err != nil {
		t.Fatalf("process second: %v", err)
	}

	got, err := units.FindByName(ctx, country.ID, models.TypeAdministrative, "Gamma Branch")
	if err != nil {
		t.Fatalf("find unit after reimport: %v", err)
	}
	if got.ID != orig.ID {
		t.Errorf("reimport created a new document: %s != %s", got.ID.Hex(), orig.ID.Hex())
	}
	if got.FocalPersonLoc != "New Person" {
		t.Errorf("focal person = %q, want updated", got.FocalPersonLoc)
	}
}

func TestBulkImport_ProcessOne_EmptyQueue(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)

	w := NewBulkImport(db, zap.NewNop(), time.Minute)
	if err := w.ProcessOne(ctx); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("expected ErrNoDocuments on empty queue, got %v", err)
	}
}
