// internal/app/features/analytics/summary_test.go
package analytics

import (
	"os"
	"path/filepath"
	"testing"
)

var testRegionByCountry = map[string]string{
	"kenya":  "africa",
	"france": "europe",
	"japan":  "asia-pacific",
}

var testRows = []visitRow{
	{Country: "Kenya", PageURL: "/emergencies/1234"},
	{Country: "Kenya", PageURL: "/countries/kenya"},
	{Country: "France", PageURL: "/alerts/9"},
	{Country: "France", PageURL: "/countries/france"},
	{Country: "Japan", PageURL: "/surge/overview"},
}

func TestSummarize_Scopes(t *testing.T) {
	tests := []struct {
		name      string
		access    Access
		wantTotal int
	}{
		{"global sees everything", Access{GlobalAccess: true}, 5},
		{"single region", Access{RegionCodes: []string{"africa"}}, 2},
		{"two regions", Access{RegionCodes: []string{"africa", "europe"}}, 4},
		{"live only sees emergency pages", Access{LiveAccess: true}, 2},
		{"live narrows a regional grant", Access{LiveAccess: true, RegionCodes: []string{"africa"}}, 1},
		{"no grants sees nothing", Access{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := summarize(testRows, testRegionByCountry, tt.access)
			if got.TotalVisits != tt.wantTotal {
				t.Errorf("total_visits = %d, want %d", got.TotalVisits, tt.wantTotal)
			}
		})
	}
}

func TestSummarize_TopCountries(t *testing.T) {
	got := summarize(testRows, testRegionByCountry, Access{GlobalAccess: true})

	if len(got.TopCountries) != 3 {
		t.Fatalf("top countries = %v", got.TopCountries)
	}
	// France and Kenya tie at 2; ties rank alphabetically.
	if got.TopCountries[0].Key != "France" || got.TopCountries[0].Count != 2 {
		t.Errorf("top country = %+v, want France/2", got.TopCountries[0])
	}
	if got.TopCountries[1].Key != "Kenya" {
		t.Errorf("second country = %+v, want Kenya", got.TopCountries[1])
	}
	if got.TopCountries[2].Key != "Japan" || got.TopCountries[2].Count != 1 {
		t.Errorf("third country = %+v, want Japan/1", got.TopCountries[2])
	}
}

func TestRankedCountJSON(t *testing.T) {
	b, err := rankedCount{Key: "/emergencies/1", Count: 3}.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `["/emergencies/1",3]` {
		t.Errorf("marshalled = %s", b)
	}
}

func TestLoadDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "visits.csv")
	csv := "date,country,fullPageUrl,sessions\n" +
		"2026-01-01,Kenya,/emergencies/1234,3\n" +
		"2026-01-02, France ,/countries/france,1\n"
	if err := os.WriteFile(path, []byte(csv), 0o600); err != nil {
		t.Fatal(err)
	}

	rows, err := loadDataset(path)
	if err != nil {
		t.Fatalf("load dataset: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].Country != "Kenya" || rows[0].PageURL != "/emergencies/1234" {
		t.Errorf("row 0 = %+v", rows[0])
	}
	if rows[1].Country != "France" {
		t.Errorf("row 1 country = %q, want whitespace trimmed", rows[1].Country)
	}
}

func TestLoadDataset_MissingColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	if err := os.WriteFile(path, []byte("a,b\n1,2\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := loadDataset(path); err == nil {
		t.Error("expected error for dataset without required columns")
	}
}
