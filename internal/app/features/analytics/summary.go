// internal/app/features/analytics/summary.go
package analytics

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/dalemusser/waffle/pantry/text"
)

// visitRow is one page view from the web-analytics dataset. Only the
// columns the summary consumes are kept.
type visitRow struct {
	Country string
	PageURL string
}

// loadDataset reads the visit CSV. The header row names the columns;
// unknown columns are ignored.
func loadDataset(path string) ([]visitRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read dataset header: %w", err)
	}
	countryCol, urlCol := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "country":
			countryCol = i
		case "fullPageUrl":
			urlCol = i
		}
	}
	if countryCol < 0 || urlCol < 0 {
		return nil, fmt.Errorf("dataset is missing country/fullPageUrl columns")
	}

	var rows []visitRow
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row := visitRow{}
		if countryCol < len(rec) {
			row.Country = strings.TrimSpace(rec[countryCol])
		}
		if urlCol < len(rec) {
			row.PageURL = strings.TrimSpace(rec[urlCol])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// isEmergencyURL reports whether a page belongs to the live emergency
// surface.
func isEmergencyURL(url string) bool {
	return strings.Contains(url, "/emergencies/") || strings.Contains(url, "/alerts/")
}

// rankedCount is one top-N entry, marshalled as a [key, count] pair.
type rankedCount struct {
	Key   string
	Count int
}

func (p rankedCount) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{p.Key, p.Count})
}

// topN ranks a counter by count descending, key ascending for ties.
func topN(counts map[string]int, n int) []rankedCount {
	ranked := make([]rankedCount, 0, len(counts))
	for k, c := range counts {
		ranked = append(ranked, rankedCount{Key: k, Count: c})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Key < ranked[j].Key
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Summary is the scoped aggregate over the visit dataset.
type Summary struct {
	TotalVisits  int           `json:"total_visits"`
	TopPages     []rankedCount `json:"top_pages"`
	TopCountries []rankedCount `json:"top_countries"`
}

// summarize filters the dataset down to the rows the access scope may see
// and aggregates them. regionByCountry maps folded country names to region
// slugs.
//
// Scope rules: global sees everything; regional grants narrow to matching
// regions; a live-only grant narrows to emergency pages; live combined
// with a regional grant applies both filters. No grants sees nothing.
func summarize(rows []visitRow, regionByCountry map[string]string, a Access) Summary {
	regionSet := map[string]bool{}
	for _, code := range a.RegionCodes {
		regionSet[code] = true
	}

	var filtered []visitRow
	for _, row := range rows {
		region := regionByCountry[text.Fold(row.Country)]

		if !a.GlobalAccess {
			switch {
			case len(regionSet) > 0:
				if !regionSet[region] {
					continue
				}
			case a.LiveAccess:
				if !isEmergencyURL(row.PageURL) {
					continue
				}
			default:
				continue
			}
			if a.LiveAccess && !isEmergencyURL(row.PageURL) {
				continue
			}
		}
		filtered = append(filtered, row)
	}

	pages := map[string]int{}
	countries := map[string]int{}
	for _, row := range filtered {
		pages[row.PageURL]++
		countries[row.Country]++
	}
	return Summary{
		TotalVisits:  len(filtered),
		TopPages:     topN(pages, 10),
		TopCountries: topN(countries, 10),
	}
}
