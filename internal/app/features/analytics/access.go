// internal/app/features/analytics/access.go
package analytics

import (
	"sort"

	"github.com/dalemusser/fieldhub/internal/domain/models"
)

// Access is a user's visit-analytics scope: the global dataset, the live
// emergency slice, or one or more regions.
type Access struct {
	GlobalAccess bool     `json:"global"`
	LiveAccess   bool     `json:"live"`
	RegionCodes  []string `json:"regions"`
}

// AccessFor derives the analytics scope from a user's grants. Superusers
// get the global scope without an explicit grant.
func AccessFor(u *models.User) Access {
	codes := make([]string, 0, len(u.AnalyticsRegions))
	seen := map[string]bool{}
	for _, region := range u.AnalyticsRegions {
		slug := models.RegionSlug(region)
		if slug == "" || seen[slug] {
			continue
		}
		seen[slug] = true
		codes = append(codes, slug)
	}
	sort.Strings(codes)

	return Access{
		GlobalAccess: u.IsSuperuser || u.AnalyticsGlobal,
		LiveAccess:   u.AnalyticsLive,
		RegionCodes:  codes,
	}
}
