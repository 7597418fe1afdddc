// internal/app/features/analytics/modules.go
package analytics

// Analytics dashboard module keys.
const (
	ModuleOverview              = "overview"
	ModuleViewsByDate           = "views_by_date"
	ModuleTopPages              = "top_pages"
	ModuleTopCountries          = "top_countries"
	ModuleLiveMonitoring        = "live_monitoring"
	ModuleMapHeatmap            = "map_heatmap"
	ModuleEngagementPerformance = "engagement_performance"
	ModuleAudienceInsights      = "audience_insights"
	ModuleLiveSpikes            = "live_spikes"
	ModulePlatformAdoption      = "platform_adoption"
	ModuleEngagementComparison  = "engagement_comparison"
	ModuleMetadataLookup        = "metadata_lookup"
)

// Role is an information-management profile inferred from analytics access.
type Role string

const (
	RoleGlobalIM   Role = "global_im"
	RoleOpsIM      Role = "ops_im"
	RoleRegionalIM Role = "regional_im"
	RoleCountryIM  Role = "country_im"
)

// Module is one dashboard building block and the roles that may open it.
type Module struct {
	Key   string
	Label string
	Roles []Role
}

var allRoles = []Role{RoleRegionalIM, RoleOpsIM, RoleGlobalIM, RoleCountryIM}

var moduleCatalog = []Module{
	{ModuleOverview, "Overview", allRoles},
	{ModuleViewsByDate, "Views by date", allRoles},
	{ModuleMapHeatmap, "Map", allRoles},
	{ModuleEngagementPerformance, "Engagement performance", allRoles},
	{ModuleAudienceInsights, "Audience insights", []Role{RoleRegionalIM, RoleGlobalIM, RoleCountryIM}},
	{ModuleLiveMonitoring, "Live monitoring", []Role{RoleOpsIM}},
	{ModuleLiveSpikes, "Live spikes", allRoles},
	{ModulePlatformAdoption, "Platform adoption", []Role{RoleRegionalIM, RoleGlobalIM, RoleCountryIM}},
	{ModuleEngagementComparison, "Engagement comparison", []Role{RoleRegionalIM, RoleGlobalIM, RoleCountryIM}},
	{ModuleMetadataLookup, "Metadata lookup", allRoles},
	{ModuleTopPages, "Top pages", allRoles},
	{ModuleTopCountries, "Top countries", allRoles},
}

// RoleProfile pairs the inferred role with its dashboard capabilities.
type RoleProfile struct {
	Role            Role   `json:"role"`
	RealtimeEnabled bool   `json:"realtime_enabled"`
	HistoricalDepth string `json:"historical_depth"`
}

// InferRoleProfile maps an access scope onto a role profile. Global access
// wins over live, live over regional; no grants at all means a
// country-level viewer.
func InferRoleProfile(a Access) RoleProfile {
	switch {
	case a.GlobalAccess:
		return RoleProfile{Role: RoleGlobalIM, HistoricalDepth: "multi_year"}
	case a.LiveAccess:
		return RoleProfile{Role: RoleOpsIM, RealtimeEnabled: true, HistoricalDepth: "30_days"}
	case len(a.RegionCodes) > 0:
		return RoleProfile{Role: RoleRegionalIM, HistoricalDepth: "multi_year"}
	}
	return RoleProfile{Role: RoleCountryIM, HistoricalDepth: "multi_year"}
}

// AvailableModules lists the module keys the role may open, in catalog
// order.
func AvailableModules(role Role) []string {
	var keys []string
	for _, m := range moduleCatalog {
		for _, r := range m.Roles {
			if r == role {
				keys = append(keys, m.Key)
				break
			}
		}
	}
	return keys
}
