// internal/app/features/dref/tabs.go
package dref

import (
	"github.com/dalemusser/fieldhub/internal/app/system/formschema"
	"github.com/dalemusser/fieldhub/internal/domain/models"
)

// Form tabs in their default order.
const (
	TabOverview    = "overview"
	TabEventDetail = "eventDetail"
	TabActions     = "actions"
	TabOperation   = "operation"
	TabSubmission  = "submission"
)

// tabFields maps each tab to the document fields it edits. A tab is in error
// exactly when at least one of its fields carries a validation error.
var tabFields = map[string][]string{
	TabOverview: {
		"type_of_dref", "type_of_onset", "national_society", "country_id",
		"district", "disaster_type", "disaster_category", "title",
		"num_affected", "people_in_need", "amount_requested",
	},
	TabEventDetail: {
		"event_date", "event_text", "event_description", "event_scope",
	},
	TabActions: {
		"did_national_society", "ns_respond_date", "national_society_actions",
		"needs_identified", "major_coordination_mechanism",
	},
	TabOperation: {
		"operation_objective", "response_strategy",
		"women", "men", "girls", "boys", "total_targeted_population",
		"planned_interventions", "proposed_action",
		"risk_security", "risk_security_concern",
		"is_surge_personnel_deployed", "surge_personnel_deployed",
	},
	TabSubmission: {
		"ns_request_date", "operation_timeframe", "end_date",
		"appeal_code", "glide_code",
		"ifrc_appeal_manager_name", "ifrc_appeal_manager_email",
		"national_society_contact_name", "national_society_contact_email",
	},
}

// TabsFor reports the tabs that apply to an application of the given type,
// in form order. Loan applications skip actions and operation, imminent
// applications skip actions.
func TabsFor(typeOfDref int) []string {
	switch typeOfDref {
	case models.DrefTypeLoan:
		return []string{TabOverview, TabEventDetail, TabSubmission}
	case models.DrefTypeImminent:
		return []string{TabOverview, TabEventDetail, TabOperation, TabSubmission}
	default:
		return []string{TabOverview, TabEventDetail, TabActions, TabOperation, TabSubmission}
	}
}

// NextTab returns the tab after current for the given application type, or
// "" when current is the last tab or unknown.
func NextTab(current string, typeOfDref int) string {
	tabs := TabsFor(typeOfDref)
	for i, t := range tabs {
		if t == current && i+1 < len(tabs) {
			return tabs[i+1]
		}
	}
	return ""
}

// PrevTab returns the tab before current for the given application type, or
// "" when current is the first tab or unknown.
func PrevTab(current string, typeOfDref int) string {
	tabs := TabsFor(typeOfDref)
	for i, t := range tabs {
		if t == current && i > 0 {
			return tabs[i-1]
		}
	}
	return ""
}

// TabErrors reduces a field-level error tree to a per-tab error flag over
// the tabs that apply to the given type.
func TabErrors(errs formschema.ErrorTree, typeOfDref int) map[string]bool {
	out := map[string]bool{}
	for _, tab := range TabsFor(typeOfDref) {
		out[tab] = errs.HasAnyUnder(tabFields[tab])
	}
	return out
}
