// internal/app/features/options/options.go

// Package options serves the enum catalogs clients use to render pick
// lists: local-unit codes on one endpoint, application-wide enums on the
// other. The catalogs are static; values mirror the code constants in
// the models package.
package options

import (
	"net/http"

	"github.com/dalemusser/fieldhub/internal/app/features/apierrors"
	"github.com/dalemusser/fieldhub/internal/domain/models"
)

// Choice is one selectable value with its display label.
type Choice struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

func unitTypes() []Choice {
	out := make([]Choice, 0, models.TypeOther)
	for t := models.TypeAdministrative; t <= models.TypeOther; t++ {
		out = append(out, Choice{Value: t, Label: models.TypeName(t)})
	}
	return out
}

func unitStatuses() []Choice {
	statuses := []models.ValidationStatus{
		models.StatusValidated,
		models.StatusUnvalidated,
		models.StatusPendingValidation,
		models.StatusExternallyManaged,
	}
	out := make([]Choice, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, Choice{Value: int(s), Label: s.String()})
	}
	return out
}

func visibilities() []Choice {
	return []Choice{
		{Value: models.VisibilityMembership, Label: "Membership"},
		{Value: models.VisibilityIFRC, Label: "IFRC Secretariat"},
		{Value: models.VisibilityPublic, Label: "Public"},
	}
}

func deprecateReasons() []Choice {
	return []Choice{
		{Value: models.DeprecateNonExistent, Label: "Non-existent local unit"},
		{Value: models.DeprecateIncorrectData, Label: "Incorrectly added local unit"},
		{Value: models.DeprecateTemporary, Label: "Temporarily closed"},
		{Value: models.DeprecateOther, Label: "Other"},
	}
}

func affiliations() []Choice {
	return []Choice{
		{Value: 1, Label: "Public"},
		{Value: 2, Label: "Private"},
		{Value: 3, Label: "Red Cross Red Crescent"},
		{Value: 4, Label: "Other"},
	}
}

func functionalities() []Choice {
	return []Choice{
		{Value: 1, Label: "Fully functional"},
		{Value: 2, Label: "Partially functional"},
		{Value: 3, Label: "Not functional"},
	}
}

func healthFacilityTypes() []Choice {
	return []Choice{
		{Value: 1, Label: "Hospital"},
		{Value: 2, Label: "Primary health care centre"},
		{Value: 3, Label: "Specialized services"},
		{Value: 4, Label: "Blood centre"},
		{Value: 5, Label: "Ambulance station"},
		{Value: 6, Label: "Pharmacy"},
		{Value: 7, Label: "Residential facility"},
		{Value: 8, Label: "Training facility"},
		{Value: 9, Label: "Other"},
	}
}

func bulkStatuses() []Choice {
	statuses := []models.BulkUploadStatus{
		models.BulkSuccess,
		models.BulkFailed,
		models.BulkPending,
	}
	labels := map[models.BulkUploadStatus]string{
		models.BulkSuccess: "Success",
		models.BulkFailed:  "Failed",
		models.BulkPending: "Pending",
	}
	out := make([]Choice, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, Choice{Value: int(s), Label: labels[s]})
	}
	return out
}

func drefTypes() []Choice {
	return []Choice{
		{Value: models.DrefTypeImminent, Label: "Imminent"},
		{Value: models.DrefTypeAssessment, Label: "Assessment"},
		{Value: models.DrefTypeResponse, Label: "Response"},
		{Value: models.DrefTypeLoan, Label: "Loan"},
	}
}

func onsetTypes() []Choice {
	return []Choice{
		{Value: models.OnsetSlow, Label: "Slow"},
		{Value: models.OnsetSudden, Label: "Sudden"},
	}
}

func proposedActionTypes() []Choice {
	return []Choice{
		{Value: models.ProposedEarlyAction, Label: "Early action"},
		{Value: models.ProposedEarlyResponse, Label: "Early response"},
	}
}

// ServeLocalUnitOptions returns the local-unit pick lists.
//
// Route: GET /api/v2/local-units-options
func ServeLocalUnitOptions(w http.ResponseWriter, r *http.Request) {
	apierrors.WriteJSON(w, http.StatusOK, map[string]any{
		"type":                 unitTypes(),
		"status":               unitStatuses(),
		"visibility":           visibilities(),
		"deprecate_reason":     deprecateReasons(),
		"affiliation":          affiliations(),
		"functionality":        functionalities(),
		"health_facility_type": healthFacilityTypes(),
	})
}

// ServeGlobalEnums returns the application-wide enum catalog.
//
// Route: GET /api/v2/global-enums
func ServeGlobalEnums(w http.ResponseWriter, r *http.Request) {
	apierrors.WriteJSON(w, http.StatusOK, map[string]any{
		"local_units_validation_status": unitStatuses(),
		"local_units_type":              unitTypes(),
		"bulk_upload_status":            bulkStatuses(),
		"dref_type_of_dref":             drefTypes(),
		"dref_type_of_onset":            onsetTypes(),
		"dref_proposed_action_type":     proposedActionTypes(),
	})
}
