// internal/app/features/localunits/schema.go
package localunits

import (
	"github.com/dalemusser/fieldhub/internal/app/system/formschema"
	"github.com/dalemusser/fieldhub/internal/domain/models"
)

// isHealthCare matches documents whose type is the health-care code.
var isHealthCare = formschema.FieldEquals("type", models.TypeHealthCare)

func notHealthCare(doc map[string]any) bool { return !isHealthCare(doc) }

// unitSchema describes the top-level local-unit form. Health-care units
// carry the health sub-record and drop the generic contact fields; every
// other type requires a local focal person instead.
func unitSchema() formschema.Schema {
	return formschema.Schema{
		Fields: []formschema.Field{
			{Name: "country_id", Required: true},
			{Name: "type", Required: true},
			{Name: "local_branch_name", Required: true, Validations: []formschema.Validation{formschema.NonEmptyString}},
			{Name: "date_of_data", Required: true},
			{Name: "location", Required: true},
			{Name: "visibility", Required: true},
			{Name: "focal_person_loc",
				Validations: []formschema.Validation{formschema.NonEmptyString},
				Rules: []formschema.Rule{
					{When: notHealthCare, Required: formschema.RequiredTrue},
					formschema.ForceAbsent(isHealthCare),
				}},
			{Name: "phone", Rules: []formschema.Rule{formschema.ForceAbsent(isHealthCare)}},
			{Name: "email", Rules: []formschema.Rule{formschema.ForceAbsent(isHealthCare)}},
			{Name: "link", Rules: []formschema.Rule{formschema.ForceAbsent(isHealthCare)}},
			{Name: "health", Rules: []formschema.Rule{
				{When: isHealthCare, Required: formschema.RequiredTrue},
				formschema.ForceAbsent(notHealthCare),
			}},
		},
	}
}

// healthSchema describes the health sub-record.
func healthSchema() formschema.Schema {
	return formschema.Schema{
		Fields: []formschema.Field{
			{Name: "affiliation", Required: true},
			{Name: "functionality", Required: true},
			{Name: "health_facility_type", Required: true},
			{Name: "focal_point_email", Required: true, Validations: []formschema.Validation{formschema.NonEmptyString}},
			{Name: "focal_point_position", Required: true, Validations: []formschema.Validation{formschema.NonEmptyString}},
			{Name: "maximum_capacity", Validations: []formschema.Validation{formschema.MinNumber(0)}},
			{Name: "number_of_isolation_rooms", Validations: []formschema.Validation{formschema.MinNumber(0)}},
		},
	}
}

// otherProfileSchema describes one entry of health.other_profiles; errors
// are keyed back to the entry's client id.
func otherProfileSchema() formschema.Schema {
	return formschema.Schema{
		Fields: []formschema.Field{
			{Name: "client_id", Required: true},
			{Name: "position", Required: true, Validations: []formschema.Validation{formschema.NonEmptyString}},
		},
	}
}

// validateUnitDoc runs the full schema over a decoded unit document,
// descending into the health sub-record and its keyed profile list.
func validateUnitDoc(doc map[string]any) formschema.ErrorTree {
	errs := unitSchema().Validate(doc)

	health, ok := doc["health"].(map[string]any)
	if !ok || !isHealthCare(doc) {
		return errs
	}

	healthErrs := healthSchema().Validate(health)
	if profiles, ok := health["other_profiles"].([]any); ok {
		for _, p := range profiles {
			entry, ok := p.(map[string]any)
			if !ok {
				continue
			}
			entryErrs := otherProfileSchema().Validate(entry)
			if entryErrs.Empty() {
				continue
			}
			clientID, _ := entry["client_id"].(string)
			if clientID == "" {
				continue
			}
			healthErrs.AddListElement("other_profiles", clientID, entryErrs)
		}
	}
	if !healthErrs.Empty() {
		errs.AddNested("health", healthErrs)
	}
	return errs
}

// applyForced clears the fields the schema forces absent for the unit's
// type, so a client cannot smuggle contact fields onto a health facility
// or a health record onto a branch office.
func applyForced(u *models.LocalUnit) {
	if u.Type == models.TypeHealthCare {
		u.FocalPersonLoc = ""
		u.Phone = ""
		u.Email = ""
		u.Link = ""
		return
	}
	u.Health = nil
}
