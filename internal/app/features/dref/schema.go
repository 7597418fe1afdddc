// internal/app/features/dref/schema.go
package dref

import (
	"github.com/dalemusser/fieldhub/internal/app/system/formschema"
	"github.com/dalemusser/fieldhub/internal/domain/models"
)

var (
	isLoan     = formschema.FieldEquals("type_of_dref", models.DrefTypeLoan)
	isImminent = formschema.FieldEquals("type_of_dref", models.DrefTypeImminent)
)

func skipsOperation(doc map[string]any) bool { return isLoan(doc) }

func skipsActions(doc map[string]any) bool { return isLoan(doc) || isImminent(doc) }

func hasOperation(doc map[string]any) bool { return !skipsOperation(doc) }

// drefSchema describes the top-level application form. Which fields are
// required follows the tabs that apply to the application type: loan forms
// never carry actions or operation fields, imminent forms never carry
// actions fields.
func drefSchema() formschema.Schema {
	nonNegative := []formschema.Validation{formschema.MinNumber(0)}
	return formschema.Schema{
		Fields: []formschema.Field{
			{Name: "type_of_dref", Required: true},
			{Name: "title", Required: true, Validations: []formschema.Validation{formschema.NonEmptyString}},
			{Name: "national_society", Required: true},
			{Name: "country_id", Required: true},
			{Name: "type_of_onset", Rules: []formschema.Rule{
				{When: hasOperation, Required: formschema.RequiredTrue},
			}},
			{Name: "num_affected", Validations: nonNegative},
			{Name: "people_in_need", Validations: nonNegative},
			{Name: "amount_requested", Validations: nonNegative},

			{Name: "ns_respond_date", Rules: []formschema.Rule{formschema.ForceAbsent(skipsActions)}},
			{Name: "national_society_actions", Rules: []formschema.Rule{formschema.ForceAbsent(skipsActions)}},
			{Name: "needs_identified", Rules: []formschema.Rule{formschema.ForceAbsent(skipsActions)}},
			{Name: "major_coordination_mechanism", Rules: []formschema.Rule{formschema.ForceAbsent(skipsActions)}},

			{Name: "operation_objective", Rules: []formschema.Rule{formschema.ForceAbsent(skipsOperation)}},
			{Name: "response_strategy", Rules: []formschema.Rule{formschema.ForceAbsent(skipsOperation)}},
			{Name: "women", Validations: nonNegative, Rules: []formschema.Rule{formschema.ForceAbsent(skipsOperation)}},
			{Name: "men", Validations: nonNegative, Rules: []formschema.Rule{formschema.ForceAbsent(skipsOperation)}},
			{Name: "girls", Validations: nonNegative, Rules: []formschema.Rule{formschema.ForceAbsent(skipsOperation)}},
			{Name: "boys", Validations: nonNegative, Rules: []formschema.Rule{formschema.ForceAbsent(skipsOperation)}},
			{Name: "planned_interventions", Rules: []formschema.Rule{formschema.ForceAbsent(skipsOperation)}},
			{Name: "proposed_action", Rules: []formschema.Rule{formschema.ForceAbsent(skipsOperation)}},
			{Name: "risk_security", Rules: []formschema.Rule{formschema.ForceAbsent(skipsOperation)}},
			{Name: "risk_security_concern", Rules: []formschema.Rule{formschema.ForceAbsent(skipsOperation)}},
			{Name: "surge_personnel_deployed", Rules: []formschema.Rule{formschema.ForceAbsent(skipsOperation)}},

			{Name: "operation_timeframe", Validations: []formschema.Validation{formschema.MinNumber(1)}},
		},
	}
}

// plannedInterventionSchema describes one entry of planned_interventions;
// errors are keyed back to the entry's client id.
func plannedInterventionSchema() formschema.Schema {
	return formschema.Schema{
		Fields: []formschema.Field{
			{Name: "client_id", Required: true},
			{Name: "title", Required: true},
			{Name: "budget", Validations: []formschema.Validation{formschema.MinNumber(0)}},
			{Name: "person_targeted", Validations: []formschema.Validation{formschema.MinNumber(0)}},
		},
	}
}

// proposedActionSchema describes one entry of proposed_action.
func proposedActionSchema() formschema.Schema {
	return formschema.Schema{
		Fields: []formschema.Field{
			{Name: "client_id", Required: true},
			{Name: "proposed_type", Required: true},
			{Name: "total_budget", Required: true, Validations: []formschema.Validation{formschema.MinNumber(0)}},
		},
	}
}

// riskSecuritySchema describes one entry of risk_security.
func riskSecuritySchema() formschema.Schema {
	return formschema.Schema{
		Fields: []formschema.Field{
			{Name: "client_id", Required: true},
			{Name: "risk", Required: true, Validations: []formschema.Validation{formschema.NonEmptyString}},
		},
	}
}

// validateDrefDoc runs the full schema over a decoded application document,
// descending into the keyed operation lists when the operation tab applies.
func validateDrefDoc(doc map[string]any) formschema.ErrorTree {
	errs := drefSchema().Validate(doc)
	if skipsOperation(doc) {
		return errs
	}
	validateKeyedList(errs, doc, "planned_interventions", plannedInterventionSchema())
	validateKeyedList(errs, doc, "proposed_action", proposedActionSchema())
	validateKeyedList(errs, doc, "risk_security", riskSecuritySchema())
	return errs
}

func validateKeyedList(errs formschema.ErrorTree, doc map[string]any, field string, schema formschema.Schema) {
	list, ok := doc[field].([]any)
	if !ok {
		return
	}
	for _, item := range list {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		entryErrs := schema.Validate(entry)
		if entryErrs.Empty() {
			continue
		}
		clientID, _ := entry["client_id"].(string)
		if clientID == "" {
			continue
		}
		errs.AddListElement(field, clientID, entryErrs)
	}
}

// applyForced clears the fields outside the tabs that apply to the
// application's type, so a loan application cannot carry operation data.
func applyForced(d *models.DrefApplication) {
	if d.TypeOfDref == models.DrefTypeLoan || d.TypeOfDref == models.DrefTypeImminent {
		d.DidNationalSociety = false
		d.NSRespondDate = nil
		d.NationalSocietyActions = nil
		d.NeedsIdentified = nil
		d.MajorCoordination = ""
	}
	if d.TypeOfDref == models.DrefTypeLoan {
		d.OperationObjective = ""
		d.ResponseStrategy = ""
		d.Women = nil
		d.Men = nil
		d.Girls = nil
		d.Boys = nil
		d.PlannedInterventions = nil
		d.ProposedAction = nil
		d.RiskSecurity = nil
		d.RiskSecurityConcern = ""
		d.IsSurgePersonnelDeployed = false
		d.SurgePersonnelDeployed = ""
	}
}
