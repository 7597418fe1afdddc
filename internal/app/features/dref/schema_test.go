package dref

import (
	"testing"

	"github.com/dalemusser/fieldhub/internal/app/system/formschema"
	"github.com/dalemusser/fieldhub/internal/domain/models"
)

func minimalDoc(typeOfDref int) map[string]any {
	return map[string]any{
		"type_of_dref":     float64(typeOfDref),
		"type_of_onset":    float64(models.OnsetSudden),
		"title":            "Flooding in the river basin",
		"national_society": "64f000000000000000000001",
		"country_id":       "64f000000000000000000002",
	}
}

func TestValidateDrefDoc_RequiredFields(t *testing.T) {
	errs := validateDrefDoc(map[string]any{"type_of_dref": float64(models.DrefTypeResponse)})
	for _, field := range []string{"title", "national_society", "country_id", "type_of_onset"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("expected error on %q, got %v", field, errs)
		}
	}
}

func TestValidateDrefDoc_LoanSkipsOnset(t *testing.T) {
	doc := minimalDoc(models.DrefTypeLoan)
	delete(doc, "type_of_onset")
	if errs := validateDrefDoc(doc); !errs.Empty() {
		t.Errorf("unexpected errors: %v", errs)
	}
}

func TestValidateDrefDoc_LoanIgnoresOperationFields(t *testing.T) {
	doc := minimalDoc(models.DrefTypeLoan)
	doc["proposed_action"] = []any{
		map[string]any{"client_id": "pa-1"},
	}
	doc["women"] = float64(-5)
	if errs := validateDrefDoc(doc); !errs.Empty() {
		t.Errorf("unexpected errors on forced-absent fields: %v", errs)
	}
}

func TestValidateDrefDoc_NegativeNumbers(t *testing.T) {
	doc := minimalDoc(models.DrefTypeResponse)
	doc["num_affected"] = float64(-1)
	doc["boys"] = float64(-3)
	errs := validateDrefDoc(doc)
	if _, ok := errs["num_affected"]; !ok {
		t.Errorf("expected error on num_affected, got %v", errs)
	}
	if _, ok := errs["boys"]; !ok {
		t.Errorf("expected error on boys, got %v", errs)
	}
}

func TestValidateDrefDoc_KeyedListErrors(t *testing.T) {
	doc := minimalDoc(models.DrefTypeResponse)
	doc["proposed_action"] = []any{
		map[string]any{"client_id": "pa-1", "proposed_type": float64(models.ProposedEarlyAction), "total_budget": float64(1000)},
		map[string]any{"client_id": "pa-2", "proposed_type": float64(models.ProposedEarlyResponse)},
	}
	errs := validateDrefDoc(doc)
	list, ok := errs["proposed_action"].(map[string]formschema.ErrorTree)
	if !ok {
		t.Fatalf("expected keyed errors under proposed_action, got %v", errs)
	}
	if _, ok := list["pa-2"]; !ok {
		t.Errorf("expected error keyed by pa-2, got %v", list)
	}
	if _, ok := list["pa-1"]; ok {
		t.Errorf("pa-1 should be clean, got %v", list)
	}
}

func TestApplyForced_Loan(t *testing.T) {
	budget := 500
	d := models.DrefApplication{
		TypeOfDref:               models.DrefTypeLoan,
		OperationObjective:       "restore services",
		IsSurgePersonnelDeployed: true,
		ProposedAction:           []models.ProposedAction{{ClientID: "a", TotalBudget: &budget}},
		NationalSocietyActions:   []models.NationalSocietyAction{{ClientID: "b", Title: 1}},
	}
	applyForced(&d)
	if d.OperationObjective != "" || d.ProposedAction != nil || d.IsSurgePersonnelDeployed {
		t.Errorf("operation fields survived: %+v", d)
	}
	if d.NationalSocietyActions != nil {
		t.Errorf("actions fields survived: %+v", d.NationalSocietyActions)
	}
}

func TestApplyForced_ImminentKeepsOperation(t *testing.T) {
	d := models.DrefApplication{
		TypeOfDref:             models.DrefTypeImminent,
		OperationObjective:     "anticipatory action",
		NationalSocietyActions: []models.NationalSocietyAction{{ClientID: "b", Title: 1}},
	}
	applyForced(&d)
	if d.OperationObjective != "anticipatory action" {
		t.Error("operation fields should survive on imminent")
	}
	if d.NationalSocietyActions != nil {
		t.Errorf("actions fields survived: %+v", d.NationalSocietyActions)
	}
}
