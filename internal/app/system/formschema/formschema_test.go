package formschema

import "testing"

func healthSchema() Schema {
	isHealth := FieldEquals("type", 2)
	notHealth := func(doc map[string]any) bool { return !isHealth(doc) }
	return Schema{Fields: []Field{
		{Name: "local_branch_name", Required: true, Validations: []Validation{NonEmptyString}},
		{Name: "focal_person_loc", Required: true, Rules: []Rule{ForceAbsent(isHealth)}},
		{Name: "phone", Rules: []Rule{ForceAbsent(isHealth)}},
		{Name: "health", Rules: []Rule{
			{When: isHealth, Required: RequiredTrue},
			ForceAbsent(notHealth),
		}},
	}}
}

func TestEvalConditionalForcing(t *testing.T) {
	s := healthSchema()

	eff := s.Eval(map[string]any{"type": 2.0})
	if !eff["health"].Required {
		t.Error("health should be required for health-care units")
	}
	if !eff["focal_person_loc"].Forced || eff["focal_person_loc"].ForcedValue != nil {
		t.Error("focal_person_loc should be forced absent for health-care units")
	}
	if !eff["phone"].Forced {
		t.Error("phone should be forced absent for health-care units")
	}

	eff = s.Eval(map[string]any{"type": 1.0})
	if !eff["health"].Forced || eff["health"].ForcedValue != nil {
		t.Error("health should be forced absent for non-health units")
	}
	if !eff["focal_person_loc"].Required || eff["focal_person_loc"].Forced {
		t.Error("focal_person_loc should be plainly required for non-health units")
	}
}

func TestValidateRequiredAndForced(t *testing.T) {
	s := healthSchema()

	errs := s.Validate(map[string]any{"type": 2.0, "local_branch_name": "Branch"})
	if _, ok := errs["health"]; !ok {
		t.Error("missing health sub-record should produce an error")
	}
	if _, ok := errs["focal_person_loc"]; ok {
		t.Error("forced-absent field must not be validated")
	}

	errs = s.Validate(map[string]any{
		"type":              1.0,
		"local_branch_name": "Branch",
		"focal_person_loc":  "Ana",
	})
	if !errs.Empty() {
		t.Errorf("expected clean document, got %v", errs)
	}
}

func TestValidateBlankString(t *testing.T) {
	s := Schema{Fields: []Field{
		{Name: "reason", Required: true, Validations: []Validation{NonEmptyString}},
	}}
	errs := s.Validate(map[string]any{"reason": "   "})
	if errs.Empty() {
		t.Error("whitespace-only reason should fail")
	}
}

func TestApplyForced(t *testing.T) {
	s := healthSchema()
	doc := map[string]any{
		"type":             2.0,
		"focal_person_loc": "Ana",
		"phone":            "555",
		"health":           map[string]any{"affiliation": 1.0},
	}
	s.ApplyForced(doc)
	if _, ok := doc["focal_person_loc"]; ok {
		t.Error("focal_person_loc should be stripped for health-care units")
	}
	if _, ok := doc["phone"]; ok {
		t.Error("phone should be stripped for health-care units")
	}
	if _, ok := doc["health"]; !ok {
		t.Error("health must survive ApplyForced for health-care units")
	}
}

func TestNumberBounds(t *testing.T) {
	max := MaxNumber(100)
	if msg := max(42.0); msg != "" {
		t.Errorf("42 within bound, got %q", msg)
	}
	if msg := max(101.0); msg == "" {
		t.Error("101 should exceed bound")
	}
	min := MinNumber(1)
	if msg := min(0.0); msg == "" {
		t.Error("0 should be under bound")
	}
}

func TestErrorTreeHasAnyUnder(t *testing.T) {
	errs := ErrorTree{}
	errs.Add("title", "This field is required.")
	child := ErrorTree{}
	child.Add("budget", "Expected a number.")
	errs.AddListElement("planned_interventions", "client-a", child)

	if !errs.HasAnyUnder([]string{"title"}) {
		t.Error("title error not surfaced")
	}
	if !errs.HasAnyUnder([]string{"planned_interventions"}) {
		t.Error("list element error not surfaced")
	}
	if errs.HasAnyUnder([]string{"event_date", "num_affected"}) {
		t.Error("unrelated fields reported as erroneous")
	}
	if errs.Empty() {
		t.Error("tree with entries reported empty")
	}
	if !(ErrorTree{}).Empty() {
		t.Error("fresh tree not empty")
	}
}
