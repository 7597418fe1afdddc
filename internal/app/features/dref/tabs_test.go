package dref

import (
	"testing"

	"github.com/dalemusser/fieldhub/internal/app/system/formschema"
	"github.com/dalemusser/fieldhub/internal/domain/models"
)

func TestTabsFor(t *testing.T) {
	tests := []struct {
		name       string
		typeOfDref int
		want       []string
	}{
		{"loan skips actions and operation", models.DrefTypeLoan,
			[]string{TabOverview, TabEventDetail, TabSubmission}},
		{"imminent skips actions", models.DrefTypeImminent,
			[]string{TabOverview, TabEventDetail, TabOperation, TabSubmission}},
		{"response has all tabs", models.DrefTypeResponse,
			[]string{TabOverview, TabEventDetail, TabActions, TabOperation, TabSubmission}},
		{"assessment has all tabs", models.DrefTypeAssessment,
			[]string{TabOverview, TabEventDetail, TabActions, TabOperation, TabSubmission}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TabsFor(tt.typeOfDref)
			if len(got) != len(tt.want) {
				t.Fatalf("TabsFor(%d) = %v, want %v", tt.typeOfDref, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("TabsFor(%d)[%d] = %q, want %q", tt.typeOfDref, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNextTab(t *testing.T) {
	tests := []struct {
		typeOfDref int
		current    string
		want       string
	}{
		{models.DrefTypeLoan, TabOverview, TabEventDetail},
		{models.DrefTypeLoan, TabEventDetail, TabSubmission},
		{models.DrefTypeLoan, TabSubmission, ""},
		{models.DrefTypeImminent, TabEventDetail, TabOperation},
		{models.DrefTypeImminent, TabOperation, TabSubmission},
		{models.DrefTypeResponse, TabEventDetail, TabActions},
		{models.DrefTypeResponse, TabActions, TabOperation},
		{models.DrefTypeResponse, TabOperation, TabSubmission},
		{models.DrefTypeResponse, "bogus", ""},
	}
	for _, tt := range tests {
		if got := NextTab(tt.current, tt.typeOfDref); got != tt.want {
			t.Errorf("NextTab(%q, %d) = %q, want %q", tt.current, tt.typeOfDref, got, tt.want)
		}
	}
}

func TestPrevTab(t *testing.T) {
	tests := []struct {
		typeOfDref int
		current    string
		want       string
	}{
		{models.DrefTypeLoan, TabSubmission, TabEventDetail},
		{models.DrefTypeLoan, TabOverview, ""},
		{models.DrefTypeImminent, TabOperation, TabEventDetail},
		{models.DrefTypeImminent, TabSubmission, TabOperation},
		{models.DrefTypeResponse, TabOperation, TabActions},
		{models.DrefTypeResponse, TabSubmission, TabOperation},
	}
	for _, tt := range tests {
		if got := PrevTab(tt.current, tt.typeOfDref); got != tt.want {
			t.Errorf("PrevTab(%q, %d) = %q, want %q", tt.current, tt.typeOfDref, got, tt.want)
		}
	}
}

func TestTabErrors(t *testing.T) {
	errs := formschema.ErrorTree{}
	errs.Add("title", "This field is required.")
	errs.Add("operation_objective", "This field is required.")

	got := TabErrors(errs, models.DrefTypeResponse)
	if !got[TabOverview] {
		t.Error("overview should be in error")
	}
	if !got[TabOperation] {
		t.Error("operation should be in error")
	}
	if got[TabEventDetail] || got[TabActions] || got[TabSubmission] {
		t.Errorf("unexpected tab errors: %v", got)
	}
}

func TestTabErrors_OnlyApplicableTabs(t *testing.T) {
	errs := formschema.ErrorTree{}
	errs.Add("title", "This field is required.")

	got := TabErrors(errs, models.DrefTypeLoan)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3: %v", len(got), got)
	}
	if _, ok := got[TabActions]; ok {
		t.Error("loan report should not include the actions tab")
	}
	if _, ok := got[TabOperation]; ok {
		t.Error("loan report should not include the operation tab")
	}
}
