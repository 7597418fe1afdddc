package dref

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/dalemusser/fieldhub/internal/app/features/apierrors"
	"github.com/dalemusser/fieldhub/internal/domain/models"
	"github.com/dalemusser/fieldhub/internal/testutil"
)

func newDrefBody(typeOfDref int) map[string]any {
	return map[string]any{
		"type_of_dref":     typeOfDref,
		"type_of_onset":    models.OnsetSudden,
		"title":            "Flooding in the river basin",
		"national_society": "64f000000000000000000001",
		"country_id":       "64f000000000000000000002",
	}
}

func createDref(t *testing.T, h *Handler, body map[string]any) models.DrefApplication {
	t.Helper()
	req := testutil.NewJSONRequest(t, http.MethodPost, "/", body, testutil.RegularUser())
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var created models.DrefApplication
	testutil.DecodeJSON(t, rec, &created)
	return created
}

func TestHandleCreate_RecomputesDerivedFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewHandler(db, zap.NewNop())

	body := newDrefBody(models.DrefTypeResponse)
	body["is_surge_personnel_deployed"] = true
	body["proposed_action"] = []map[string]any{
		{"client_id": "pa-1", "proposed_type": models.ProposedEarlyAction, "total_budget": 1000},
		{"client_id": "pa-2", "proposed_type": models.ProposedEarlyResponse, "total_budget": 2000},
	}
	body["women"] = 10
	body["boys"] = 15
	// Client-supplied totals must be thrown away.
	body["sub_total_cost"] = 1
	body["total_cost"] = 1
	body["total_targeted_population"] = 1

	created := createDref(t, h, body)
	if created.SubTotalCost != 3000 {
		t.Errorf("sub_total_cost = %d, want 3000", created.SubTotalCost)
	}
	if created.IndirectCost != 5800 {
		t.Errorf("indirect_cost = %d, want 5800", created.IndirectCost)
	}
	if created.SurgeDeploymentCost == nil || *created.SurgeDeploymentCost != 10000 {
		t.Errorf("surge_deployment_cost = %v, want 10000", created.SurgeDeploymentCost)
	}
	if created.TotalCost != 18800 {
		t.Errorf("total_cost = %d, want 18800", created.TotalCost)
	}
	if created.TotalTargetedPopulation != 25 {
		t.Errorf("total_targeted_population = %d, want 25", created.TotalTargetedPopulation)
	}
}

func TestHandleCreate_LoanDropsOperationData(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewHandler(db, zap.NewNop())

	body := newDrefBody(models.DrefTypeLoan)
	delete(body, "type_of_onset")
	body["operation_objective"] = "should be dropped"
	body["is_surge_personnel_deployed"] = true

	created := createDref(t, h, body)
	if created.OperationObjective != "" {
		t.Errorf("operation_objective = %q, want empty", created.OperationObjective)
	}
	if created.IsSurgePersonnelDeployed {
		t.Error("surge flag should be cleared on loan")
	}
	if created.IndirectCost != 5000 {
		t.Errorf("indirect_cost = %d, want 5000", created.IndirectCost)
	}
}

func TestHandleCreate_MissingTitle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewHandler(db, zap.NewNop())

	body := newDrefBody(models.DrefTypeResponse)
	delete(body, "title")
	req := testutil.NewJSONRequest(t, http.MethodPost, "/", body, testutil.RegularUser())
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var env apierrors.Envelope
	testutil.DecodeJSON(t, rec, &env)
	if _, ok := env.FormErrors["title"]; !ok {
		t.Errorf("expected form error on title, got %v", env.FormErrors)
	}
}

func TestHandleUpdate_StaleModifiedAtRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewHandler(db, zap.NewNop())

	created := createDref(t, h, newDrefBody(models.DrefTypeResponse))

	created.Title = "Updated title"
	created.ModifiedAt = created.ModifiedAt.Add(-time.Minute)
	req := testutil.NewJSONRequest(t, http.MethodPatch, "/"+created.ID.Hex(), created, testutil.RegularUser())
	req = testutil.WithChiURLParam(req, "id", created.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleUpdate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var env apierrors.Envelope
	testutil.DecodeJSON(t, rec, &env)
	if env.FormErrors["modified_at"] != apierrors.ObsoletePayload {
		t.Errorf("form_errors.modified_at = %v, want %q", env.FormErrors["modified_at"], apierrors.ObsoletePayload)
	}
}

func TestHandleUpdate_FreshModifiedAtSucceeds(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewHandler(db, zap.NewNop())

	created := createDref(t, h, newDrefBody(models.DrefTypeResponse))

	created.Title = "Updated title"
	req := testutil.NewJSONRequest(t, http.MethodPatch, "/"+created.ID.Hex(), created, testutil.RegularUser())
	req = testutil.WithChiURLParam(req, "id", created.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleUpdate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var updated models.DrefApplication
	testutil.DecodeJSON(t, rec, &updated)
	if updated.Title != "Updated title" {
		t.Errorf("title = %q", updated.Title)
	}
	if !updated.ModifiedAt.After(created.ModifiedAt) {
		t.Errorf("modified_at not advanced: %v -> %v", created.ModifiedAt, updated.ModifiedAt)
	}
}

func TestHandleUpdate_ForceOverwritesStale(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewHandler(db, zap.NewNop())

	created := createDref(t, h, newDrefBody(models.DrefTypeResponse))

	created.Title = "Forced title"
	created.ModifiedAt = created.ModifiedAt.Add(-time.Minute)
	req := testutil.NewJSONRequest(t, http.MethodPatch, "/"+created.ID.Hex()+"?force=true", created, testutil.RegularUser())
	req = testutil.WithChiURLParam(req, "id", created.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleUpdate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var updated models.DrefApplication
	testutil.DecodeJSON(t, rec, &updated)
	if updated.Title != "Forced title" {
		t.Errorf("title = %q", updated.Title)
	}
}

func TestServeTabErrors(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewHandler(db, zap.NewNop())

	body := newDrefBody(models.DrefTypeResponse)
	body["proposed_action"] = []map[string]any{
		{"client_id": "pa-1", "proposed_type": models.ProposedEarlyAction, "total_budget": 1000},
	}
	created := createDref(t, h, body)

	req := testutil.NewJSONRequest(t, http.MethodGet, "/"+created.ID.Hex()+"/tab-errors?tab=eventDetail", nil, testutil.RegularUser())
	req = testutil.WithChiURLParam(req, "id", created.ID.Hex())
	rec := httptest.NewRecorder()
	h.ServeTabErrors(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Tabs    map[string]bool `json:"tabs"`
		NextTab string          `json:"next_tab"`
		PrevTab string          `json:"prev_tab"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	for tab, bad := range resp.Tabs {
		if bad {
			t.Errorf("tab %q unexpectedly in error", tab)
		}
	}
	if resp.NextTab != TabActions {
		t.Errorf("next_tab = %q, want %q", resp.NextTab, TabActions)
	}
	if resp.PrevTab != TabOverview {
		t.Errorf("prev_tab = %q, want %q", resp.PrevTab, TabOverview)
	}
}
