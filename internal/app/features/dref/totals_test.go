package dref

import (
	"testing"

	"github.com/dalemusser/fieldhub/internal/domain/models"
)

func intp(n int) *int { return &n }

func TestRecomputeDerived_SurgeDeployed(t *testing.T) {
	d := models.DrefApplication{
		IsSurgePersonnelDeployed: true,
		ProposedAction: []models.ProposedAction{
			{ClientID: "a", TotalBudget: intp(1000)},
			{ClientID: "b", TotalBudget: intp(2000)},
		},
	}
	recomputeDerived(&d)

	if d.SubTotalCost != 3000 {
		t.Errorf("sub_total_cost = %d, want 3000", d.SubTotalCost)
	}
	if d.IndirectCost != 5800 {
		t.Errorf("indirect_cost = %d, want 5800", d.IndirectCost)
	}
	if d.SurgeDeploymentCost == nil || *d.SurgeDeploymentCost != 10000 {
		t.Errorf("surge_deployment_cost = %v, want 10000", d.SurgeDeploymentCost)
	}
	if d.TotalCost != 18800 {
		t.Errorf("total_cost = %d, want 18800", d.TotalCost)
	}
}

func TestRecomputeDerived_NoSurge(t *testing.T) {
	d := models.DrefApplication{
		ProposedAction: []models.ProposedAction{
			{ClientID: "a", TotalBudget: intp(1000)},
			{ClientID: "b", TotalBudget: intp(2000)},
		},
	}
	recomputeDerived(&d)

	if d.SubTotalCost != 3000 {
		t.Errorf("sub_total_cost = %d, want 3000", d.SubTotalCost)
	}
	if d.IndirectCost != 5000 {
		t.Errorf("indirect_cost = %d, want 5000", d.IndirectCost)
	}
	if d.SurgeDeploymentCost != nil {
		t.Errorf("surge_deployment_cost = %v, want absent", *d.SurgeDeploymentCost)
	}
	if d.TotalCost != 8000 {
		t.Errorf("total_cost = %d, want 8000", d.TotalCost)
	}
}

func TestRecomputeDerived_DiscardsClientValues(t *testing.T) {
	surge := 99999
	d := models.DrefApplication{
		SubTotalCost:        12345,
		IndirectCost:        12345,
		SurgeDeploymentCost: &surge,
		TotalCost:           12345,
	}
	recomputeDerived(&d)

	if d.SubTotalCost != 0 {
		t.Errorf("sub_total_cost = %d, want 0", d.SubTotalCost)
	}
	if d.IndirectCost != 5000 {
		t.Errorf("indirect_cost = %d, want 5000", d.IndirectCost)
	}
	if d.SurgeDeploymentCost != nil {
		t.Errorf("surge_deployment_cost = %v, want absent", *d.SurgeDeploymentCost)
	}
	if d.TotalCost != 5000 {
		t.Errorf("total_cost = %d, want 5000", d.TotalCost)
	}
}

func TestRecomputeDerived_NilBudgetsSkipped(t *testing.T) {
	d := models.DrefApplication{
		ProposedAction: []models.ProposedAction{
			{ClientID: "a", TotalBudget: intp(500)},
			{ClientID: "b"},
		},
	}
	recomputeDerived(&d)
	if d.SubTotalCost != 500 {
		t.Errorf("sub_total_cost = %d, want 500", d.SubTotalCost)
	}
}

func TestRecomputeDerived_TargetedPopulation(t *testing.T) {
	d := models.DrefApplication{
		Women: intp(10),
		Men:   intp(20),
		Girls: intp(5),
	}
	recomputeDerived(&d)
	if d.TotalTargetedPopulation != 35 {
		t.Errorf("total_targeted_population = %d, want 35", d.TotalTargetedPopulation)
	}

	d = models.DrefApplication{TotalTargetedPopulation: 777}
	recomputeDerived(&d)
	if d.TotalTargetedPopulation != 0 {
		t.Errorf("total_targeted_population = %d, want 0", d.TotalTargetedPopulation)
	}
}
