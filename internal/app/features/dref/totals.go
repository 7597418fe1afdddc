// internal/app/features/dref/totals.go
package dref

import "github.com/dalemusser/fieldhub/internal/domain/models"

// Fixed cost components in CHF. Surge deployment carries a higher indirect
// rate than a non-surge operation.
const (
	surgeDeploymentCost = 10000
	surgeIndirectCost   = 5800
	indirectCost        = 5000
)

// recomputeDerived rewrites every derived field of the application from its
// inputs. Client-supplied values for these fields are discarded.
func recomputeDerived(d *models.DrefApplication) {
	sub := 0
	for _, pa := range d.ProposedAction {
		if pa.TotalBudget != nil {
			sub += *pa.TotalBudget
		}
	}
	d.SubTotalCost = sub

	if d.IsSurgePersonnelDeployed {
		surge := surgeDeploymentCost
		d.SurgeDeploymentCost = &surge
		d.IndirectCost = surgeIndirectCost
	} else {
		d.SurgeDeploymentCost = nil
		d.IndirectCost = indirectCost
	}

	d.TotalCost = d.SubTotalCost + d.IndirectCost
	if d.SurgeDeploymentCost != nil {
		d.TotalCost += *d.SurgeDeploymentCost
	}

	pop := 0
	for _, n := range []*int{d.Boys, d.Women, d.Girls, d.Men} {
		if n != nil {
			pop += *n
		}
	}
	d.TotalTargetedPopulation = pop
}
