// internal/app/system/workers/imported.go
package workers

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	localunitstore "github.com/dalemusser/fieldhub/internal/app/store/localunits"
	"github.com/dalemusser/fieldhub/internal/domain/models"
)

// upsertImportedUnit writes one imported unit, matching existing records by
// branch name within (country, type). Both the bulk import and the feed
// sync land their rows through this path, which forces
// EXTERNALLY_MANAGED status at the store.
func upsertImportedUnit(ctx context.Context, units *localunitstore.Store, u *models.LocalUnit) error {
	existing, err := units.FindByName(ctx, u.CountryID, u.Type, u.LocalBranchName)
	switch {
	case err == nil:
		u.ID = existing.ID
		u.CreatedAt = existing.CreatedAt
		u.CreatedBy = existing.CreatedBy
	case errors.Is(err, mongo.ErrNoDocuments):
		u.ID = primitive.NewObjectID()
		u.CreatedAt = time.Now().UTC()
	default:
		return err
	}
	return units.ReplaceImported(ctx, *u)
}
