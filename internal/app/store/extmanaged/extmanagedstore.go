// internal/app/store/extmanaged/extmanagedstore.go
package extmanagedstore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dalemusser/fieldhub/internal/domain/models"
)

// Store holds the per-country, per-type externally-managed toggles.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("externally_managed_flags")}
}

// IsEnabled reports whether the (country, type) pair is flagged externally
// managed. A missing flag document means disabled.
func (s *Store) IsEnabled(ctx context.Context, countryID primitive.ObjectID, unitType int) (bool, error) {
	var flag models.ExternallyManagedFlag
	err := s.c.FindOne(ctx, bson.M{
		"country_id":      countryID,
		"local_unit_type": unitType,
	}).Decode(&flag)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return flag.Enabled, nil
}

// Set upserts the toggle for a (country, type) pair.
func (s *Store) Set(ctx context.Context, countryID primitive.ObjectID, unitType int, enabled bool) error {
	opts := options.Update().SetUpsert(true)
	_, err := s.c.UpdateOne(ctx,
		bson.M{"country_id": countryID, "local_unit_type": unitType},
		bson.M{
			"$set":         bson.M{"enabled": enabled, "updated_at": time.Now().UTC()},
			"$setOnInsert": bson.M{"_id": primitive.NewObjectID()},
		}, opts)
	return err
}

// ListEnabled returns every enabled flag; the feed sync walks this list.
func (s *Store) ListEnabled(ctx context.Context) ([]models.ExternallyManagedFlag, error) {
	cur, err := s.c.Find(ctx, bson.M{"enabled": true})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var flags []models.ExternallyManagedFlag
	if err := cur.All(ctx, &flags); err != nil {
		return nil, err
	}
	return flags, nil
}

// ListByCountry returns all flags for a country.
func (s *Store) ListByCountry(ctx context.Context, countryID primitive.ObjectID) ([]models.ExternallyManagedFlag, error) {
	cur, err := s.c.Find(ctx, bson.M{"country_id": countryID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var flags []models.ExternallyManagedFlag
	if err := cur.All(ctx, &flags); err != nil {
		return nil, err
	}
	return flags, nil
}
