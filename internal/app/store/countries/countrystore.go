// internal/app/store/countries/countrystore.go
package countrystore

import (
	"context"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dalemusser/fieldhub/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("countries")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Country, error) {
	var c models.Country
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return models.Country{}, err
	}
	return c, nil
}

// GetByISO looks up a country by its two-letter code, case-insensitive.
func (s *Store) GetByISO(ctx context.Context, iso string) (models.Country, error) {
	var c models.Country
	if err := s.c.FindOne(ctx, bson.M{"iso": text.Fold(iso)}).Decode(&c); err != nil {
		return models.Country{}, err
	}
	return c, nil
}

// ListAll returns every country sorted by folded name.
func (s *Store) ListAll(ctx context.Context) ([]models.Country, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Country
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Upsert writes a country keyed by ISO code, used by the reference-data
// sync worker.
func (s *Store) Upsert(ctx context.Context, c models.Country) error {
	c.NameCI = text.Fold(c.Name)
	c.ISO = text.Fold(c.ISO)
	opts := options.Update().SetUpsert(true)
	_, err := s.c.UpdateOne(ctx,
		bson.M{"iso": c.ISO},
		bson.M{
			"$set": bson.M{
				"name":         c.Name,
				"name_ci":      c.NameCI,
				"iso3":         c.ISO3,
				"region":       c.Region,
				"society_name": c.Society,
			},
			"$setOnInsert": bson.M{"_id": primitive.NewObjectID()},
		}, opts)
	return err
}
