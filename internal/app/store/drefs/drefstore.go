// internal/app/store/drefs/drefstore.go
package drefstore

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

type Store struct {
	c *mongo.Collection
}

// ErrStaleWrite is returned when an update carries a modified_at that no
// longer matches the stored document. Handlers translate it into the
// OBSOLETE_PAYLOAD field error.
var ErrStaleWrite = errors.New("dref application was modified since it was loaded")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("dref_applications")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.DrefApplication, error) {
	var d models.DrefApplication
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		return models.DrefApplication{}, err
	}
	return d, nil
}

func (s *Store) Create(ctx context.Context, d models.DrefApplication) (models.DrefApplication, error) {
	now := time.Now().UTC()
	d.ID = primitive.NewObjectID()
	d.CreatedAt = now
	d.ModifiedAt = now
	if _, err := s.c.InsertOne(ctx, d); err != nil {
		return models.DrefApplication{}, err
	}
	return d, nil
}

// UpdateIfUnmodified replaces the application only when the stored
// modified_at still equals expected. A mismatch means someone else wrote
// in between; the caller gets ErrStaleWrite and must confirm an overwrite.
// Mongo stores times at millisecond precision, so expected is compared
// truncated.
func (s *Store) UpdateIfUnmodified(ctx context.Context, d models.DrefApplication, expected time.Time) (models.DrefApplication, error) {
	cur, err := s.GetByID(ctx, d.ID)
	if err != nil {
		return models.DrefApplication{}, err
	}
	if !cur.ModifiedAt.Truncate(time.Millisecond).Equal(expected.Truncate(time.Millisecond)) {
		return models.DrefApplication{}, ErrStaleWrite
	}
	return s.update(ctx, d, cur)
}

// Overwrite replaces the application unconditionally. Used after the
// client has confirmed the conflict-resolution prompt.
func (s *Store) Overwrite(ctx context.Context, d models.DrefApplication) (models.DrefApplication, error) {
	cur, err := s.GetByID(ctx, d.ID)
	if err != nil {
		return models.DrefApplication{}, err
	}
	return s.update(ctx, d, cur)
}

func (s *Store) update(ctx context.Context, d, cur models.DrefApplication) (models.DrefApplication, error) {
	d.CreatedAt = cur.CreatedAt
	d.CreatedBy = cur.CreatedBy
	d.ModifiedAt = time.Now().UTC()
	if _, err := s.c.ReplaceOne(ctx, bson.M{"_id": d.ID}, d); err != nil {
		return models.DrefApplication{}, err
	}
	return d, nil
}

// ListByCountry returns applications for a country, newest first.
func (s *Store) ListByCountry(ctx context.Context, countryID primitive.ObjectID, limit int64) ([]models.DrefApplication, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)
	cur, err := s.c.Find(ctx, bson.M{"country_id": countryID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.DrefApplication
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
