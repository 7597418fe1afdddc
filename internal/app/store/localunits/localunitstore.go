// internal/app/store/localunits/localunitstore.go
package localunitstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
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

var (
	ErrDuplicateLocalUnit = errors.New("a local unit with this name already exists in the country")

	// ErrExternallyManaged guards direct writes at the store level too;
	// externally-managed units change only through the bulk import path.
	ErrExternallyManaged = errors.New("local unit is externally managed")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("local_units")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.LocalUnit, error) {
	var u models.LocalUnit
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return models.LocalUnit{}, err
	}
	return u, nil
}

func (s *Store) Create(ctx context.Context, u models.LocalUnit) (models.LocalUnit, error) {
	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	foldNames(&u)
	if u.Status == 0 {
		u.Status = models.StatusUnvalidated
	}
	u.CreatedAt = now
	u.ModifiedAt = now
	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.LocalUnit{}, ErrDuplicateLocalUnit
		}
		return models.LocalUnit{}, err
	}
	return u, nil
}

// Replace overwrites the unit's data fields in place, preserving identity
// and creation audit fields. Externally-managed units are rejected.
func (s *Store) Replace(ctx context.Context, u models.LocalUnit) error {
	cur, err := s.GetByID(ctx, u.ID)
	if err != nil {
		return err
	}
	if cur.Status == models.StatusExternallyManaged {
		return ErrExternallyManaged
	}
	foldNames(&u)
	u.CreatedAt = cur.CreatedAt
	u.CreatedBy = cur.CreatedBy
	u.ModifiedAt = time.Now().UTC()
	_, err = s.c.ReplaceOne(ctx, bson.M{"_id": u.ID}, u)
	if wafflemongo.IsDup(err) {
		return ErrDuplicateLocalUnit
	}
	return err
}

// FindByName returns the unit matching the folded branch name within
// (country, type); the unique name index makes this at most one document.
func (s *Store) FindByName(ctx context.Context, countryID primitive.ObjectID, unitType int, name string) (models.LocalUnit, error) {
	var u models.LocalUnit
	err := s.c.FindOne(ctx, bson.M{
		"country_id":           countryID,
		"type":                 unitType,
		"local_branch_name_ci": text.Fold(name),
	}).Decode(&u)
	if err != nil {
		return models.LocalUnit{}, err
	}
	return u, nil
}

// ReplaceImported overwrites a unit through the bulk import pipeline, the
// only path allowed to touch externally-managed records.
func (s *Store) ReplaceImported(ctx context.Context, u models.LocalUnit) error {
	foldNames(&u)
	u.Status = models.StatusExternallyManaged
	u.ModifiedAt = time.Now().UTC()
	opts := options.Replace().SetUpsert(true)
	_, err := s.c.ReplaceOne(ctx, bson.M{"_id": u.ID}, u, opts)
	if wafflemongo.IsDup(err) {
		return ErrDuplicateLocalUnit
	}
	return err
}

func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, st models.ValidationStatus, by primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"status":      st,
		"modified_at": time.Now().UTC(),
		"modified_by": by,
	}})
	return err
}

// Deprecate soft-deletes the unit with a reason code and explanation.
func (s *Store) Deprecate(ctx context.Context, id primitive.ObjectID, reason int, explanation string, by primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"is_deprecated":         true,
		"deprecate_reason":      reason,
		"deprecate_explanation": explanation,
		"modified_at":           time.Now().UTC(),
		"modified_by":           by,
	}})
	return err
}

// Filter narrows List and ListAll. Zero values mean "any".
type Filter struct {
	CountryID primitive.ObjectID
	Type      int
	Status    models.ValidationStatus
	Search    string
	Validated *bool // shortcut filter: true = validated only, false = everything but validated
}

func (f Filter) query() bson.M {
	q := bson.M{"is_deprecated": bson.M{"$ne": true}}
	if !f.CountryID.IsZero() {
		q["country_id"] = f.CountryID
	}
	if f.Type != 0 {
		q["type"] = f.Type
	}
	if f.Status != 0 {
		q["status"] = f.Status
	} else if f.Validated != nil {
		if *f.Validated {
			q["status"] = models.StatusValidated
		} else {
			q["status"] = bson.M{"$ne": models.StatusValidated}
		}
	}
	if ci := text.Fold(f.Search); ci != "" {
		q["$or"] = bson.A{
			bson.M{"local_branch_name_ci": bson.M{"$regex": ci}},
			bson.M{"english_branch_name_ci": bson.M{"$regex": ci}},
		}
	}
	return q
}

// List returns one keyset page of units sorted by folded branch name.
// Callers fetch limit+1 rows and trim with the paging helpers.
func (s *Store) List(ctx context.Context, f Filter, window bson.M, sortOrder int, limit int64) ([]models.LocalUnit, error) {
	q := f.query()
	if window != nil {
		q = bson.M{"$and": bson.A{q, window}}
	}
	find := options.Find().
		SetSort(bson.D{{Key: "local_branch_name_ci", Value: sortOrder}, {Key: "_id", Value: sortOrder}}).
		SetLimit(limit)
	cur, err := s.c.Find(ctx, q, find)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var units []models.LocalUnit
	if err := cur.All(ctx, &units); err != nil {
		return nil, err
	}
	return units, nil
}

// ListAll returns every matching unit, used by the spreadsheet export.
func (s *Store) ListAll(ctx context.Context, f Filter) ([]models.LocalUnit, error) {
	find := options.Find().SetSort(bson.D{{Key: "local_branch_name_ci", Value: 1}})
	cur, err := s.c.Find(ctx, f.query(), find)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var units []models.LocalUnit
	if err := cur.All(ctx, &units); err != nil {
		return nil, err
	}
	return units, nil
}

func (s *Store) CountByStatus(ctx context.Context, countryID primitive.ObjectID, st models.ValidationStatus) (int64, error) {
	q := bson.M{"status": st, "is_deprecated": bson.M{"$ne": true}}
	if !countryID.IsZero() {
		q["country_id"] = countryID
	}
	return s.c.CountDocuments(ctx, q)
}

func foldNames(u *models.LocalUnit) {
	u.LocalBranchNameCI = text.Fold(u.LocalBranchName)
	u.EnglishBranchNameCI = text.Fold(u.EnglishBranchName)
}
