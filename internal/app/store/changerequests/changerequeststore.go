// internal/app/store/changerequests/changerequeststore.go
package changerequeststore

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

// ErrNoPendingChange is returned when a validate or revert action targets a
// unit with no open change request.
var ErrNoPendingChange = errors.New("no pending change request for this local unit")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("change_requests")}
}

// Create opens a change request holding the unit's previous snapshot.
func (s *Store) Create(ctx context.Context, cr models.ChangeRequest) (models.ChangeRequest, error) {
	cr.ID = primitive.NewObjectID()
	cr.Status = models.ChangePending
	cr.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, cr); err != nil {
		return models.ChangeRequest{}, err
	}
	return cr, nil
}

// LatestForUnit returns the most recent change request for the unit, open
// or resolved. The review screen re-fetches this on every open.
func (s *Store) LatestForUnit(ctx context.Context, unitID primitive.ObjectID) (models.ChangeRequest, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	var cr models.ChangeRequest
	if err := s.c.FindOne(ctx, bson.M{"local_unit_id": unitID}, opts).Decode(&cr); err != nil {
		return models.ChangeRequest{}, err
	}
	return cr, nil
}

// PendingForUnit returns the open change request for the unit, or
// ErrNoPendingChange.
func (s *Store) PendingForUnit(ctx context.Context, unitID primitive.ObjectID) (models.ChangeRequest, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	var cr models.ChangeRequest
	err := s.c.FindOne(ctx, bson.M{
		"local_unit_id": unitID,
		"status":        models.ChangePending,
	}, opts).Decode(&cr)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.ChangeRequest{}, ErrNoPendingChange
	}
	if err != nil {
		return models.ChangeRequest{}, err
	}
	return cr, nil
}

// Resolve closes the change request as approved or rejected.
func (s *Store) Resolve(ctx context.Context, id primitive.ObjectID, st models.ChangeRequestStatus, reason string, by primitive.ObjectID) error {
	now := time.Now().UTC()
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.ChangePending},
		bson.M{"$set": bson.M{
			"status":           st,
			"rejection_reason": reason,
			"resolved_at":      now,
			"resolved_by":      by,
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNoPendingChange
	}
	return nil
}

// Delete removes a single change request. Used to compensate when the
// unit write that the request was opened for fails.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// Reopen puts a resolved change request back to pending, clearing the
// resolution fields. Used to compensate when the restore write of a
// revert fails after the request was already marked rejected.
func (s *Store) Reopen(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{
		"$set":   bson.M{"status": models.ChangePending, "rejection_reason": ""},
		"$unset": bson.M{"resolved_at": "", "resolved_by": ""},
	})
	return err
}

// DeleteForUnit removes all change requests for a unit, used when the unit
// itself is deprecated.
func (s *Store) DeleteForUnit(ctx context.Context, unitID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"local_unit_id": unitID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
