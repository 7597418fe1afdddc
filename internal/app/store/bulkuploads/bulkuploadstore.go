// internal/app/store/bulkuploads/bulkuploadstore.go
package bulkuploadstore

import (
	"context"
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

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("bulk_uploads")}
}

// Create records a new import job in the pending state.
func (s *Store) Create(ctx context.Context, job models.BulkUpload) (models.BulkUpload, error) {
	job.ID = primitive.NewObjectID()
	job.Status = models.BulkPending
	job.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, job); err != nil {
		return models.BulkUpload{}, err
	}
	return job, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.BulkUpload, error) {
	var job models.BulkUpload
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&job); err != nil {
		return models.BulkUpload{}, err
	}
	return job, nil
}

// Complete closes the job with final counts. errFile may be nil when every
// row imported cleanly.
func (s *Store) Complete(ctx context.Context, id primitive.ObjectID, st models.BulkUploadStatus, succeeded, failed int, errMsg string, errFile []byte) error {
	now := time.Now().UTC()
	set := bson.M{
		"status":        st,
		"success_count": succeeded,
		"failed_count":  failed,
		"error_message": errMsg,
		"completed_at":  now,
	}
	if len(errFile) > 0 {
		set["error_file"] = errFile
		set["has_error_file"] = true
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}

// NextPending claims the oldest pending job for processing. Returns
// mongo.ErrNoDocuments when the queue is empty.
func (s *Store) NextPending(ctx context.Context) (models.BulkUpload, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: 1}})
	var job models.BulkUpload
	if err := s.c.FindOne(ctx, bson.M{"status": models.BulkPending}, opts).Decode(&job); err != nil {
		return models.BulkUpload{}, err
	}
	return job, nil
}

// ListByCountry returns recent jobs for a country, newest first.
func (s *Store) ListByCountry(ctx context.Context, countryID primitive.ObjectID, limit int64) ([]models.BulkUpload, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetProjection(bson.M{"file_data": 0, "error_file": 0})
	cur, err := s.c.Find(ctx, bson.M{"country_id": countryID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var jobs []models.BulkUpload
	if err := cur.All(ctx, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}
