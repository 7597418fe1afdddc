// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureCountries(ctx, db); err != nil {
		problems = append(problems, "countries: "+err.Error())
	}
	if err := ensureLocalUnits(ctx, db); err != nil {
		problems = append(problems, "local_units: "+err.Error())
	}
	if err := ensureChangeRequests(ctx, db); err != nil {
		problems = append(problems, "change_requests: "+err.Error())
	}
	if err := ensureBulkUploads(ctx, db); err != nil {
		problems = append(problems, "bulk_uploads: "+err.Error())
	}
	if err := ensureExternallyManagedFlags(ctx, db); err != nil {
		problems = append(problems, "externally_managed_flags: "+err.Error())
	}
	if err := ensureDrefApplications(ctx, db); err != nil {
		problems = append(problems, "dref_applications: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Core helper: reconcile a set of desired indexes for one collection         */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func sameBoolPtr(a, b *bool) bool {
	av := a != nil && *a
	bv := b != nil && *b
	return av == bv
}

// Best-effort duplicate-detector (works cross-vendors)
func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 { // E11000 duplicate key error index
				return true
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "E11000") || strings.Contains(strings.ToLower(s), "duplicate key")
}

// ensureIndexSet reconciles the desired index models against what the
// collection already has. An index with the same keys and options is
// reused (renamed if needed); an options mismatch drops and recreates.
func ensureIndexSet(ctx context.Context, coll *mongo.Collection, desired []mongo.IndexModel) error {
	existing := map[string]existingIndex{} // sig -> index
	cur, err := coll.Indexes().List(ctx)
	if err == nil {
		for cur.Next(ctx) {
			var idx existingIndex
			if err := cur.Decode(&idx); err != nil {
				zap.L().Warn("failed to decode existing index",
					zap.String("collection", coll.Name()), zap.Error(err))
				continue
			}
			existing[keySig(idx.Key)] = idx
		}
		cur.Close(ctx)
	}

	var errs []string
	for _, m := range desired {
		var desiredName string
		var desiredUnique *bool
		if m.Options != nil {
			if m.Options.Name != nil {
				desiredName = *m.Options.Name
			}
			desiredUnique = m.Options.Unique
		}
		sig := keySig(m.Keys.(bson.D))
		start := time.Now()

		if ex, ok := existing[sig]; ok {
			if sameBoolPtr(desiredUnique, ex.Unique) && (desiredName == "" || ex.Name == desiredName) {
				continue
			}
			// Name or options mismatch: drop and recreate.
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), desiredName, err))
				continue
			}
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			if isDuplicateKeyErr(err) && desiredUnique != nil && *desiredUnique {
				errs = append(errs, fmt.Sprintf("%s(%s): cannot create unique index (duplicates present)", coll.Name(), desiredName))
			} else {
				errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), desiredName, err))
			}
			continue
		}
		zap.L().Info("index ensured",
			zap.String("collection", coll.Name()),
			zap.String("name", desiredName),
			zap.String("keys", sig),
			zap.Bool("unique", desiredUnique != nil && *desiredUnique),
			zap.String("took", time.Since(start).String()))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Collection-specific index sets                                              */
/* -------------------------------------------------------------------------- */

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("users")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Email must be unique across all users.
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_users_email"),
		},
		{
			Keys:    bson.D{{Key: "full_name_ci", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_users_fullnameci_id"),
		},
	})
}

func ensureCountries(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("countries")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "iso", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_countries_iso"),
		},
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_countries_nameci_id"),
		},
		{
			Keys:    bson.D{{Key: "region", Value: 1}},
			Options: options.Index().SetName("idx_countries_region"),
		},
	})
}

func ensureLocalUnits(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("local_units")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// One branch name per country per type (case/diacritics folded).
		{
			Keys: bson.D{
				{Key: "country_id", Value: 1},
				{Key: "type", Value: 1},
				{Key: "local_branch_name_ci", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("uniq_localunits_country_type_nameci"),
		},
		// Map/table lists: country + type + status, sorted by folded name.
		{
			Keys: bson.D{
				{Key: "country_id", Value: 1},
				{Key: "type", Value: 1},
				{Key: "status", Value: 1},
				{Key: "local_branch_name_ci", Value: 1},
				{Key: "_id", Value: 1},
			},
			Options: options.Index().SetName("idx_localunits_country_type_status_nameci_id"),
		},
		// Keyset paging over the unfiltered list.
		{
			Keys:    bson.D{{Key: "local_branch_name_ci", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_localunits_nameci_id"),
		},
	})
}

func ensureChangeRequests(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("change_requests")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Latest-change-request lookups per unit.
		{
			Keys:    bson.D{{Key: "local_unit_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_changereq_unit_createdat"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_changereq_status_createdat"),
		},
	})
}

func ensureBulkUploads(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("bulk_uploads")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Worker queue scan: oldest pending first.
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("idx_bulkuploads_status_createdat"),
		},
		{
			Keys:    bson.D{{Key: "country_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_bulkuploads_country_createdat"),
		},
	})
}

func ensureExternallyManagedFlags(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("externally_managed_flags")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// One toggle per (country, type) pair.
		{
			Keys:    bson.D{{Key: "country_id", Value: 1}, {Key: "local_unit_type", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_extmanaged_country_type"),
		},
	})
}

func ensureDrefApplications(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("dref_applications")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "country_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_drefs_country_createdat"),
		},
		{
			Keys:    bson.D{{Key: "type_of_dref", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_drefs_type_createdat"),
		},
	})
}
