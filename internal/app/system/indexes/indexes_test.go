package indexes_test

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dalemusser/fieldhub/internal/app/system/indexes"
	"github.com/dalemusser/fieldhub/internal/testutil"
)

func TestEnsureAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)

	// EnsureAll should succeed on a clean database
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("First EnsureAll failed: %v", err)
	}
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("Second EnsureAll failed: %v", err)
	}
}

func listIndexNames(t *testing.T, db *mongo.Database, coll string) map[string]bool {
	t.Helper()
	ctx := testutil.TestContext(t)

	cur, err := db.Collection(coll).Indexes().List(ctx)
	if err != nil {
		t.Fatalf("List indexes failed: %v", err)
	}
	defer cur.Close(ctx)

	names := make(map[string]bool)
	for cur.Next(ctx) {
		var idx bson.M
		if err := cur.Decode(&idx); err != nil {
			continue
		}
		if name, ok := idx["name"].(string); ok {
			names[name] = true
		}
	}
	return names
}

func TestEnsureAll_CreatesLocalUnitIndexes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	names := listIndexNames(t, db, "local_units")
	expected := []string{
		"uniq_localunits_country_type_nameci",
		"idx_localunits_country_type_status_nameci_id",
		"idx_localunits_nameci_id",
	}
	for _, name := range expected {
		if !names[name] {
			t.Errorf("expected index %q to exist on local_units collection", name)
		}
	}
}

func TestEnsureAll_CreatesChangeRequestIndexes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	names := listIndexNames(t, db, "change_requests")
	for _, name := range []string{"idx_changereq_unit_createdat", "idx_changereq_status_createdat"} {
		if !names[name] {
			t.Errorf("expected index %q to exist on change_requests collection", name)
		}
	}
}

func TestEnsureAll_UniqueIndexEnforced(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	flag := bson.M{"country_id": "KE", "local_unit_type": 2, "enabled": true}
	if _, err := db.Collection("externally_managed_flags").InsertOne(ctx, flag); err != nil {
		t.Fatalf("Insert flag failed: %v", err)
	}
	if _, err := db.Collection("externally_managed_flags").InsertOne(ctx, flag); err == nil {
		t.Error("expected duplicate key error for unique index on externally_managed_flags")
	}
}
