// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dalemusser/fieldhub/internal/domain/models"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateCountry creates a test country in the given region.
func (f *Fixtures) CreateCountry(ctx context.Context, name string, region int) models.Country {
	f.t.Helper()

	c := models.Country{
		ID:      primitive.NewObjectID(),
		Name:    name,
		NameCI:  text.Fold(name),
		ISO:     text.Fold(name[:2]),
		Region:  region,
		Society: name + " Red Cross",
	}
	if _, err := f.db.Collection("countries").InsertOne(ctx, c); err != nil {
		f.t.Fatalf("create country: %v", err)
	}
	return c
}

// CreateLocalUnit creates a test local unit in the given country.
func (f *Fixtures) CreateLocalUnit(ctx context.Context, country models.Country, unitType int, status models.ValidationStatus) models.LocalUnit {
	f.t.Helper()

	now := time.Now().UTC()
	name := "Branch " + primitive.NewObjectID().Hex()[:8]
	u := models.LocalUnit{
		ID:                primitive.NewObjectID(),
		CountryID:         country.ID,
		RegionID:          country.Region,
		Type:              unitType,
		LocalBranchName:   name,
		LocalBranchNameCI: text.Fold(name),
		FocalPersonLoc:    "Test Focal Person",
		Status:            status,
		CreatedAt:         now,
		ModifiedAt:        now,
	}
	if unitType == models.TypeHealthCare {
		u.FocalPersonLoc = ""
		u.Health = &models.HealthProfile{Affiliation: 1, FocalPointPosition: "Manager"}
	}
	if _, err := f.db.Collection("local_units").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("create local unit: %v", err)
	}
	return u
}

// CreateUser creates a test user; mutate adjusts grants before insert.
func (f *Fixtures) CreateUser(ctx context.Context, name string, mutate func(*models.User)) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:         primitive.NewObjectID(),
		FullName:   name,
		FullNameCI: text.Fold(name),
		Email:      text.Fold(name) + "@test.example",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if mutate != nil {
		mutate(&u)
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("create user: %v", err)
	}
	return u
}
