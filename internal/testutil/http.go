// internal/testutil/http.go
package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dalemusser/fieldhub/internal/app/system/auth"
	"github.com/dalemusser/fieldhub/internal/domain/models"
)

// SuperuserUser returns a superuser account for handler tests.
func SuperuserUser() *models.User {
	return &models.User{
		ID:          primitive.NewObjectID(),
		FullName:    "Test Superuser",
		Email:       "super@test.example",
		IsSuperuser: true,
	}
}

// GuestUser returns a guest account for handler tests.
func GuestUser() *models.User {
	return &models.User{
		ID:       primitive.NewObjectID(),
		FullName: "Test Guest",
		Email:    "guest@test.example",
		IsGuest:  true,
	}
}

// CountryValidatorUser returns a user who may validate the given unit type
// in the given country.
func CountryValidatorUser(countryID primitive.ObjectID, unitType int) *models.User {
	return &models.User{
		ID:       primitive.NewObjectID(),
		FullName: "Test Validator",
		Email:    "validator@test.example",
		CountryValidators: []models.CountryValidator{
			{CountryID: countryID, LocalUnitType: unitType},
		},
	}
}

// RegularUser returns a signed-in user with no grants.
func RegularUser() *models.User {
	return &models.User{
		ID:       primitive.NewObjectID(),
		FullName: "Test User",
		Email:    "user@test.example",
	}
}

// NewJSONRequest builds a request with body marshaled as JSON and the user
// (if non-nil) placed in context.
func NewJSONRequest(t *testing.T, method, target string, body any, u *models.User) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	r := httptest.NewRequest(method, target, &buf)
	r.Header.Set("Content-Type", "application/json")
	if u != nil {
		r = auth.WithUser(r, u)
	}
	return r
}

// DecodeJSON unmarshals a recorded response body into out.
func DecodeJSON(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response body %q: %v", rec.Body.String(), err)
	}
}
