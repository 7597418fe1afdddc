package authz

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dalemusser/fieldhub/internal/domain/models"
)

var (
	kenya  = primitive.NewObjectID()
	uganda = primitive.NewObjectID()
)

func TestCanValidateScopes(t *testing.T) {
	tests := []struct {
		name     string
		user     *models.User
		country  primitive.ObjectID
		region   int
		unitType int
		want     bool
	}{
		{"nil user", nil, kenya, models.RegionAfrica, models.TypeHealthCare, false},
		{"no grants", &models.User{}, kenya, models.RegionAfrica, models.TypeHealthCare, false},
		{"superuser", &models.User{IsSuperuser: true}, kenya, models.RegionAfrica, models.TypeHealthCare, true},
		{
			"country admin matching",
			&models.User{AdminCountries: []primitive.ObjectID{kenya}},
			kenya, models.RegionAfrica, models.TypeHealthCare, true,
		},
		{
			"country admin other country",
			&models.User{AdminCountries: []primitive.ObjectID{uganda}},
			kenya, models.RegionAfrica, models.TypeHealthCare, false,
		},
		{
			"region admin matching",
			&models.User{AdminRegions: []int{models.RegionAfrica}},
			kenya, models.RegionAfrica, models.TypeAdministrative, true,
		},
		{
			"global validator for type",
			&models.User{GlobalValidatorTypes: []int{models.TypeHealthCare}},
			kenya, models.RegionAfrica, models.TypeHealthCare, true,
		},
		{
			"global validator wrong type",
			&models.User{GlobalValidatorTypes: []int{models.TypeAdministrative}},
			kenya, models.RegionAfrica, models.TypeHealthCare, false,
		},
		{
			"region validator typed",
			&models.User{RegionValidators: []models.RegionValidator{
				{Region: models.RegionAfrica, LocalUnitType: models.TypeHealthCare},
			}},
			kenya, models.RegionAfrica, models.TypeHealthCare, true,
		},
		{
			"region validator untyped covers all types",
			&models.User{RegionValidators: []models.RegionValidator{{Region: models.RegionAfrica}}},
			kenya, models.RegionAfrica, models.TypeEmergency, true,
		},
		{
			"region validator wrong region",
			&models.User{RegionValidators: []models.RegionValidator{{Region: models.RegionEurope}}},
			kenya, models.RegionAfrica, models.TypeHealthCare, false,
		},
		{
			"country validator typed",
			&models.User{CountryValidators: []models.CountryValidator{
				{CountryID: kenya, LocalUnitType: models.TypeHealthCare},
			}},
			kenya, models.RegionAfrica, models.TypeHealthCare, true,
		},
		{
			"country validator wrong type",
			&models.User{CountryValidators: []models.CountryValidator{
				{CountryID: kenya, LocalUnitType: models.TypeAdministrative},
			}},
			kenya, models.RegionAfrica, models.TypeHealthCare, false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanValidate(tt.user, tt.country, tt.region, tt.unitType)
			if got != tt.want {
				t.Errorf("CanValidate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasAnyValidatorRole(t *testing.T) {
	if HasAnyValidatorRole(nil) {
		t.Error("nil user should have no validator role")
	}
	if HasAnyValidatorRole(&models.User{}) {
		t.Error("empty user should have no validator role")
	}
	if !HasAnyValidatorRole(&models.User{GlobalValidatorTypes: []int{models.TypeHealthCare}}) {
		t.Error("global validator grant not detected")
	}
	if !HasAnyValidatorRole(&models.User{IsSuperuser: true}) {
		t.Error("superuser not detected")
	}
}
