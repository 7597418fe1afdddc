// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a signed-in platform account.
//
// Validator scope is carried on the user document rather than in a separate
// membership collection: a user may validate a local unit when the unit's
// country falls under one of their admin countries or regions, or when one
// of the *Validators / GlobalValidatorTypes entries matches the unit.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName   string             `bson:"full_name" json:"full_name"`
	FullNameCI string             `bson:"full_name_ci" json:"-"` // lowercase, diacritics-stripped
	Email      string             `bson:"email" json:"email"`

	IsSuperuser bool `bson:"is_superuser" json:"is_superuser"`
	IsGuest     bool `bson:"is_guest" json:"is_guest"`

	// Scope for admin-level validation rights.
	AdminCountries []primitive.ObjectID `bson:"admin_countries,omitempty" json:"admin_countries,omitempty"`
	AdminRegions   []int                `bson:"admin_regions,omitempty" json:"admin_regions,omitempty"`

	// Validator grants. GlobalValidatorTypes holds local-unit type codes the
	// user may validate anywhere; the per-region and per-country grants pair
	// a scope with a type code.
	GlobalValidatorTypes []int               `bson:"global_validator_types,omitempty" json:"global_validator_types,omitempty"`
	RegionValidators     []RegionValidator   `bson:"region_validators,omitempty" json:"region_validators,omitempty"`
	CountryValidators    []CountryValidator  `bson:"country_validators,omitempty" json:"country_validators,omitempty"`

	// Visit-analytics grants. Superusers see the global scope implicitly;
	// everyone else needs an explicit grant.
	AnalyticsGlobal  bool  `bson:"analytics_global,omitempty" json:"analytics_global,omitempty"`
	AnalyticsLive    bool  `bson:"analytics_live,omitempty" json:"analytics_live,omitempty"`
	AnalyticsRegions []int `bson:"analytics_regions,omitempty" json:"analytics_regions,omitempty"`

	// Profile.
	OrgType   string              `bson:"org_type,omitempty" json:"org_type,omitempty"`
	CountryID *primitive.ObjectID `bson:"country_id,omitempty" json:"country_id,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// RegionValidator grants validation rights for one local-unit type across a
// region. A zero LocalUnitType means every type in the region.
type RegionValidator struct {
	Region        int `bson:"region" json:"region"`
	LocalUnitType int `bson:"local_unit_type,omitempty" json:"local_unit_type,omitempty"`
}

// CountryValidator grants validation rights for one local-unit type in a
// single country. A zero LocalUnitType means every type in the country.
type CountryValidator struct {
	CountryID     primitive.ObjectID `bson:"country_id" json:"country_id"`
	LocalUnitType int                `bson:"local_unit_type,omitempty" json:"local_unit_type,omitempty"`
}
