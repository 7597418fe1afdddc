// internal/app/system/authz/authz.go
//
// Package authz holds the pure permission predicates. Every function is a
// boolean OR over explicit grants on the user document; nothing here reads
// the database or the request beyond pulling the user out of context.
package authz

import (
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dalemusser/fieldhub/internal/app/system/auth"
	"github.com/dalemusser/fieldhub/internal/domain/models"
)

// UserCtx returns the signed-in user and a found flag.
func UserCtx(r *http.Request) (*models.User, bool) {
	return auth.CurrentUser(r)
}

// IsSuperuser reports whether the current request's user is a superuser.
func IsSuperuser(r *http.Request) bool {
	u, ok := auth.CurrentUser(r)
	return ok && u.IsSuperuser
}

// IsCountryAdmin reports whether u administers the given country.
func IsCountryAdmin(u *models.User, countryID primitive.ObjectID) bool {
	if u == nil {
		return false
	}
	for _, c := range u.AdminCountries {
		if c == countryID {
			return true
		}
	}
	return false
}

// IsRegionAdmin reports whether u administers the given region.
func IsRegionAdmin(u *models.User, region int) bool {
	if u == nil {
		return false
	}
	for _, reg := range u.AdminRegions {
		if reg == region {
			return true
		}
	}
	return false
}

// IsGlobalValidator reports whether u may validate units of unitType in any
// country.
func IsGlobalValidator(u *models.User, unitType int) bool {
	if u == nil {
		return false
	}
	for _, t := range u.GlobalValidatorTypes {
		if t == unitType {
			return true
		}
	}
	return false
}

// IsRegionValidator reports whether u holds a region-scoped validator grant
// covering the given region and unit type. A grant with a zero type covers
// every type in its region.
func IsRegionValidator(u *models.User, region, unitType int) bool {
	if u == nil {
		return false
	}
	for _, g := range u.RegionValidators {
		if g.Region == region && (g.LocalUnitType == 0 || g.LocalUnitType == unitType) {
			return true
		}
	}
	return false
}

// IsCountryValidator reports whether u holds a country-scoped validator
// grant covering the given country and unit type. A grant with a zero type
// covers every type in its country.
func IsCountryValidator(u *models.User, countryID primitive.ObjectID, unitType int) bool {
	if u == nil {
		return false
	}
	for _, g := range u.CountryValidators {
		if g.CountryID == countryID && (g.LocalUnitType == 0 || g.LocalUnitType == unitType) {
			return true
		}
	}
	return false
}

// CanValidate reports whether u may validate a unit of unitType in the
// given country/region. It is the OR of every validator-granting role;
// callers still deny externally-managed units separately.
func CanValidate(u *models.User, countryID primitive.ObjectID, region, unitType int) bool {
	if u == nil {
		return false
	}
	return u.IsSuperuser ||
		IsCountryAdmin(u, countryID) ||
		IsRegionAdmin(u, region) ||
		IsGlobalValidator(u, unitType) ||
		IsRegionValidator(u, region, unitType) ||
		IsCountryValidator(u, countryID, unitType)
}

// HasAnyValidatorRole reports whether u holds any validator grant at all,
// regardless of scope.
func HasAnyValidatorRole(u *models.User) bool {
	if u == nil {
		return false
	}
	return u.IsSuperuser ||
		len(u.AdminCountries) > 0 ||
		len(u.AdminRegions) > 0 ||
		len(u.GlobalValidatorTypes) > 0 ||
		len(u.RegionValidators) > 0 ||
		len(u.CountryValidators) > 0
}
