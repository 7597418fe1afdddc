// Package localunitpolicy provides authorization policies for local units.
//
// Authorization rules:
//   - Superusers can edit, validate, and delete any unit
//   - Country admins, region admins, and per-type validators (global,
//     region, or country scope) can validate units within their scope
//   - Externally-managed units always deny edit and validate regardless
//     of role; they change only through the bulk import pipeline
//   - Guests can do nothing
package localunitpolicy

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dalemusser/fieldhub/internal/app/system/authz"
	"github.com/dalemusser/fieldhub/internal/domain/models"
)

// DenyReason explains a denied bulk-upload check; the priority order is
// fixed so clients always show the most complete message first.
type DenyReason string

const (
	DenyNone DenyReason = ""

	// Bulk upload needs both a validator permission and the
	// externally-managed flag. Both missing outranks permission missing,
	// which outranks flag missing.
	DenyBulkBoth       DenyReason = "You need validator permission for this local unit type, and the type must be set as externally managed for this country."
	DenyBulkPermission DenyReason = "You need validator permission for this local unit type to import local units."
	DenyBulkFlag       DenyReason = "This local unit type is not set as externally managed for this country."
)

// CanEdit reports whether u may submit a direct edit to the unit.
// Externally-managed units are never editable through the form workflow.
// Any other signed-in non-guest user may submit; edits from users without
// validator scope become pending change requests rather than direct writes.
func CanEdit(u *models.User, unit *models.LocalUnit) bool {
	if u == nil || u.IsGuest || unit == nil {
		return false
	}
	if unit.Status == models.StatusExternallyManaged {
		return false
	}
	return true
}

// EditBypassesReview reports whether u's edit applies immediately instead
// of producing a pending change request.
func EditBypassesReview(u *models.User, unit *models.LocalUnit, region int) bool {
	if !CanEdit(u, unit) {
		return false
	}
	return authz.CanValidate(u, unit.CountryID, region, unit.Type)
}

// CanValidate reports whether u may validate or revert the unit's pending
// change. Externally-managed units always deny, regardless of role.
func CanValidate(u *models.User, unit *models.LocalUnit, region int) bool {
	if u == nil || u.IsGuest || unit == nil {
		return false
	}
	if unit.Status == models.StatusExternallyManaged {
		return false
	}
	return authz.CanValidate(u, unit.CountryID, region, unit.Type)
}

// CanDelete reports whether u may deprecate the unit. Same scope as
// validation, but superusers may also deprecate externally-managed units
// to retire stale imported records.
func CanDelete(u *models.User, unit *models.LocalUnit, region int) bool {
	if u == nil || u.IsGuest || unit == nil {
		return false
	}
	if u.IsSuperuser {
		return true
	}
	if unit.Status == models.StatusExternallyManaged {
		return false
	}
	return authz.CanValidate(u, unit.CountryID, region, unit.Type)
}

// CanBulkUpload decides whether u may run a bulk import for the given
// country, region, and unit type. Both a validator permission for the type
// and the externally-managed flag for (country, type) must hold; when the
// check fails, the returned reason follows the fixed priority order:
// both missing, then permission missing, then flag missing.
func CanBulkUpload(u *models.User, countryID primitive.ObjectID, region, unitType int, flagEnabled bool) (bool, DenyReason) {
	hasPermission := u != nil && !u.IsGuest &&
		authz.CanValidate(u, countryID, region, unitType)

	switch {
	case !hasPermission && !flagEnabled:
		return false, DenyBulkBoth
	case !hasPermission:
		return false, DenyBulkPermission
	case !flagEnabled:
		return false, DenyBulkFlag
	}
	return true, DenyNone
}
