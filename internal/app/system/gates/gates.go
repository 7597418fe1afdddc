// Package gates provides authorization gate functions for HTTP handlers.
// Gates check authentication and authorization, writing the JSON error
// envelope when checks fail.
//
// # Three-Tier Authorization Pattern
//
// FieldHub uses a three-tier authorization approach:
//
//  1. Route-Level Middleware (auth.RequireSignedIn, auth.RequireNonGuest)
//     Applied in routes.go files for coarse-grained access control.
//     When middleware handles the check, handlers don't need gates.
//
//  2. Handler-Level Gates (this package)
//     Used in handlers that need checks WITHOUT route-level middleware, or
//     stricter requirements than the route group. Gates write the error
//     response and return the user.
//
//  3. Policy Layer (internal/app/policy/*)
//     Used for resource-specific authorization that needs the target
//     record, e.g. localunitpolicy.CanValidate for one local unit.
//     Policies return (bool, reason) - callers handle the response.
//
// # When to Use Each Tier
//
// Use middleware when: all routes in a group share the same requirement.
// Use gates when: individual handlers differ from the route group.
// Use policies when: authorization depends on the record being accessed.
//
// # Avoiding Redundancy
//
// Don't use gates in handlers behind equivalent middleware. If routes.go
// has RequireSignedIn, handlers read the user via authz.UserCtx(r) without
// re-checking.
package gates

import (
	"net/http"

	"github.com/dalemusser/fieldhub/internal/app/features/apierrors"
	"github.com/dalemusser/fieldhub/internal/app/system/authz"
	"github.com/dalemusser/fieldhub/internal/domain/models"
)

// Result contains the result of an authorization gate check.
type Result struct {
	User *models.User
	OK   bool
}

// RequireAuth ensures a user is authenticated. If not, it writes a 401 and
// returns OK=false.
func RequireAuth(w http.ResponseWriter, r *http.Request) Result {
	u, ok := authz.UserCtx(r)
	if !ok {
		apierrors.Unauthorized(w)
		return Result{OK: false}
	}
	return Result{User: u, OK: true}
}

// RequireNonGuest ensures the user is authenticated and not a guest
// account. Guests get a 403 with the provided message.
func RequireNonGuest(w http.ResponseWriter, r *http.Request, forbiddenMsg string) Result {
	u, ok := authz.UserCtx(r)
	if !ok {
		apierrors.Unauthorized(w)
		return Result{OK: false}
	}
	if u.IsGuest {
		apierrors.Forbidden(w, forbiddenMsg)
		return Result{OK: false}
	}
	return Result{User: u, OK: true}
}

// RequireSuperuser ensures the user is authenticated and a superuser.
func RequireSuperuser(w http.ResponseWriter, r *http.Request, forbiddenMsg string) Result {
	u, ok := authz.UserCtx(r)
	if !ok {
		apierrors.Unauthorized(w)
		return Result{OK: false}
	}
	if !u.IsSuperuser {
		apierrors.Forbidden(w, forbiddenMsg)
		return Result{OK: false}
	}
	return Result{User: u, OK: true}
}

// RequireValidatorRole ensures the user holds at least one validator grant
// of any scope. Fine-grained per-unit checks still go through the policy
// layer.
func RequireValidatorRole(w http.ResponseWriter, r *http.Request, forbiddenMsg string) Result {
	u, ok := authz.UserCtx(r)
	if !ok {
		apierrors.Unauthorized(w)
		return Result{OK: false}
	}
	if !authz.HasAnyValidatorRole(u) {
		apierrors.Forbidden(w, forbiddenMsg)
		return Result{OK: false}
	}
	return Result{User: u, OK: true}
}
