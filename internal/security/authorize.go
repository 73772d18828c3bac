package security

import (
	"errors"

	"atelier/api/internal/models"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
)

// Authorize is the single place role and approval requirements are
// evaluated. It is a pure check over already-verified claims: nil claims
// means the request never authenticated, and admin satisfies every role
// requirement rather than being a disjoint role.
//
// Passing no required roles demands authentication only; that is the
// change-password case, which must stay reachable for unapproved and
// first-login holders of a valid token. As soon as any role is required
// the account must also be approved: valid credentials alone never open
// the creator or admin space.
func Authorize(claims *SessionClaims, required ...models.UserRole) error {
	if claims == nil {
		return ErrUnauthenticated
	}
	if len(required) == 0 {
		return nil
	}
	if !claims.Approved {
		return ErrForbidden
	}
	if claims.Role == string(models.UserRoleAdmin) {
		return nil
	}
	for _, role := range required {
		if claims.Role == string(role) {
			return nil
		}
	}
	return ErrForbidden
}
