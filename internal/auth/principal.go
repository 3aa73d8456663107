// Package auth defines the authenticated identity attached to a request.
package auth

import "github.com/tasknity/tasknity-api/internal/models"

// Principal is the caller resolved by the authentication guard. Role comes
// from the verified token, so a demotion only applies to newly issued tokens.
type Principal struct {
	UserID string
	Email  string
	Role   models.Role
}

func (p Principal) IsStaff() bool {
	return p.Role == models.RoleOwner || p.Role == models.RoleAdmin
}
