// Package service implements the application's business logic on top of the
// repository layer.
package service

import "inkwell/internal/models"

// Actor identifies the authenticated caller of a service operation.
// A zero-value Actor means the request is anonymous.
type Actor struct {
	UserID uint
	Role   models.Role
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// Anonymous reports whether the actor is unauthenticated.
func (a Actor) Anonymous() bool {
	return a.UserID == 0
}
