package domain

import "github.com/google/uuid"

// Role роль аутентифицированного пользователя
type Role string

const (
	RoleCustomer Role = "customer"
	RoleOwner    Role = "owner"
)

// Actor is the request-scoped authenticated identity. It is populated by the
// auth middleware from request headers and passed explicitly into services and
// use cases — never read from ambient/session state.
type Actor struct {
	UserID uuid.UUID
	Role   Role
}

// IsOwner reports whether the actor acts as a facility owner
func (a Actor) IsOwner() bool {
	return a.Role == RoleOwner
}
