package domain

import "github.com/google/uuid"

// Role is the caller role supplied by the identity layer.
type Role string

const (
	RoleOwner       Role = "OWNER"
	RoleAdmin       Role = "ADMIN"
	RoleClinicStaff Role = "CLINIC_STAFF"
	RoleGroomer     Role = "GROOMER"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleClinicStaff, RoleGroomer:
		return true
	}
	return false
}

// IsStaff reports whether r may perform services.
func (r Role) IsStaff() bool {
	return r == RoleClinicStaff || r == RoleGroomer
}

// IsPrivileged reports staff and admin roles.
func (r Role) IsPrivileged() bool {
	return r == RoleAdmin || r.IsStaff()
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

func (a Actor) IsOwner() bool { return a.Role == RoleOwner }
func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// Scope restricts a list query.
type Scope int

const (
	ScopeAll Scope = iota
	ScopeOwnedBy
)

// ScopedQuery is the visibility rule of a list query: all records or the records of one owner.
type ScopedQuery struct {
	scope   Scope
	ownerID uuid.UUID
}

// AllRecords returns an unrestricted scope.
func AllRecords() ScopedQuery {
	return ScopedQuery{scope: ScopeAll}
}

// OwnedByUser restricts a query to records owned by userID.
func OwnedByUser(userID uuid.UUID) ScopedQuery {
	return ScopedQuery{scope: ScopeOwnedBy, ownerID: userID}
}

// ScopeFor returns the list scope an actor is entitled to.
func ScopeFor(actor Actor) ScopedQuery {
	if actor.Role.IsPrivileged() {
		return AllRecords()
	}
	return OwnedByUser(actor.ID)
}

// OwnerID returns the owner restriction, if any.
func (q ScopedQuery) OwnerID() (uuid.UUID, bool) {
	if q.scope == ScopeOwnedBy {
		return q.ownerID, true
	}
	return uuid.Nil, false
}
