// Package permissions derives the effective privilege of a request and
// decides, per resource family, whether an operation is allowed.
package permissions

import "yamdb-api/models"

// Identity is the authenticated requester as described by a valid access
// token. A nil *Identity is anonymous.
type Identity struct {
	UserID      uint
	Username    string
	Role        models.UserRole
	IsStaff     bool
	IsSuperuser bool
}

func (i *Identity) StaffFlag() bool {
	return i != nil && i.IsStaff
}

func (i *Identity) SuperuserFlag() bool {
	return i != nil && i.IsSuperuser
}

func (i *Identity) RoleName() models.UserRole {
	if i == nil {
		return ""
	}
	return i.Role
}

// Authenticated reports whether the identity belongs to a real user.
func (i *Identity) Authenticated() bool {
	return i != nil && i.UserID != 0
}

// Accessors that an auth context may expose. A context is free to implement
// any subset of them.
type (
	staffFlagger     interface{ StaffFlag() bool }
	superuserFlagger interface{ SuperuserFlag() bool }
	roleHolder       interface{ RoleName() models.UserRole }
)

// Privilege is the effective privilege of a request.
type Privilege struct {
	IsStaff     bool
	IsSuperuser bool
	Role        models.UserRole
}

// EffectivePrivilege reads whichever flags ctx exposes. Missing accessors
// yield zero values, so anonymous or partial contexts never fail.
func EffectivePrivilege(ctx interface{}) Privilege {
	var p Privilege
	if ctx == nil {
		return p
	}
	if s, ok := ctx.(staffFlagger); ok {
		p.IsStaff = s.StaffFlag()
	}
	if s, ok := ctx.(superuserFlagger); ok {
		p.IsSuperuser = s.SuperuserFlag()
	}
	if r, ok := ctx.(roleHolder); ok {
		p.Role = r.RoleName()
	}
	return p
}

// IsAdminEquivalent is the single admin gate used by every admin-only check.
func IsAdminEquivalent(ctx interface{}) bool {
	p := EffectivePrivilege(ctx)
	return p.IsStaff || p.IsSuperuser || p.Role == models.RoleAdmin
}
