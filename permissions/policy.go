package permissions

import (
	"net/http"

	"yamdb-api/models"
)

// Request is what a policy needs to know about an inbound call.
type Request struct {
	Method   string
	Identity *Identity
}

// Safe reports whether the method only reads.
func (r Request) Safe() bool {
	switch r.Method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	default:
		return false
	}
}

// Owned is implemented by entities that have an author.
type Owned interface {
	OwnerID() uint
}

// Policy decides access at collection level and at item level. Items that
// have no author are passed as nil.
type Policy interface {
	AllowCollection(req Request) bool
	AllowItem(req Request, item Owned) bool
}

// Kind tags the policy variant selected for a resource family.
type Kind int

const (
	KindAdminOrReadOnly Kind = iota
	KindAuthorModeratorAdmin
	KindOwnerOrReadOnly
	KindAuthenticated
	KindAdminOnly
)

func (k Kind) String() string {
	switch k {
	case KindAdminOrReadOnly:
		return "admin-or-read-only"
	case KindAuthorModeratorAdmin:
		return "author-moderator-admin"
	case KindOwnerOrReadOnly:
		return "owner-or-read-only"
	case KindAuthenticated:
		return "authenticated"
	case KindAdminOnly:
		return "admin-only"
	default:
		return "unknown"
	}
}

// For returns the policy variant for kind.
func For(kind Kind) Policy {
	switch kind {
	case KindAdminOrReadOnly:
		return AdminOrReadOnly{}
	case KindAuthorModeratorAdmin:
		return AuthorModeratorAdmin{}
	case KindOwnerOrReadOnly:
		return OwnerOrReadOnly{}
	case KindAuthenticated:
		return Authenticated{}
	default:
		return AdminOnly{}
	}
}

// AdminOrReadOnly guards categories, genres and titles.
type AdminOrReadOnly struct{}

func (AdminOrReadOnly) AllowCollection(req Request) bool {
	return req.Safe() || IsAdminEquivalent(req.Identity)
}

func (AdminOrReadOnly) AllowItem(req Request, _ Owned) bool {
	return req.Safe() || IsAdminEquivalent(req.Identity)
}

// AuthorModeratorAdmin guards reviews and comments.
type AuthorModeratorAdmin struct{}

func (AuthorModeratorAdmin) AllowCollection(req Request) bool {
	return req.Safe() || req.Identity.Authenticated()
}

func (AuthorModeratorAdmin) AllowItem(req Request, item Owned) bool {
	if req.Safe() {
		return true
	}
	if !req.Identity.Authenticated() {
		return false
	}
	return isAuthor(req.Identity, item) ||
		IsAdminEquivalent(req.Identity) ||
		req.Identity.RoleName() == models.RoleModerator
}

// OwnerOrReadOnly lets anyone read and only the author write.
type OwnerOrReadOnly struct{}

func (OwnerOrReadOnly) AllowCollection(Request) bool {
	return true
}

func (OwnerOrReadOnly) AllowItem(req Request, item Owned) bool {
	return req.Safe() || isAuthor(req.Identity, item)
}

// Authenticated admits any identity backed by a user.
type Authenticated struct{}

func (Authenticated) AllowCollection(req Request) bool {
	return req.Identity.Authenticated()
}

func (Authenticated) AllowItem(req Request, _ Owned) bool {
	return req.Identity.Authenticated()
}

// AdminOnly guards the user administration endpoints.
type AdminOnly struct{}

func (AdminOnly) AllowCollection(req Request) bool {
	return IsAdminEquivalent(req.Identity)
}

func (AdminOnly) AllowItem(req Request, _ Owned) bool {
	return IsAdminEquivalent(req.Identity)
}

func isAuthor(id *Identity, item Owned) bool {
	if !id.Authenticated() || item == nil {
		return false
	}
	return item.OwnerID() == id.UserID
}
