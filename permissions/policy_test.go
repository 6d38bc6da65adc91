package permissions

import (
	"net/http"
	"testing"

	"yamdb-api/models"

	"github.com/stretchr/testify/assert"
)

type item struct{ owner uint }

func (i item) OwnerID() uint { return i.owner }

var (
	anonymous = (*Identity)(nil)
	author    = &Identity{UserID: 1, Role: models.RoleUser}
	stranger  = &Identity{UserID: 2, Role: models.RoleUser}
	moderator = &Identity{UserID: 3, Role: models.RoleModerator}
	admin     = &Identity{UserID: 4, Role: models.RoleAdmin}
	staff     = &Identity{UserID: 5, Role: models.RoleUser, IsStaff: true}
)

func req(method string, id *Identity) Request {
	return Request{Method: method, Identity: id}
}

func TestSafeMethods(t *testing.T) {
	for _, m := range []string{http.MethodGet, http.MethodHead, http.MethodOptions} {
		assert.True(t, req(m, nil).Safe(), m)
	}
	for _, m := range []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		assert.False(t, req(m, nil).Safe(), m)
	}
}

func TestAdminOrReadOnly(t *testing.T) {
	p := For(KindAdminOrReadOnly)

	assert.True(t, p.AllowCollection(req(http.MethodGet, anonymous)))
	assert.False(t, p.AllowCollection(req(http.MethodPost, anonymous)))
	assert.False(t, p.AllowCollection(req(http.MethodPost, moderator)))
	assert.True(t, p.AllowCollection(req(http.MethodPost, admin)))
	assert.True(t, p.AllowCollection(req(http.MethodPost, staff)))
	assert.False(t, p.AllowItem(req(http.MethodDelete, author), nil))
	assert.True(t, p.AllowItem(req(http.MethodDelete, admin), nil))
}

func TestAuthorModeratorAdmin(t *testing.T) {
	p := For(KindAuthorModeratorAdmin)
	owned := item{owner: author.UserID}

	assert.True(t, p.AllowCollection(req(http.MethodGet, anonymous)))
	assert.False(t, p.AllowCollection(req(http.MethodPost, anonymous)))
	assert.True(t, p.AllowCollection(req(http.MethodPost, stranger)))

	assert.True(t, p.AllowItem(req(http.MethodGet, anonymous), owned))
	assert.False(t, p.AllowItem(req(http.MethodPatch, anonymous), owned))
	assert.True(t, p.AllowItem(req(http.MethodPatch, author), owned))
	assert.False(t, p.AllowItem(req(http.MethodPatch, stranger), owned))
	assert.True(t, p.AllowItem(req(http.MethodDelete, moderator), owned))
	assert.True(t, p.AllowItem(req(http.MethodDelete, admin), owned))
	assert.True(t, p.AllowItem(req(http.MethodDelete, staff), owned))
}

func TestOwnerOrReadOnly(t *testing.T) {
	p := For(KindOwnerOrReadOnly)
	owned := item{owner: author.UserID}

	assert.True(t, p.AllowCollection(req(http.MethodPost, anonymous)))
	assert.True(t, p.AllowItem(req(http.MethodGet, stranger), owned))
	assert.True(t, p.AllowItem(req(http.MethodPut, author), owned))
	assert.False(t, p.AllowItem(req(http.MethodPut, moderator), owned))
	assert.False(t, p.AllowItem(req(http.MethodPut, admin), owned))
	assert.False(t, p.AllowItem(req(http.MethodPut, author), nil))
}

func TestAuthenticatedAndAdminOnly(t *testing.T) {
	authenticated := For(KindAuthenticated)
	assert.False(t, authenticated.AllowCollection(req(http.MethodGet, anonymous)))
	assert.True(t, authenticated.AllowCollection(req(http.MethodPatch, stranger)))

	adminOnly := For(KindAdminOnly)
	assert.False(t, adminOnly.AllowCollection(req(http.MethodGet, anonymous)))
	assert.False(t, adminOnly.AllowCollection(req(http.MethodGet, moderator)))
	assert.True(t, adminOnly.AllowCollection(req(http.MethodGet, admin)))
	assert.True(t, adminOnly.AllowItem(req(http.MethodDelete, staff), nil))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "admin-or-read-only", KindAdminOrReadOnly.String())
	assert.Equal(t, "admin-only", KindAdminOnly.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
