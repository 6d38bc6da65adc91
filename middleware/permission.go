package middleware

import (
	"net/http"

	"yamdb-api/helper"
	"yamdb-api/permissions"

	"github.com/gin-gonic/gin"
)

const (
	msgNotAuthenticated = "Authentication credentials were not provided."
	msgPermissionDenied = "You do not have permission to perform this action."
)

// PolicyRequest describes c for a policy check.
func PolicyRequest(c *gin.Context) permissions.Request {
	return permissions.Request{
		Method:   c.Request.Method,
		Identity: IdentityFromContext(c),
	}
}

// RequirePolicy applies the collection level check of policy.
func RequirePolicy(policy permissions.Policy, h *helper.HTTPHelper) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := PolicyRequest(c)
		if !policy.AllowCollection(req) {
			Deny(c, h, req)
			return
		}
		c.Next()
	}
}

// CheckItem applies the item level check and writes the denial when it fails.
func CheckItem(c *gin.Context, h *helper.HTTPHelper, policy permissions.Policy, item permissions.Owned) bool {
	req := PolicyRequest(c)
	if policy.AllowItem(req, item) {
		return true
	}
	Deny(c, h, req)
	return false
}

// Deny answers 401 to anonymous callers and 403 to everybody else.
func Deny(c *gin.Context, h *helper.HTTPHelper, req permissions.Request) {
	if !req.Identity.Authenticated() {
		c.Header("WWW-Authenticate", `Bearer realm="api"`)
		h.SendDetail(c, http.StatusUnauthorized, msgNotAuthenticated)
		return
	}
	h.SendDetail(c, http.StatusForbidden, msgPermissionDenied)
}
