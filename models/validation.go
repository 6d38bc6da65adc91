package models

import (
	"regexp"
	"time"
)

var (
	usernamePattern  = regexp.MustCompile(`^[\w.@+-]+$`)
	forbiddenPattern = regexp.MustCompile(`^[mM][eE]$`)
	slugPattern      = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

// MeUsername is the path segment reserved for the self-service endpoint.
const MeUsername = "me"

// ValidUsername reports whether s uses only letters, digits and @.+-_
func ValidUsername(s string) bool {
	return usernamePattern.MatchString(s)
}

// ForbiddenUsername reports whether s collides with the "me" endpoint in any case.
func ForbiddenUsername(s string) bool {
	return forbiddenPattern.MatchString(s)
}

func ValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// ValidYear rejects years after the current one.
func ValidYear(year int) bool {
	return year <= time.Now().Year()
}
