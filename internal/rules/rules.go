// Package rules holds the pure predicates shared by the API and UI suites.
package rules

import "strings"

const (
	minListCount = 1
	maxListCount = 100

	bearerPrefix      = "Bearer "
	minPasswordLength = 4
)

// IsValidListCount reports whether n is an acceptable page size for a list
// response: 1..100 inclusive.
func IsValidListCount(n int) bool {
	return n >= minListCount && n <= maxListCount
}

// RequiresAuth reports whether a request carrying token still needs
// authentication. A nil, blank or prefix-only token requires auth; a trimmed
// token of the form "Bearer <something>" does not.
func RequiresAuth(token *string) bool {
	if token == nil {
		return true
	}
	t := strings.TrimSpace(*token)
	if t == "" {
		return true
	}
	return !(strings.HasPrefix(t, bearerPrefix) && len(t) > len(bearerPrefix))
}

// IsValidLogin reports whether a credential pair is usable: both values
// non-blank after trimming and a password of at least four characters.
func IsValidLogin(user, pass string) bool {
	u := strings.TrimSpace(user)
	p := strings.TrimSpace(pass)
	if u == "" || p == "" {
		return false
	}
	return len(p) >= minPasswordLength
}

// ShouldShowCartBadge reports whether the header cart badge is expected for
// the given item count.
func ShouldShowCartBadge(count int) bool {
	return count > 0
}
