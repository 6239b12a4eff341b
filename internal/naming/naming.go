// Package naming derives backend-legal resource names from session
// identifiers.
//
// Naming is a pure, deterministic function: the same session ID always
// resolves to the same volume name, which is what lets a session reattach
// its workspace across sandbox recreations without any directory of live
// state.
//
// Known limitation: sanitization maps every illegal character to a hyphen,
// so session IDs that differ only in illegal characters can collide (for
// example "a:b" and "a-b"). Session IDs issued by the platform are
// hyphen-free UUID-style strings with a colon-separated prefix, so the
// practical input space stays injective.
package naming

import "strings"

// volumePrefix namespaces workspace volumes in the backend.
const volumePrefix = "workspace-"

// illegal reports whether c is outside the backend volume-name grammar
// (letters, digits, dot, underscore, hyphen).
func illegal(c rune) bool {
	switch {
	case c >= 'a' && c <= 'z':
		return false
	case c >= 'A' && c <= 'Z':
		return false
	case c >= '0' && c <= '9':
		return false
	case c == '.' || c == '_' || c == '-':
		return false
	}
	return true
}

// Sanitize replaces every character illegal in the backend naming grammar
// with a hyphen. It is total: any input yields a usable name fragment.
func Sanitize(id string) string {
	return strings.Map(func(c rune) rune {
		if illegal(c) {
			return '-'
		}
		return c
	}, id)
}

// WorkspaceVolumeName returns the backend volume name for a session's
// persistent workspace.
func WorkspaceVolumeName(sessionID string) string {
	return volumePrefix + Sanitize(sessionID)
}
