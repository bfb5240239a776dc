package schema

import "regexp"

// colorPattern accepts hex literals and the CSS functional color forms.
// Anything else is replaced with a field default during validation. The
// pattern is a prefix gate, not a full CSS parser: the renderer tolerates
// malformed tails by falling back to its own default paint.
var colorPattern = regexp.MustCompile(`^(#|rgb|rgba|hsl|hsla)`)

// IsColor reports whether s looks like a usable color value.
func IsColor(s string) bool {
	return s != "" && colorPattern.MatchString(s)
}

// coerceColor returns s when it passes the color gate, def otherwise.
func coerceColor(s, def string) string {
	if IsColor(s) {
		return s
	}
	return def
}
