package espack

import (
	"strings"
)

// dirOf returns the directory containing the module at the given canonical
// location. Canonical locations use forward slashes regardless of host
// platform. The emitted runtime's __dirname also splits at the last forward
// slash, but keeps that slash and works on module ids, not locations.
func dirOf(location string) string {
	idx := strings.LastIndex(location, "/")
	if idx <= 0 {
		return "/"
	}
	return location[:idx]
}

func isTypeScript(filename string) bool {
	return strings.HasSuffix(filename, ".ts")
}
