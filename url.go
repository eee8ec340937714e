package restclient

import (
	"regexp"
	"strings"
)

// absoluteURL matches endpoints that already carry a scheme and must
// be used verbatim, ignoring any configured base URL.
var absoluteURL = regexp.MustCompile(`(?i)^(ftp|http)s?://`)

// joinURL composes the request target from the configured base URL and
// a call-specific endpoint. Absolute endpoints pass through untouched;
// relative ones are joined to base with exactly one slash between them.
// No validation is performed: a relative endpoint with an empty base
// produces a target the transport will reject on its own.
func joinURL(base, endpoint string) string {
	if absoluteURL.MatchString(endpoint) {
		return endpoint
	}

	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(endpoint, "/")
}
