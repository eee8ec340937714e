package restclient

import (
	"os"
	"path/filepath"
)

// maxErrBodySize caps the amount of response body read when building
// a [StatusError]. This prevents unbounded memory usage when a large
// response arrives with an error status.
const maxErrBodySize = 4 << 10 // 4KB

// Header is a single (name, value) pair attached to every outgoing
// request. Headers are applied in the order configured, verbatim:
// no deduplication or merging is performed.
type Header struct {
	Name  string
	Value string
}

// DefaultCookieFile returns the default location of the persisted
// cookie jar, used when cookies are enabled without an explicit path.
func DefaultCookieFile() string {
	return filepath.Join(os.TempDir(), "restclient_cookies.json")
}

func defaultHeaders() []Header {
	return []Header{{Name: "Content-Type", Value: "application/json"}}
}
