// Package jar provides an [http.CookieJar] whose contents persist to a
// JSON file on disk, so cookies set in one process survive into the
// next.
//
// The jar wraps [net/http/cookiejar] and delegates all domain, path,
// and expiry rules to it: received cookies are recorded verbatim and
// replayed into a fresh inner jar on load, which re-applies those
// rules at read time. Expired cookies therefore stop being presented
// even though they may linger in the file until the next save.
package jar

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/net/publicsuffix"
)

// entry records the cookies received for a single origin URL, in the
// order they were first seen.
type entry struct {
	URL     string         `json:"url"`
	Cookies []*http.Cookie `json:"cookies"`
}

// Jar is a persistent cookie jar. It implements [http.CookieJar].
type Jar struct {
	path string

	mu      sync.Mutex
	inner   *cookiejar.Jar
	entries []entry
}

// Open creates a Jar backed by the file at path. A missing file yields
// an empty jar; an existing file is loaded and its cookies replayed. A
// file that exists but cannot be read or parsed is an error.
func Open(path string) (*Jar, error) {
	inner, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}

	j := &Jar{path: path, inner: inner}

	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return j, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading cookie file: %w", err)
	}

	var entries []entry
	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, fmt.Errorf("parsing cookie file %s: %w", path, err)
	}

	for _, e := range entries {
		u, err := url.Parse(e.URL)
		if err != nil {
			continue
		}
		inner.SetCookies(u, e.Cookies)
	}
	j.entries = entries

	return j, nil
}

// SetCookies records the cookies and forwards them to the inner jar.
// It is called by the HTTP client machinery on every Set-Cookie
// response header.
func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.inner.SetCookies(u, cookies)

	key := u.String()
	for i := range j.entries {
		if j.entries[i].URL == key {
			j.entries[i].Cookies = merge(j.entries[i].Cookies, cookies)
			return
		}
	}

	j.entries = append(j.entries, entry{URL: key, Cookies: cookies})
}

// Cookies returns the cookies to send in a request for the given URL,
// per the inner jar's domain, path, and expiry rules.
func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.inner.Cookies(u)
}

// Save writes the recorded cookies back to the jar's file, creating
// parent directories as needed.
func (j *Jar) Save() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	b, err := json.MarshalIndent(j.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding cookies: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(j.path), 0o755); err != nil {
		return fmt.Errorf("creating cookie file directory: %w", err)
	}

	if err := os.WriteFile(j.path, b, 0o600); err != nil {
		return fmt.Errorf("writing cookie file: %w", err)
	}

	return nil
}

// merge overlays incoming cookies on existing ones, replacing by name
// and appending new names at the end.
func merge(existing, incoming []*http.Cookie) []*http.Cookie {
	for _, in := range incoming {
		replaced := false
		for i, ex := range existing {
			if ex.Name == in.Name && ex.Path == in.Path && ex.Domain == in.Domain {
				existing[i] = in
				replaced = true
				break
			}
		}
		if !replaced {
			existing = append(existing, in)
		}
	}

	return existing
}
