package jar_test

import (
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluenthttp/restclient/jar"
)

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()

	u, err := url.Parse(raw)
	require.NoError(t, err)

	return u
}

func TestOpen_MissingFileIsFreshJar(t *testing.T) {
	j, err := jar.Open(filepath.Join(t.TempDir(), "does-not-exist.json"))
	require.NoError(t, err)

	assert.Empty(t, j.Cookies(mustParse(t, "http://example.com/")))
}

func TestOpen_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := jar.Open(path)
	assert.Error(t, err)
}

func TestJar_SaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")
	u := mustParse(t, "http://example.com/")

	j, err := jar.Open(path)
	require.NoError(t, err)

	j.SetCookies(u, []*http.Cookie{{Name: "session", Value: "abc", Path: "/"}})
	require.NoError(t, err)
	require.NoError(t, j.Save())

	reloaded, err := jar.Open(path)
	require.NoError(t, err)

	cookies := reloaded.Cookies(u)
	require.Len(t, cookies, 1)
	assert.Equal(t, "session", cookies[0].Name)
	assert.Equal(t, "abc", cookies[0].Value)
}

func TestJar_SaveCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "cookies.json")

	j, err := jar.Open(path)
	require.NoError(t, err)

	j.SetCookies(mustParse(t, "http://example.com/"), []*http.Cookie{{Name: "a", Value: "1", Path: "/"}})
	require.NoError(t, j.Save())

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestJar_ReplacesByName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")
	u := mustParse(t, "http://example.com/")

	j, err := jar.Open(path)
	require.NoError(t, err)

	j.SetCookies(u, []*http.Cookie{{Name: "session", Value: "old", Path: "/"}})
	j.SetCookies(u, []*http.Cookie{{Name: "session", Value: "new", Path: "/"}})
	require.NoError(t, j.Save())

	reloaded, err := jar.Open(path)
	require.NoError(t, err)

	cookies := reloaded.Cookies(u)
	require.Len(t, cookies, 1)
	assert.Equal(t, "new", cookies[0].Value)
}

func TestJar_DomainIsolation(t *testing.T) {
	j, err := jar.Open(filepath.Join(t.TempDir(), "cookies.json"))
	require.NoError(t, err)

	j.SetCookies(mustParse(t, "http://one.example.com/"), []*http.Cookie{{Name: "a", Value: "1", Path: "/"}})

	assert.Empty(t, j.Cookies(mustParse(t, "http://two.example.com/")))
	assert.Len(t, j.Cookies(mustParse(t, "http://one.example.com/")), 1)
}
