// Package restclient provides a small fluent wrapper around [net/http]
// for issuing JSON requests against a remote server.
//
// # Building a Client
//
// Use [New] to create a [Client] with functional options:
//
//	c, err := restclient.New(
//		restclient.WithTimeout(10 * time.Second),
//	)
//
// # Making Requests
//
// Configure the client through its chainable setters, then issue
// requests with the verb helpers or [Client.Execute]:
//
//	c.SetBaseURL("https://api.example.com").
//		SetUserAgent("myapp/1.0")
//
//	body, err := c.Get(ctx, "/v1/resource")
//
// The most recent buffered response is retained on the client and can
// be decoded as JSON:
//
//	v, err := c.DecodeLastResponse()
//
// # Cookies
//
// Enabling cookies persists the jar to disk between requests, so a
// session cookie set by one call is presented on the next — even from
// a freshly constructed Client pointed at the same file:
//
//	c.SetUseCookies(true).SetCookieFile("/tmp/session_cookies.json")
//
// # Downloading Files
//
// Stream a response body directly to disk instead of buffering it:
//
//	_, err := c.Download("/tmp/file.bin").Get(ctx, "/v1/export")
//
// For checksum verification and progress reporting see the
// [github.com/fluenthttp/restclient/download] package.
package restclient
