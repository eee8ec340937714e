package restclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/fluenthttp/restclient/download"
	"github.com/fluenthttp/restclient/jar"
	"github.com/fluenthttp/restclient/throttle"
)

// Client wraps the std-lib *http.Client with a fluent interface for
// issuing JSON requests, persisting cookies across calls, and
// streaming response bodies to disk.
//
// A Client is a plain configuration holder: the fluent setters mutate
// state consumed by [Client.Execute] on each call. It is not safe for
// concurrent use; callers issuing requests from multiple goroutines
// must serialize access or use one Client per request sequence.
type Client struct {
	hc            *http.Client
	logger        *slog.Logger
	useJSONNumber bool

	baseURL      string
	headers      []Header
	useCookies   bool
	cookieFile   string
	userAgent    string
	downloadPath string
	downloadOpts []download.Option

	lastBody *string
}

// New builds a Client with default configuration, customizable via
// optional funcs. The header list starts with a single
// `Content-Type: application/json` entry.
func New(optFns ...Option) (*Client, error) {
	client := &Client{
		hc:         &http.Client{},
		logger:     slog.Default(),
		headers:    defaultHeaders(),
		cookieFile: DefaultCookieFile(),
	}

	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying client option: %w", err)
		}
	}

	if opts.client != nil {
		client.hc = opts.client
	}

	if opts.logger != nil {
		client.logger = opts.logger
	}

	if opts.timeout != nil {
		client.hc.Timeout = *opts.timeout
	}

	if opts.noFollowRedirects {
		client.hc.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	client.useJSONNumber = opts.useJSONNumber

	var transport http.RoundTripper
	switch {
	case opts.rt != nil:
		transport = opts.rt
	case opts.client != nil && opts.client.Transport != nil:
		transport = opts.client.Transport
	default:
		transport = http.DefaultTransport
	}
	if opts.throttle != nil {
		rt, err := throttle.NewRoundTripper(opts.throttle.RPS, opts.throttle.Burst, func() *slog.Logger { return client.logger }, transport)
		if err != nil {
			return nil, fmt.Errorf("configuring throttle: %w", err)
		}
		transport = rt
	}
	client.hc.Transport = transport

	return client, nil
}

// SetBaseURL sets the prefix joined with relative endpoints. Endpoints
// that already carry a scheme ignore it. No validation is performed.
func (c *Client) SetBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

// SetHeaders replaces the full header list. Pass nil or an empty slice
// to send requests with no configured headers at all.
func (c *Client) SetHeaders(headers []Header) *Client {
	c.headers = headers
	return c
}

// AddHeader appends a single header pair to the configured list.
func (c *Client) AddHeader(name, value string) *Client {
	c.headers = append(c.headers, Header{Name: name, Value: value})
	return c
}

// SetUseCookies toggles the persistent cookie jar. When enabled, each
// request loads the jar from the cookie file beforehand and saves it
// back afterwards, so cookies survive across Client lifetimes.
func (c *Client) SetUseCookies(use bool) *Client {
	c.useCookies = use
	return c
}

// SetCookieFile overrides the cookie jar location. The default is
// [DefaultCookieFile].
func (c *Client) SetCookieFile(path string) *Client {
	c.cookieFile = path
	return c
}

// SetUserAgent sets the User-Agent header attached to every request.
// An empty string leaves the transport's default in place.
func (c *Client) SetUserAgent(ua string) *Client {
	c.userAgent = ua
	return c
}

// Download directs subsequent requests to stream the response body to
// destPath instead of buffering it in memory. Parent directories are
// created as needed. An empty destPath switches back to buffered mode.
func (c *Client) Download(destPath string, opts ...download.Option) *Client {
	c.downloadPath = destPath
	c.downloadOpts = opts
	return c
}

// Get issues a GET request against endpoint.
func (c *Client) Get(ctx context.Context, endpoint string) (string, error) {
	return c.Execute(ctx, http.MethodGet, endpoint, nil)
}

// Post issues a POST request against endpoint with a JSON-encoded body.
func (c *Client) Post(ctx context.Context, endpoint string, body any) (string, error) {
	return c.Execute(ctx, http.MethodPost, endpoint, body)
}

// Put issues a PUT request against endpoint with a JSON-encoded body.
func (c *Client) Put(ctx context.Context, endpoint string, body any) (string, error) {
	return c.Execute(ctx, http.MethodPut, endpoint, body)
}

// Delete issues a DELETE request against endpoint.
func (c *Client) Delete(ctx context.Context, endpoint string) (string, error) {
	return c.Execute(ctx, http.MethodDelete, endpoint, nil)
}

// Execute composes the request target from the configured base URL and
// endpoint, fires exactly one request, and classifies the outcome.
//
// In buffered mode the raw response body is stored as the last
// response and returned. In download mode (see [Client.Download]) the
// body streams to disk and the returned string is empty; a download
// that produced zero bytes fails with [download.ErrNoData].
//
// Transport-level failures return a [*TransportError]. A response with
// status >= 400 returns a [*StatusError] carrying the status code and
// a capped copy of the body; the last response is left untouched.
func (c *Client) Execute(ctx context.Context, method, endpoint string, body any) (string, error) {
	target := joinURL(c.baseURL, endpoint)

	var payload bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&payload).Encode(body); err != nil {
			return "", fmt.Errorf("encoding request payload: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, target, &payload)
	if err != nil {
		return "", fmt.Errorf("instantiating request: %w", err)
	}

	for _, h := range c.headers {
		req.Header.Add(h.Name, h.Value)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	// The http.Client is copied so the jar never leaks into requests
	// made after cookies are switched off.
	hc := *c.hc
	var cookies *jar.Jar
	if c.useCookies {
		cookies, err = jar.Open(c.cookieFile)
		if err != nil {
			return "", fmt.Errorf("opening cookie jar: %w", err)
		}
		hc.Jar = cookies
	}

	resp, err := hc.Do(req)
	if err != nil {
		return "", &TransportError{URL: target, Err: err}
	}

	discardBody := true
	defer func() {
		if discardBody {
			if _, err := io.Copy(io.Discard, resp.Body); err != nil {
				c.logger.Error("failed to discard unused body", "error", err)
			}
		}
		if err := resp.Body.Close(); err != nil {
			c.logger.Error("failed to close response body", "error", err)
		}
	}()

	if cookies != nil {
		defer func() {
			if err := cookies.Save(); err != nil {
				c.logger.Error("failed to persist cookie jar", "path", c.cookieFile, "error", err)
			}
		}()
	}

	if resp.StatusCode >= http.StatusBadRequest {
		b, err := io.ReadAll(io.LimitReader(resp.Body, maxErrBodySize))
		if err != nil {
			b = []byte("unable to read body")
		}

		return "", &StatusError{
			StatusCode: resp.StatusCode,
			Body:       string(b),
			Err:        ErrUnexpectedStatus,
		}
	}

	if c.downloadPath != "" {
		if err := download.Handle(ctx, resp.Body, resp.ContentLength, c.downloadPath, c.logger, c.downloadOpts...); err != nil {
			discardBody = false
			return "", fmt.Errorf("download: %w", err)
		}

		return "", nil
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		discardBody = false
		return "", fmt.Errorf("reading response body: %w", err)
	}

	s := string(b)
	c.lastBody = &s

	return s, nil
}

// LastResponse returns the most recent buffered response body. The
// second return is false until a request has captured one. Calling it
// repeatedly without an intervening request returns the same value.
func (c *Client) LastResponse() (string, bool) {
	if c.lastBody == nil {
		return "", false
	}

	return *c.lastBody, true
}

// DecodeLastResponse parses the most recent buffered response body as
// JSON into a nested map/slice/scalar structure. It fails with
// [ErrNoResponse] if no request has captured a body yet, and with an
// [ErrDecode]-wrapped error carrying the decoder diagnostic on
// malformed JSON. A literal `null` body decodes to nil with no error.
func (c *Client) DecodeLastResponse() (any, error) {
	var v any
	if err := c.DecodeLastResponseInto(&v); err != nil {
		return nil, err
	}

	return v, nil
}

// DecodeLastResponseInto decodes the most recent buffered response
// body into dest, which must be a pointer.
func (c *Client) DecodeLastResponseInto(dest any) error {
	if c.lastBody == nil {
		return ErrNoResponse
	}

	d := json.NewDecoder(strings.NewReader(*c.lastBody))
	if c.useJSONNumber {
		d.UseNumber()
	}

	if err := d.Decode(dest); err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return nil
}
