package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/go-admin-client/internal/errors"
	"github.com/jrsteele09/go-admin-client/token/refresh"
	"github.com/rs/zerolog/log"
)

const (
	apiPrefix             = "api"
	defaultTimeout        = 30 * time.Second
	defaultMaxAuthRetries = 3
	maxBodySize           = 10 << 20
)

// Session is the slice of application state a client clears when the backend
// refuses the user outright (403/429)
type Session interface {
	ClearProfile()
}

// Notifier shows validation failures (400) to the operator
type Notifier interface {
	NotifyError(ctx context.Context, message string)
}

// NotifierFunc adapts a function to the Notifier interface
type NotifierFunc func(ctx context.Context, message string)

func (f NotifierFunc) NotifyError(ctx context.Context, message string) {
	f(ctx, message)
}

type logNotifier struct{}

func (logNotifier) NotifyError(_ context.Context, message string) {
	log.Warn().Str("message", message).Msg("Oops...")
}

// Metrics receives per-request observations
type Metrics interface {
	ObserveRequest(client, method string, status int, d time.Duration)
	ObserveAuthFailure(client string, status int)
}

type nopMetrics struct{}

func (nopMetrics) ObserveRequest(string, string, int, time.Duration) {}
func (nopMetrics) ObserveAuthFailure(string, int)                   {}

// Client talks to one backend. Several clients may share a refresh
// coordinator, a credential store and a cookie jar, in which case a token
// refresh triggered by one of them is reused by all.
type Client struct {
	name           string
	baseURL        *url.URL
	http           *http.Client
	jar            http.CookieJar
	coordinator    *refresh.Coordinator
	store          refresh.Store
	session        Session
	notifier       Notifier
	onLogout       func(ctx context.Context, err error)
	maxAuthRetries int
	metrics        Metrics
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client. Its cookie jar carries the
// access credential, so clients of one session should share it.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithCookieJar shares jar with other clients when no HTTP client is given
func WithCookieJar(jar http.CookieJar) Option {
	return func(c *Client) {
		c.jar = jar
	}
}

// WithCoordinator enables transparent token refresh on 401 responses
func WithCoordinator(coordinator *refresh.Coordinator) Option {
	return func(c *Client) {
		c.coordinator = coordinator
	}
}

// WithCredentialStore sets the store the refresh credential is removed from on 403/429
func WithCredentialStore(store refresh.Store) Option {
	return func(c *Client) {
		c.store = store
	}
}

func WithSession(session Session) Option {
	return func(c *Client) {
		c.session = session
	}
}

func WithNotifier(notifier Notifier) Option {
	return func(c *Client) {
		if notifier != nil {
			c.notifier = notifier
		}
	}
}

// WithOnLogout registers a hook run after a terminal authorization failure
func WithOnLogout(fn func(ctx context.Context, err error)) Option {
	return func(c *Client) {
		c.onLogout = fn
	}
}

// WithMaxAuthRetries bounds how many times one request is replayed after
// consecutive 401 responses
func WithMaxAuthRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.maxAuthRetries = n
		}
	}
}

func WithMetrics(m Metrics) Option {
	return func(c *Client) {
		if m != nil {
			c.metrics = m
		}
	}
}

// New creates a client for the backend at baseURL; requests go to baseURL/api/<path>
func New(name, baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidBaseURL, "[apiclient New] %s %q", name, baseURL)
	}

	c := &Client{
		name:           name,
		baseURL:        u.JoinPath(apiPrefix),
		notifier:       logNotifier{},
		maxAuthRetries: defaultMaxAuthRetries,
		metrics:        nopMetrics{},
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.http == nil {
		if c.jar == nil {
			if c.jar, err = NewCookieJar(); err != nil {
				return nil, fmt.Errorf("[apiclient New] failed to create cookie jar: %w", err)
			}
		}
		if c.http, err = NewHTTPClient(defaultTimeout, c.jar); err != nil {
			return nil, fmt.Errorf("[apiclient New] %w", err)
		}
	}
	return c, nil
}

func (c *Client) Name() string {
	return c.name
}

// RefreshesTokens reports whether 401 responses are recovered through a coordinator
func (c *Client) RefreshesTokens() bool {
	return c.coordinator != nil
}

// BaseURL returns the API root requests are resolved against
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Do sends req. Non-2xx responses go through the response error handler:
// 401 is recovered via the refresh coordinator, 403/429 end the session,
// 400 notifies the operator. The returned error is a *StatusError unless the
// refresh itself failed.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, apperrors.ErrInvalidRequest
	}
	if req.ID == "" {
		req = req.clone()
		req.ID = uuid.NewString()
	}

	resp, err := c.send(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	return c.handleError(ctx, req, newStatusError(req, resp))
}

// replay re-issues req on this client after a successful refresh
func (c *Client) replay(ctx context.Context, req *Request) (*Response, error) {
	next := req.clone()
	next.authRetries++
	return c.Do(ctx, next)
}

func (c *Client) send(ctx context.Context, req *Request) (*Response, error) {
	u := c.baseURL.JoinPath(req.Path)
	if len(req.Query) > 0 {
		u.RawQuery = req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u.String(), body)
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidRequest, "%s: %v", req, err)
	}
	for k, v := range req.Header {
		httpReq.Header[k] = append([]string(nil), v...)
	}
	if httpReq.Header.Get("Accept") == "" {
		httpReq.Header.Set("Accept", "application/json")
	}
	if req.Body != nil && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set(RequestIDHeader, req.ID)

	start := time.Now()
	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		c.metrics.ObserveRequest(c.name, httpReq.Method, 0, time.Since(start))
		return nil, fmt.Errorf("%s: %w", req, err)
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(httpResp.Body, maxBodySize))
	c.metrics.ObserveRequest(c.name, httpReq.Method, httpResp.StatusCode, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read response: %w", req, err)
	}

	log.Debug().
		Str("client", c.name).
		Str("request_id", req.ID).
		Str("method", httpReq.Method).
		Str("path", req.Path).
		Int("status", httpResp.StatusCode).
		Int("auth_retries", req.authRetries).
		Msg("Backend request")

	return &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       data,
		RequestID:  req.ID,
	}, nil
}
