package apiclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	apperrors "github.com/jrsteele09/go-admin-client/internal/errors"
)

// RequestIDHeader carries the request ID. Replays keep the original ID so the
// backend logs show one request retried rather than two unrelated ones.
const RequestIDHeader = "X-Request-ID"

// Request is a replayable request description. The body is held in memory so
// the same request can be re-issued after a token refresh.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
	ID     string

	authRetries int
}

func NewRequest(method, path string) *Request {
	return &Request{Method: method, Path: path}
}

// NewJSONRequest encodes body as the JSON request payload
func NewJSONRequest(method, path string, body any) (*Request, error) {
	req := NewRequest(method, path)
	if body == nil {
		return req, nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidRequest, "marshal %s %s: %v", method, path, err)
	}
	req.Body = data
	req.Header = http.Header{"Content-Type": []string{"application/json"}}
	return req, nil
}

func (r *Request) String() string {
	return fmt.Sprintf("%s %s", r.Method, r.Path)
}

func (r *Request) clone() *Request {
	c := *r
	if r.Query != nil {
		c.Query = make(url.Values, len(r.Query))
		for k, v := range r.Query {
			c.Query[k] = append([]string(nil), v...)
		}
	}
	if r.Header != nil {
		c.Header = r.Header.Clone()
	}
	if r.Body != nil {
		c.Body = append([]byte(nil), r.Body...)
	}
	return &c
}

// Response is a completed 2xx exchange with its body fully read
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	RequestID  string
}

// Decode unmarshals the JSON body into out
func (r *Response) Decode(out any) error {
	if len(r.Body) == 0 {
		return apperrors.ErrEmptyResponse
	}
	if err := json.Unmarshal(r.Body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
