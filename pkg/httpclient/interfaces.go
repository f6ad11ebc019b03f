package httpclient

import "context"

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
}

// RequestOptions carries per-request settings shared by all verbs.
type RequestOptions struct {
	Headers map[string]string
	Query   map[string]string
	// Basic auth credentials; applied only when Username is non-empty.
	Username string
	Password string
	// Body is serialized as JSON for verbs that carry one.
	Body any
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
type Client interface {
	Get(ctx context.Context, url string, opts RequestOptions) (Response, error)
	Post(ctx context.Context, url string, opts RequestOptions) (Response, error)
}
