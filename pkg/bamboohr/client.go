// Package bamboohr is a client for the BambooHR REST API gateway.
//
// A Client is built once from a tenant subdomain and an API token and is safe
// for concurrent use: it holds no per-call state. Credentials are not checked
// at construction time; an invalid token surfaces as a 401 APIError on the
// first call.
package bamboohr

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hrsync-hq/bamboo-sync/pkg/httpclient"
)

// DefaultBaseURL is the documented BambooHR API gateway.
const DefaultBaseURL = "https://api.bamboohr.com/api/gateway.php"

const (
	// BambooHR basic auth uses the token as username and a fixed placeholder password.
	basicAuthPassword = "x"

	defaultTimeout = 15 * time.Second
)

// Config holds the settings needed to build a Client.
type Config struct {
	// Subdomain is the tenant identifier: for https://mycompany.bamboohr.com it is "mycompany".
	Subdomain string
	// Token is the BambooHR API token.
	Token string
	// BaseURL overrides the API gateway, mainly for tests. Defaults to DefaultBaseURL.
	BaseURL string
	// Timeout applies to the default HTTP client only. Defaults to 15s.
	Timeout time.Duration
	// HTTPClient lets callers inject a transport. Defaults to a resty-backed client.
	HTTPClient httpclient.Client
}

// Client issues authenticated requests against a single BambooHR tenant.
type Client struct {
	subdomain string
	token     string
	baseURL   string
	http      httpclient.Client
}

// New builds a Client. It performs no network I/O and does not validate the
// token against the remote service.
func New(cfg Config) (*Client, error) {
	subdomain := strings.TrimSpace(cfg.Subdomain)
	if subdomain == "" {
		return nil, errors.New("bamboohr: subdomain is required")
	}
	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		return nil, errors.New("bamboohr: token is required")
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		hc = httpclient.NewRestyClient(timeout)
	}

	return &Client{
		subdomain: subdomain,
		token:     token,
		baseURL:   baseURL,
		http:      hc,
	}, nil
}

// NewClient is a convenience constructor using all defaults.
func NewClient(subdomain, token string) (*Client, error) {
	return New(Config{Subdomain: subdomain, Token: token})
}

// Subdomain returns the tenant subdomain the client was built with.
func (c *Client) Subdomain() string { return c.subdomain }

// tenantURL joins path segments under the client's tenant root.
func (c *Client) tenantURL(segments ...string) string {
	parts := append([]string{c.baseURL, c.subdomain, "v1"}, segments...)
	return strings.Join(parts, "/")
}

func (c *Client) customReportURL() string      { return c.tenantURL("reports", "custom") }
func (c *Client) employeeDirectoryURL() string { return c.tenantURL("employees", "directory") }

func (c *Client) employeeURL(employeeID int) string {
	return c.tenantURL("employees", fmt.Sprintf("%d", employeeID))
}

func (c *Client) photoURL(employeeID int, size string) string {
	return c.tenantURL("employees", fmt.Sprintf("%d", employeeID), "photo", size)
}

// get issues an authenticated GET and returns the body of a 2xx response.
func (c *Client) get(ctx context.Context, url string, query map[string]string) ([]byte, error) {
	resp, err := c.http.Get(ctx, url, c.requestOptions(query, nil))
	if err != nil {
		return nil, fmt.Errorf("bamboohr: get %s: %w", url, err)
	}
	return c.checkStatus(url, resp)
}

// post issues an authenticated POST with a JSON body and returns the body of a 2xx response.
func (c *Client) post(ctx context.Context, url string, body any, query map[string]string) ([]byte, error) {
	resp, err := c.http.Post(ctx, url, c.requestOptions(query, body))
	if err != nil {
		return nil, fmt.Errorf("bamboohr: post %s: %w", url, err)
	}
	return c.checkStatus(url, resp)
}

func (c *Client) requestOptions(query map[string]string, body any) httpclient.RequestOptions {
	return httpclient.RequestOptions{
		Headers:  map[string]string{"Accept": "application/json"},
		Query:    query,
		Username: c.token,
		Password: basicAuthPassword,
		Body:     body,
	}
}

func (c *Client) checkStatus(url string, resp httpclient.Response) ([]byte, error) {
	body := resp.Body()
	if code := resp.StatusCode(); code < 200 || code > 299 {
		return nil, &APIError{StatusCode: code, Body: body, URL: url}
	}
	return body, nil
}
