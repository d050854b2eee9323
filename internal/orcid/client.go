// Package orcid provides a rate-limited session against the ORCID public and
// member APIs. A Client satisfies profile.Session; it does not perform the
// OAuth exchange itself and expects an access token obtained elsewhere.
package orcid

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/matsen/orcid/internal/document"
	"github.com/matsen/orcid/internal/profile"
	"golang.org/x/time/rate"
)

const (
	// Hostname is the ORCID registry host.
	Hostname = "orcid.org"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// RateLimit is half the 24 requests per second ORCID allows on the public API.
	RateLimit = 12.0

	// AcceptJSON is the media type requested for reads.
	AcceptJSON = "application/vnd.orcid+json"

	// UserAgent identifies this client to ORCID.
	UserAgent = "orcid-cli"
)

// Environment selects the production registry or the sandbox.
type Environment string

const (
	Production Environment = ""
	Sandbox    Environment = "sandbox"
)

func (e Environment) host() string {
	if e == Sandbox {
		return "sandbox." + Hostname
	}
	return Hostname
}

// ParseEnvironment accepts "production", "prod", "" and "sandbox".
func ParseEnvironment(s string) (Environment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "production", "prod":
		return Production, nil
	case "sandbox":
		return Sandbox, nil
	default:
		return "", fmt.Errorf("unknown ORCID environment %q (valid: production, sandbox)", s)
	}
}

// Level selects the public ("pub") or member ("api") API host.
type Level string

const (
	Public Level = "pub"
	Member Level = "api"
)

// endpoint names for full-record reads.
const (
	recordEndpointV12 = "orcid-profile"
	recordEndpointV20 = "record"
)

// Client is a rate-limited HTTP session for one researcher's ORCID record.
type Client struct {
	httpClient  *http.Client
	limiter     *rate.Limiter
	logger      *slog.Logger
	token       string
	orcidID     string
	environment Environment
	level       Level
	baseURL     string
}

var _ profile.Session = (*Client)(nil)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithAccessToken sets the bearer token used for reads and writes.
func WithAccessToken(token string) ClientOption {
	return func(c *Client) {
		c.token = token
	}
}

// WithORCID sets the researcher's iD.
func WithORCID(id string) ClientOption {
	return func(c *Client) {
		c.orcidID = id
	}
}

// WithEnvironment selects production or sandbox.
func WithEnvironment(env Environment) ClientOption {
	return func(c *Client) {
		c.environment = env
	}
}

// WithLevel selects the public or member API for reads.
func WithLevel(level Level) ClientOption {
	return func(c *Client) {
		c.level = level
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL overrides the scheme and host for both reads and writes (for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(url, "/")
	}
}

// WithRateLimit sets the request rate in requests per second.
func WithRateLimit(perSecond float64) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a new ORCID API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		level:      Member,
	}

	// Check for credentials in environment
	if token := os.Getenv("ORCID_ACCESS_TOKEN"); token != "" {
		c.token = token
	}
	if id := os.Getenv("ORCID_ID"); id != "" {
		c.orcidID = id
	}

	// Apply options
	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}

	return c
}

// Identifier returns the configured iD.
func (c *Client) Identifier() (string, error) {
	if c.orcidID == "" {
		return "", ErrNoIdentifier
	}
	return c.orcidID, nil
}

// AccessToken returns the configured bearer token.
func (c *Client) AccessToken() (string, error) {
	if c.token == "" {
		return "", ErrNoAccessToken
	}
	return c.token, nil
}

// hostURL returns scheme and host for the given API level.
func (c *Client) hostURL(level Level) string {
	if c.baseURL != "" {
		return c.baseURL
	}
	return "https://" + string(level) + "." + c.environment.host()
}

// Endpoint builds {host}/v{version}/{id}/{endpoint} for reads.
func (c *Client) Endpoint(endpoint string, version profile.APIVersion, id string) string {
	return c.versionedURL(c.level, endpoint, version, id)
}

func (c *Client) versionedURL(level Level, endpoint string, version profile.APIVersion, id string) string {
	return c.hostURL(level) + "/v" + version.String() + "/" + id + "/" + endpoint
}

// WriteEndpoint maps a scope to the member-API URL a write must go to. Writes
// always use the member host. OAuth scope strings such as
// "/orcid-works/create" resolve to their endpoint ("orcid-works"); anything
// else is taken as a path below the iD ("work", "work/1234").
func (c *Client) WriteEndpoint(scope string, version profile.APIVersion, id string) (string, error) {
	endpoint, err := EndpointForScope(scope)
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", ErrNoIdentifier
	}
	return c.versionedURL(Member, endpoint, version, id), nil
}

// EndpointForScope returns the endpoint path for a write scope.
func EndpointForScope(scope string) (string, error) {
	path := strings.Trim(strings.TrimSpace(scope), "/")
	if path == "" {
		return "", fmt.Errorf("%w: empty scope", ErrInvalidScope)
	}

	parts := strings.Split(path, "/")
	for _, p := range parts {
		if p == "" || p == "." || p == ".." {
			return "", fmt.Errorf("%w: %q", ErrInvalidScope, scope)
		}
	}

	if len(parts) == 2 {
		switch parts[1] {
		case "create", "update":
			return parts[0], nil
		}
	}
	return path, nil
}

// FetchProfile retrieves the full record. An empty id means the client's own iD.
func (c *Client) FetchProfile(ctx context.Context, id string, version profile.APIVersion) (document.Node, error) {
	if id == "" {
		var err error
		if id, err = c.Identifier(); err != nil {
			return nil, err
		}
	}

	endpoint := recordEndpointV20
	if version == profile.V12 {
		endpoint = recordEndpointV12
	}

	return c.get(ctx, c.Endpoint(endpoint, version, id), id)
}

// get issues a rate-limited GET and decodes the JSON body.
func (c *Client) get(ctx context.Context, url, id string) (document.Node, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", AcceptJSON)
	req.Header.Set("User-Agent", UserAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.logger.Debug("ORCID GET", "url", url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	if err := checkHTTPErrors(resp, id); err != nil {
		return nil, err
	}

	doc, err := document.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return doc, nil
}

// checkHTTPErrors returns an error if the HTTP response indicates a problem.
func checkHTTPErrors(resp *http.Response, id string) error {
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return &APIError{StatusCode: resp.StatusCode, Code: "not_found", Message: "record not found", ORCID: id}
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: status %d", ErrAuthError, resp.StatusCode)
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: status %d", ErrRateLimited, resp.StatusCode)
	case resp.StatusCode >= 400:
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       "api_error",
			Message:    fmt.Sprintf("HTTP %d", resp.StatusCode),
			ORCID:      id,
		}
	}
	return nil
}
