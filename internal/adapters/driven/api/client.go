package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/madrasa-labs/bahith-cli/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.SchoolAPI = (*Client)(nil)

const (
	// DefaultTimeout is the per-request HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// requestRate caps outgoing requests. The fan-out issues up to eight
	// lookups per keystroke burst; this keeps a typing user from hammering
	// the backend.
	requestRate = 10

	// requestBurst allows one full fan-out to go through unthrottled.
	requestBurst = 10
)

// Client talks to the school-management backend.
type Client struct {
	base    *url.URL
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a backend client for the given base URL. A non-empty
// token is sent as a bearer token on every request.
func NewClient(baseURL, token string) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	hc := &http.Client{Timeout: DefaultTimeout}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		hc = oauth2.NewClient(context.Background(), ts)
		hc.Timeout = DefaultTimeout
	}

	return &Client{
		base:    base,
		http:    hc,
		limiter: rate.NewLimiter(rate.Limit(requestRate), requestBurst),
	}, nil
}

// get performs a rate-limited GET and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	u := c.base.JoinPath(path)
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return classifyTransportError(path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: unexpected status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return malformed(path, err)
	}
	return nil
}
