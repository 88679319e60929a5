// Package identity resolves bearer tokens against the external user
// service. The engine consumes a single capability from it: token in,
// user id out.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ErrInvalidToken marks a token the user service would not vouch for.
var ErrInvalidToken = errors.New("invalid token")

// Resolver turns an opaque bearer token into a user id.
type Resolver interface {
	Resolve(ctx context.Context, token string) (string, error)
}

// Client resolves tokens over the user service's REST API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a resolver for the user service at baseURL. Lookups are
// capped at two seconds so a wedged identity service cannot hold a
// connection's read loop hostage.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 2 * time.Second},
	}
}

func (c *Client) Resolve(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrInvalidToken
	}

	endpoint := fmt.Sprintf("%s/users/tokens/%s", c.baseURL, url.PathEscape(token))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build token lookup: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("token lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", ErrInvalidToken
	}

	var body struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode token lookup: %w", err)
	}
	if body.UserID == "" {
		return "", ErrInvalidToken
	}
	return body.UserID, nil
}
