// Package identityclient provides a client for the external identity
// provider. It encapsulates the introspection call that turns a bearer token
// into a verified (accountId, role) pair; credential verification and token
// issuance live entirely on the provider's side.
package identityclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ledgerhouse/member-ledger/pkg/identity"
	"github.com/ledgerhouse/member-ledger/pkg/models"
)

// Client is a client for the identity provider.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Make sure we conform to the interface
var _ identity.Authenticator = (*Client)(nil)

// NewClient creates a new identity provider client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// introspection is the provider's response payload.
type introspection struct {
	AccountID string `json:"account_id"`
	Role      string `json:"role"`
}

// Resolve asks the identity provider to introspect the token.
func (c *Client) Resolve(ctx context.Context, token string) (identity.Identity, error) {
	if c.baseURL == "" {
		return identity.Identity{}, fmt.Errorf("identity provider base url is empty")
	}

	url := fmt.Sprintf("%s/introspect", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return identity.Identity{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return identity.Identity{}, fmt.Errorf("failed to call identity provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return identity.Identity{}, fmt.Errorf("identity provider returned status %d", resp.StatusCode)
	}

	var in introspection
	if err := json.NewDecoder(resp.Body).Decode(&in); err != nil {
		return identity.Identity{}, fmt.Errorf("failed to decode introspection response: %w", err)
	}

	if in.AccountID == "" {
		return identity.Identity{}, fmt.Errorf("identity provider returned empty account id")
	}

	return identity.Identity{
		AccountId: in.AccountID,
		Role:      models.Role(in.Role),
	}, nil
}
