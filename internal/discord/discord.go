// Package discord wraps the Discord OAuth2 flow and the identity lookup
// the voting API needs.
package discord

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"goty/backend/internal/directory"
)

const (
	apiURL       = "https://discord.com/api/v10"
	authorizeURL = "https://discord.com/oauth2/authorize"
	tokenURL     = apiURL + "/oauth2/token"
)

// ErrUpstream wraps any rejection from Discord. Callers never retry; the
// failure surfaces as-is.
var ErrUpstream = errors.New("discord rejected the request")

// User is the slice of /users/@me this service cares about.
type User struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	GlobalName string `json:"global_name"`
}

// DisplayName prefers the global display name over the account username.
func (u User) DisplayName() string {
	if u.GlobalName != "" {
		return u.GlobalName
	}
	return u.Username
}

// Client performs the authorization-code exchange and resolves access
// tokens to users, refreshing the local name directory as it goes.
type Client struct {
	oauth *oauth2.Config
	http  *http.Client
	dir   *directory.Directory
}

// NewClient builds a client for the given OAuth application. dir may be nil
// to skip the directory upsert.
func NewClient(clientID, clientSecret, redirectURL string, dir *directory.Directory) *Client {
	return &Client{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"identify", "email"},
			Endpoint: oauth2.Endpoint{
				AuthURL:   authorizeURL,
				TokenURL:  tokenURL,
				AuthStyle: oauth2.AuthStyleInHeader,
			},
		},
		http: &http.Client{Timeout: 10 * time.Second},
		dir:  dir,
	}
}

// Configured reports whether OAuth credentials are present; without them
// the site runs in read-only mode with no login button.
func (c *Client) Configured() bool {
	return c.oauth.ClientID != "" && c.oauth.ClientSecret != ""
}

// AuthURL is the authorization redirect for the login button.
func (c *Client) AuthURL() string {
	return c.oauth.AuthCodeURL(uuid.NewString(), oauth2.SetAuthURLParam("prompt", "none"))
}

// Exchange trades the callback code for an access token.
func (c *Client) Exchange(ctx context.Context, code string) (string, error) {
	tok, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return tok.AccessToken, nil
}

// ResolveUser asks Discord who owns the access token and upserts the name
// directory on success.
func (c *Client) ResolveUser(ctx context.Context, accessToken string) (User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL+"/users/@me", nil)
	if err != nil {
		return User{}, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return User{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return User{}, fmt.Errorf("%w: users/@me returned %d", ErrUpstream, resp.StatusCode)
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return User{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if c.dir != nil {
		if err := c.dir.Upsert(user.ID, user.DisplayName()); err != nil {
			slog.Warn("failed to update user directory", "user", user.ID, "error", err)
		}
	}
	return user, nil
}
