package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// userinfoURL is Google's OIDC userinfo endpoint.
const userinfoURL = "https://openidconnect.googleapis.com/v1/userinfo"

// ErrNoEmail indicates the provider returned a profile without an email
// claim, which the application cannot use as an identity.
var ErrNoEmail = errors.New("auth: identity provider returned no email")

// Profile is the subset of OIDC userinfo claims the application consumes.
type Profile struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Authenticator drives the OAuth authorization-code flow against Google.
type Authenticator struct {
	cfg         *oauth2.Config
	userinfoURL string
}

// NewAuthenticator creates an Authenticator for the given client
// credentials and registered redirect URL.
func NewAuthenticator(clientID, clientSecret, redirectURL string) *Authenticator {
	return &Authenticator{
		cfg: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		userinfoURL: userinfoURL,
	}
}

// AuthCodeURL returns the provider URL to redirect the browser to.
func (a *Authenticator) AuthCodeURL(state string) string {
	return a.cfg.AuthCodeURL(state)
}

// Exchange trades an authorization code for the caller's profile.
func (a *Authenticator) Exchange(ctx context.Context, code string) (*Profile, error) {
	token, err := a.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	return a.fetchProfile(ctx, token)
}

// fetchProfile loads the OIDC userinfo claims for an access token.
func (a *Authenticator) fetchProfile(ctx context.Context, token *oauth2.Token) (*Profile, error) {
	client := a.cfg.Client(ctx, token)

	resp, err := client.Get(a.userinfoURL)
	if err != nil {
		return nil, fmt.Errorf("fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("userinfo returned %d: %s", resp.StatusCode, string(detail))
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("decode userinfo: %w", err)
	}

	if profile.Email == "" {
		return nil, ErrNoEmail
	}

	return &profile, nil
}
