// Package oauth implements the Google leg of sign-in. Google identities
// only attach to accounts that already exist; provisioning happens
// through employee management.
package oauth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const userinfoEndpoint = "https://www.googleapis.com/oauth2/v2/userinfo"

// Profile is the subset of the Google userinfo payload this system
// reads: the identity fields for account matching plus the display
// name shown when the stored one is blank.
type Profile struct {
	GoogleID      string `json:"id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

type GoogleService interface {
	// GenerateState returns an opaque state value bound to the caller's
	// user agent.
	GenerateState(userAgent string) string
	// AuthURL builds the consent-screen URL carrying the state.
	AuthURL(state string) string
	// Exchange trades the callback code for an access token.
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	// Profile fetches the signed-in user's profile.
	Profile(ctx context.Context, token *oauth2.Token) (Profile, error)
}

type googleService struct {
	config      *oauth2.Config
	userinfoURL string
}

func NewGoogleService(clientID, clientSecret, redirectURL string, scopes []string) GoogleService {
	return &googleService{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       scopes,
			Endpoint:     google.Endpoint,
		},
		userinfoURL: userinfoEndpoint,
	}
}

// GenerateState combines random bytes with a digest of the user agent,
// so the state does not leak the agent string itself.
func (g *googleService) GenerateState(userAgent string) string {
	raw := make([]byte, 24)
	if _, err := rand.Read(raw); err != nil {
		return ""
	}
	sum := sha256.Sum256([]byte(userAgent))
	return base64.RawURLEncoding.EncodeToString(raw) + "." + base64.RawURLEncoding.EncodeToString(sum[:8])
}

func (g *googleService) AuthURL(state string) string {
	return g.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

func (g *googleService) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return g.config.Exchange(ctx, code)
}

func (g *googleService) Profile(ctx context.Context, token *oauth2.Token) (Profile, error) {
	resp, err := g.config.Client(ctx, token).Get(g.userinfoURL)
	if err != nil {
		return Profile{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Profile{}, fmt.Errorf("userinfo request failed: %s", resp.Status)
	}

	var p Profile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return Profile{}, fmt.Errorf("failed to decode userinfo: %w", err)
	}
	return p, nil
}
