package oauth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	googleoauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"heritage-archive/pkg/config"
)

// GoogleUserInfo is the identity returned after a successful sign-in.
// ID is Google's stable subject and becomes the profile id.
type GoogleUserInfo struct {
	ID            string
	Email         string
	VerifiedEmail bool
	Name          string
	GivenName     string
	FamilyName    string
	Picture       string
}

type GoogleOAuth struct {
	config     *oauth2.Config
	httpClient *http.Client
}

func NewGoogleOAuth(cfg config.GoogleOAuthConfig) *GoogleOAuth {
	return &GoogleOAuth{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes: []string{
				googleoauth2.OpenIDScope,
				googleoauth2.UserinfoEmailScope,
				googleoauth2.UserinfoProfileScope,
			},
			Endpoint: google.Endpoint,
		},
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// GetAuthURL generates the Google OAuth authorization URL
func (g *GoogleOAuth) GetAuthURL(state string) string {
	return g.config.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "select_account"))
}

// Authenticate exchanges the authorization code and fetches the signed-in user's identity.
func (g *GoogleOAuth) Authenticate(ctx context.Context, code string) (*GoogleUserInfo, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, g.httpClient)

	token, err := g.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}

	srv, err := googleoauth2.NewService(ctx, option.WithTokenSource(g.config.TokenSource(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("failed to create userinfo service: %w", err)
	}

	info, err := srv.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}

	if info.Id == "" {
		return nil, errors.New("invalid user info: missing ID")
	}

	verified := false
	if info.VerifiedEmail != nil {
		verified = *info.VerifiedEmail
	}

	return &GoogleUserInfo{
		ID:            info.Id,
		Email:         info.Email,
		VerifiedEmail: verified,
		Name:          info.Name,
		GivenName:     info.GivenName,
		FamilyName:    info.FamilyName,
		Picture:       info.Picture,
	}, nil
}

// ValidateConfig checks if the Google OAuth configuration is valid
func (g *GoogleOAuth) ValidateConfig() error {
	if g.config.ClientID == "" {
		return errors.New("GOOGLE_CLIENT_ID is not configured")
	}
	if g.config.ClientSecret == "" {
		return errors.New("GOOGLE_CLIENT_SECRET is not configured")
	}
	if g.config.RedirectURL == "" {
		return errors.New("GOOGLE_REDIRECT_URL is not configured")
	}
	return nil
}
