package auth

import (
	"context"

	"golang.org/x/oauth2"
)

// TokenExchanger exchanges an authorization code for tokens. The redirect
// URI must be the one sent in the authorization request it answers.
type TokenExchanger interface {
	Exchange(ctx context.Context, code, redirectURI string) (*oauth2.Token, error)
}

// TokenRefresher renews an access token from a stored refresh token.
type TokenRefresher interface {
	Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error)
}

// BrowserOpener defines the interface for opening URLs in a browser
type BrowserOpener interface {
	OpenURL(url string) error
}
