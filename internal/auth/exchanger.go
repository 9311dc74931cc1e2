package auth

import (
	"context"

	"golang.org/x/oauth2"
)

// codeExchanger performs the code-for-token exchange against the provider
// token endpoint. It rebuilds the oauth2.Config per call because the
// redirect URI sent during the exchange must match the one used in the
// authorization request, and that differs by mode.
type codeExchanger struct {
	cfg *LoginConfig
}

var (
	_ TokenExchanger = (*codeExchanger)(nil)
	_ TokenRefresher = (*codeExchanger)(nil)
)

func newCodeExchanger(cfg *LoginConfig) *codeExchanger {
	return &codeExchanger{cfg: cfg}
}

// Exchange redeems an authorization code for tokens.
func (e *codeExchanger) Exchange(ctx context.Context, code, redirectURI string) (*oauth2.Token, error) {
	return e.cfg.oauthConfig(redirectURI).Exchange(ctx, code)
}

// Refresh renews an access token using a stored refresh token.
func (e *codeExchanger) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	conf := e.cfg.oauthConfig("")
	src := conf.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	return src.Token()
}
