package auth

import "golang.org/x/oauth2"

// Scopes is the fixed, ordered permission set requested on every attempt.
// It must not vary between attempts for a given client: changing it forces
// re-consent and makes previously issued refresh tokens incompatible.
var Scopes = []string{
	"https://www.googleapis.com/auth/gmail.modify",
	"https://www.googleapis.com/auth/calendar",
	"https://www.googleapis.com/auth/drive",
}

// endpoint returns the OAuth endpoints, honoring test overrides.
func (c *LoginConfig) endpoint() oauth2.Endpoint {
	ep := oauth2.Endpoint{
		AuthURL:  DefaultAuthURL,
		TokenURL: DefaultTokenURL,
	}
	if c.AuthURL != "" {
		ep.AuthURL = c.AuthURL
	}
	if c.TokenURL != "" {
		ep.TokenURL = c.TokenURL
	}
	return ep
}

// oauthConfig builds a fresh per-attempt oauth2.Config. The value is never
// mutated after construction; each attempt builds its own with the redirect
// URI its mode requires.
func (c *LoginConfig) oauthConfig(redirectURI string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		RedirectURL:  redirectURI,
		Scopes:       Scopes,
		Endpoint:     c.endpoint(),
	}
}

// authorizeURL builds the provider authorization URL for one attempt.
// The query carries client_id, redirect_uri, response_type=code, the
// space-joined scope set, access_type=offline and prompt=consent; state
// is included when non-empty.
func (c *LoginConfig) authorizeURL(redirectURI, state string) string {
	return c.oauthConfig(redirectURI).AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}
