package auth

import (
	"errors"
	"fmt"
	"time"
)

// Credentials represents stored authentication credentials
type Credentials struct {
	// Email of the authorized Google account, if known
	Email string `json:"email,omitempty"`
	// OAuth access token
	AccessToken string `json:"access_token"`
	// OAuth refresh token for renewing access
	RefreshToken string `json:"refresh_token,omitempty"`
	// Token expiration time
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	// Client ID used for authentication
	ClientID string `json:"client_id,omitempty"`
}

// IsExpired checks if the access token has expired
func (c *Credentials) IsExpired() bool {
	if c.ExpiresAt == nil {
		return false // No expiry means token doesn't expire
	}
	return time.Now().After(*c.ExpiresAt)
}

// TimeUntilExpiry returns the duration until token expiry
func (c *Credentials) TimeUntilExpiry() time.Duration {
	if c.ExpiresAt == nil {
		return time.Duration(0)
	}
	return time.Until(*c.ExpiresAt)
}

// AuthStatus represents the current authentication status
type AuthStatus struct {
	LoggedIn     bool
	Credentials  *Credentials
	Error        error
	NeedsRefresh bool
}

// Reason classifies why an authorization attempt ended without credentials.
type Reason string

const (
	// ReasonUserCancelled means the provider redirected back with an error
	// parameter (consent denied or cancelled).
	ReasonUserCancelled Reason = "user_cancelled"
	// ReasonMissingCode means the callback or pasted URL carried no code.
	ReasonMissingCode Reason = "missing_code"
	// ReasonBindFailure means the loopback listener could not start.
	ReasonBindFailure Reason = "bind_failure"
	// ReasonTimedOut means nothing resolved the attempt within the deadline.
	ReasonTimedOut Reason = "timed_out"
	// ReasonExchangeFailure means the code-for-token exchange failed.
	ReasonExchangeFailure Reason = "exchange_failure"
	// ReasonNoRefreshToken means the provider returned tokens but withheld
	// the refresh token (typically on repeat consent).
	ReasonNoRefreshToken Reason = "no_refresh_token"
)

// FlowError is the typed failure returned by Flow.Authorize. Every
// non-success outcome of an attempt is one of these; the flow never
// panics or silently swallows a failure.
type FlowError struct {
	Reason Reason
	Detail string
	Err    error
}

func (e *FlowError) Error() string {
	switch {
	case e.Detail != "" && e.Err != nil:
		return fmt.Sprintf("authorization failed (%s): %s: %v", e.Reason, e.Detail, e.Err)
	case e.Detail != "":
		return fmt.Sprintf("authorization failed (%s): %s", e.Reason, e.Detail)
	case e.Err != nil:
		return fmt.Sprintf("authorization failed (%s): %v", e.Reason, e.Err)
	default:
		return fmt.Sprintf("authorization failed (%s)", e.Reason)
	}
}

func (e *FlowError) Unwrap() error {
	return e.Err
}

// ReasonOf extracts the failure reason from an error returned by
// Flow.Authorize, or "" if the error is not a FlowError.
func ReasonOf(err error) Reason {
	var fe *FlowError
	if errors.As(err, &fe) {
		return fe.Reason
	}
	return ""
}

// ErrAttemptInFlight is returned when Authorize is called while a prior
// attempt on the same Flow has not yet reached a terminal outcome.
var ErrAttemptInFlight = errors.New("an authorization attempt is already in flight")

// LoginConfig contains configuration for the login process
type LoginConfig struct {
	// OAuth client ID of the installed application
	ClientID string
	// OAuth client secret of the installed application
	ClientSecret string
	// Don't open browser automatically
	NoBrowser bool
	// Force re-authentication even if already logged in
	Force bool
	// Override authorization endpoint (for testing)
	AuthURL string
	// Override token endpoint (for testing)
	TokenURL string
}

// Constants for OAuth configuration
const (
	// Google OAuth authorization endpoint
	DefaultAuthURL = "https://accounts.google.com/o/oauth2/v2/auth"
	// Google OAuth token endpoint
	DefaultTokenURL = "https://oauth2.googleapis.com/token"
	// Path served by the loopback callback listener
	CallbackPath = "/"
	// Redirect URI used in manual mode. Nothing listens there: the user
	// copies the resulting address bar content back into the terminal.
	ManualRedirectURI = "http://127.0.0.1:1/"
	// Maximum time to wait for the redirect or the pasted URL
	AuthorizeTimeout = 2 * time.Minute
	// Keyring service name
	KeyringService = "grove"
	// Keyring username
	KeyringUsername = "default"
)
