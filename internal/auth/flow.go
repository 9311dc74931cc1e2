package auth

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/browser"
)

// defaultBrowserOpener implements BrowserOpener using the browser package
type defaultBrowserOpener struct{}

func (d *defaultBrowserOpener) OpenURL(url string) error {
	return browser.OpenURL(url)
}

// Flow coordinates one interactive authorization attempt: it builds the
// authorization URL, waits for the first of {callback, pasted URL, timeout},
// exchanges the code and returns credentials. A Flow allows one attempt in
// flight at a time; within an attempt the competing event sources race to
// the single terminal outcome, and the listener socket and deadline timer
// are released on every exit path.
type Flow struct {
	cfg       *LoginConfig
	exchanger TokenExchanger
	opener    BrowserOpener

	// Announce is called with the authorization URL once the attempt is
	// ready to receive input. The CLI overrides it for colored output and
	// spinner wiring; the default prints to stdout.
	Announce func(authURL string)

	timeout      time.Duration
	newListener  func(state string) (*callbackListener, error)
	readRedirect func() (string, error)

	inFlight atomic.Bool
}

// NewFlow creates a Flow for the given client configuration.
func NewFlow(cfg *LoginConfig) *Flow {
	if cfg == nil {
		cfg = &LoginConfig{}
	}
	return &Flow{
		cfg:       cfg,
		exchanger: newCodeExchanger(cfg),
		opener:    &defaultBrowserOpener{},
		Announce: func(authURL string) {
			fmt.Println("Open this URL to authorize:")
			fmt.Printf("  %s\n", authURL)
		},
		timeout:      AuthorizeTimeout,
		newListener:  newCallbackListener,
		readRedirect: promptRedirectURL,
	}
}

// Authorize runs one authorization attempt. In automated mode it binds a
// loopback listener and opens the browser; in manual mode it prompts for
// the pasted redirect URL. Non-success outcomes are returned as *FlowError.
func (f *Flow) Authorize(ctx context.Context, manual bool) (*Credentials, error) {
	if !f.inFlight.CompareAndSwap(false, true) {
		return nil, ErrAttemptInFlight
	}
	defer f.inFlight.Store(false)

	if manual {
		return f.authorizeManual(ctx)
	}
	return f.authorizeBrowser(ctx)
}

func (f *Flow) authorizeBrowser(ctx context.Context) (*Credentials, error) {
	state := uuid.NewString()

	// Bind before building the URL: the OS-assigned port is part of the
	// redirect URI. A bind failure is terminal, never a silent fallback
	// to manual mode.
	listener, err := f.newListener(state)
	if err != nil {
		return nil, err
	}
	defer listener.Close()

	redirectURI := listener.redirectURI()
	authURL := f.cfg.authorizeURL(redirectURI, state)

	f.Announce(authURL)
	if !f.cfg.NoBrowser {
		// Best effort: the URL was already printed for manual copy.
		_ = f.opener.OpenURL(authURL)
	}

	timer := time.NewTimer(f.timeout)
	defer timer.Stop()

	select {
	case res := <-listener.results:
		return f.redeem(ctx, res, redirectURI)
	case <-timer.C:
		return nil, &FlowError{Reason: ReasonTimedOut, Detail: fmt.Sprintf("no callback within %s", f.timeout)}
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (f *Flow) authorizeManual(ctx context.Context) (*Credentials, error) {
	// Manual mode sends no state: the sentinel URI never receives a
	// cross-site redirect, the user hand-copies the address bar.
	authURL := f.cfg.authorizeURL(ManualRedirectURI, "")
	f.Announce(authURL)

	results := make(chan callbackResult, 1)
	readErrs := make(chan error, 1)
	go func() {
		raw, err := f.readRedirect()
		if err != nil {
			readErrs <- err
			return
		}
		res, err := parseRedirect(raw)
		if err != nil {
			readErrs <- &FlowError{Reason: ReasonMissingCode, Detail: "pasted input is not a redirect URL", Err: err}
			return
		}
		results <- res
	}()

	// The console read is blocking, but the attempt deadline still applies.
	timer := time.NewTimer(f.timeout)
	defer timer.Stop()

	select {
	case res := <-results:
		return f.redeem(ctx, res, ManualRedirectURI)
	case err := <-readErrs:
		return nil, err
	case <-timer.C:
		return nil, &FlowError{Reason: ReasonTimedOut, Detail: fmt.Sprintf("no input within %s", f.timeout)}
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// redeem maps one terminal redirect to the attempt outcome, exchanging the
// code when there is one. The exchange is not retried.
func (f *Flow) redeem(ctx context.Context, res callbackResult, redirectURI string) (*Credentials, error) {
	if res.errCode != "" {
		return nil, &FlowError{Reason: ReasonUserCancelled, Detail: res.errCode}
	}
	if res.code == "" {
		return nil, &FlowError{Reason: ReasonMissingCode}
	}

	token, err := f.exchanger.Exchange(ctx, res.code, redirectURI)
	if err != nil {
		return nil, &FlowError{Reason: ReasonExchangeFailure, Err: err}
	}
	if token.RefreshToken == "" {
		return nil, &FlowError{
			Reason: ReasonNoRefreshToken,
			Detail: "provider withheld the refresh token; revoke the app's access and log in again",
		}
	}

	creds := &Credentials{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ClientID:     f.cfg.ClientID,
	}
	if !token.Expiry.IsZero() {
		expiresAt := token.Expiry
		creds.ExpiresAt = &expiresAt
	}
	return creds, nil
}
