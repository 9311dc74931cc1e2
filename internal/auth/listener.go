package auth

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// callbackResult is what one terminal redirect carries: an authorization
// code on success, or the provider's error code on denial.
type callbackResult struct {
	code    string
	errCode string
}

// callbackListener is the ephemeral loopback endpoint owned by a single
// authorization attempt. It binds an OS-assigned port before the
// authorization URL is built (the port is part of the redirect URI),
// captures exactly one terminal redirect, and is discarded afterwards.
type callbackListener struct {
	ln        net.Listener
	srv       *http.Server
	state     string
	results   chan callbackResult
	resolved  atomic.Bool
	closeOnce sync.Once
}

func newCallbackListener(state string) (*callbackListener, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, &FlowError{Reason: ReasonBindFailure, Detail: "could not bind loopback listener", Err: err}
	}

	l := &callbackListener{
		ln:      ln,
		state:   state,
		results: make(chan callbackResult, 1),
	}

	mux := http.NewServeMux()
	mux.HandleFunc(CallbackPath, l.handleCallback)
	l.srv = &http.Server{Handler: mux}

	go func() {
		_ = l.srv.Serve(ln)
	}()

	return l, nil
}

// redirectURI returns the loopback redirect URI for this attempt,
// including the OS-assigned port.
func (l *callbackListener) redirectURI() string {
	return fmt.Sprintf("http://%s%s", l.ln.Addr().String(), CallbackPath)
}

func (l *callbackListener) handleCallback(w http.ResponseWriter, r *http.Request) {
	// The redirect arrives at the root path only; anything else (favicon
	// probes and the like) is not a callback.
	if r.URL.Path != CallbackPath {
		http.NotFound(w, r)
		return
	}

	q := r.URL.Query()

	// A redirect carrying someone else's state is not ours; reject it
	// without resolving the attempt.
	if l.state != "" && q.Get("state") != l.state {
		http.Error(w, "state mismatch", http.StatusBadRequest)
		return
	}

	res := callbackResult{
		code:    q.Get("code"),
		errCode: q.Get("error"),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	// Only the first terminal redirect resolves the attempt. Anything
	// after that arrives while we are mid-shutdown and is acknowledged
	// but otherwise ignored.
	if !l.resolved.CompareAndSwap(false, true) {
		_, _ = io.WriteString(w, completedPage)
		return
	}

	if res.errCode != "" {
		_, _ = io.WriteString(w, deniedPage)
	} else {
		_, _ = io.WriteString(w, successPage)
	}

	l.results <- res
}

// Close releases the socket. Safe to call more than once; every exit path
// of an attempt runs it.
func (l *callbackListener) Close() {
	l.closeOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = l.srv.Shutdown(ctx)
	})
}
