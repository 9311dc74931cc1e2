package auth

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallbackListener_RedirectURI(t *testing.T) {
	l, err := newCallbackListener("test-state")
	require.NoError(t, err)
	defer l.Close()

	u, err := url.Parse(l.redirectURI())
	require.NoError(t, err)
	assert.Equal(t, "http", u.Scheme)
	assert.True(t, strings.HasPrefix(u.Host, "127.0.0.1:"))
	assert.Equal(t, CallbackPath, u.Path)
}

func TestCallbackListener_StateMismatchIsNotTerminal(t *testing.T) {
	l, err := newCallbackListener("expected-state")
	require.NoError(t, err)
	defer l.Close()

	resp, err := http.Get(l.redirectURI() + "?state=wrong-state&code=stolen-code")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// The attempt is still live: nothing was delivered.
	select {
	case res := <-l.results:
		t.Fatalf("mismatched state resolved the attempt: %+v", res)
	case <-time.After(50 * time.Millisecond):
	}

	// A matching redirect afterwards still wins.
	resp, err = http.Get(l.redirectURI() + "?state=expected-state&code=real-code")
	require.NoError(t, err)
	resp.Body.Close()

	select {
	case res := <-l.results:
		assert.Equal(t, "real-code", res.code)
	case <-time.After(time.Second):
		t.Fatal("matching redirect was not delivered")
	}
}

func TestCallbackListener_OtherPathsNotFound(t *testing.T) {
	l, err := newCallbackListener("s")
	require.NoError(t, err)
	defer l.Close()

	// Only the root path is the callback endpoint.
	u, _ := url.Parse(l.redirectURI())
	for _, path := range []string{"/favicon.ico", "/callback", "/oauth"} {
		resp, err := http.Get("http://" + u.Host + path + "?state=s&code=stray")
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, "path %s", path)
	}

	// Nothing above resolved the attempt; the real redirect still wins.
	resp, err := http.Get(l.redirectURI() + "?state=s&code=real-code")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	res := <-l.results
	assert.Equal(t, "real-code", res.code)
}

func TestCallbackListener_DeniedPage(t *testing.T) {
	l, err := newCallbackListener("s")
	require.NoError(t, err)
	defer l.Close()

	resp, err := http.Get(l.redirectURI() + "?state=s&error=access_denied")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Authorization declined")

	res := <-l.results
	assert.Equal(t, "access_denied", res.errCode)
	assert.Empty(t, res.code)
}

func TestCallbackListener_DoubleCloseIsSafe(t *testing.T) {
	l, err := newCallbackListener("s")
	require.NoError(t, err)

	l.Close()
	l.Close()
}
