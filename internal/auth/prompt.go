package auth

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/AlecAivazis/survey/v2"
)

// promptRedirectURL blocks for one pasted redirect URL from the console.
func promptRedirectURL() (string, error) {
	var raw string
	prompt := &survey.Input{
		Message: "Paste the full redirect URL from your browser's address bar:",
	}
	if err := survey.AskOne(prompt, &raw, survey.WithValidator(survey.Required)); err != nil {
		return "", fmt.Errorf("failed to read redirect URL: %w", err)
	}
	return strings.TrimSpace(raw), nil
}

// parseRedirect extracts the same query parameters from a pasted URL that
// the callback listener would have received.
func parseRedirect(raw string) (callbackResult, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return callbackResult{}, fmt.Errorf("not a valid URL: %w", err)
	}
	q := u.Query()
	return callbackResult{
		code:    q.Get("code"),
		errCode: q.Get("error"),
	}, nil
}
