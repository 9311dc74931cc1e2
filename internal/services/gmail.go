// Package services wraps the Google REST APIs the grove CLI talks to.
// Each service takes the shared authenticated client and exposes the
// narrow set of operations the commands need.
package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/grovecli/grove/internal/api"
)

const defaultGmailBaseURL = "https://gmail.googleapis.com/gmail/v1"

// Gmail wraps the Gmail API
type Gmail struct {
	client  *api.Client
	baseURL string
}

// NewGmail creates a Gmail service
func NewGmail(client *api.Client) *Gmail {
	return &Gmail{client: client, baseURL: defaultGmailBaseURL}
}

// Message is a Gmail message in metadata form
type Message struct {
	ID      string `json:"id"`
	Snippet string `json:"snippet"`
	From    string `json:"-"`
	Subject string `json:"-"`
	Date    string `json:"-"`
}

type messageList struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
	NextPageToken string `json:"nextPageToken"`
}

type messageMetadata struct {
	ID      string `json:"id"`
	Snippet string `json:"snippet"`
	Payload struct {
		Headers []struct {
			Name  string `json:"name"`
			Value string `json:"value"`
		} `json:"headers"`
	} `json:"payload"`
}

// ListMessages returns up to max messages matching the Gmail search query.
// An empty query lists the newest messages.
func (g *Gmail) ListMessages(ctx context.Context, query string, max int) ([]Message, error) {
	if max <= 0 {
		max = 10
	}

	params := url.Values{"maxResults": {strconv.Itoa(max)}}
	if query != "" {
		params.Set("q", query)
	}

	var list messageList
	if err := g.client.GetJSON(ctx, g.baseURL+"/users/me/messages", params, &list); err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	messages := make([]Message, 0, len(list.Messages))
	for _, m := range list.Messages {
		msg, err := g.getMessage(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		messages = append(messages, *msg)
	}
	return messages, nil
}

// getMessage fetches one message's headers and snippet.
func (g *Gmail) getMessage(ctx context.Context, id string) (*Message, error) {
	params := url.Values{
		"format":          {"metadata"},
		"metadataHeaders": {"From", "Subject", "Date"},
	}

	var meta messageMetadata
	if err := g.client.GetJSON(ctx, g.baseURL+"/users/me/messages/"+id, params, &meta); err != nil {
		return nil, fmt.Errorf("failed to get message %s: %w", id, err)
	}

	msg := &Message{ID: meta.ID, Snippet: meta.Snippet}
	for _, h := range meta.Payload.Headers {
		switch h.Name {
		case "From":
			msg.From = h.Value
		case "Subject":
			msg.Subject = h.Value
		case "Date":
			msg.Date = h.Value
		}
	}
	return msg, nil
}

// Send sends a plain-text email from the authorized account.
func (g *Gmail) Send(ctx context.Context, to, subject, body string) (string, error) {
	rfc822 := strings.Join([]string{
		"To: " + to,
		"Subject: " + subject,
		"Content-Type: text/plain; charset=UTF-8",
		"",
		body,
	}, "\r\n")

	req := map[string]string{
		"raw": base64.URLEncoding.EncodeToString([]byte(rfc822)),
	}

	var resp struct {
		ID string `json:"id"`
	}
	if err := g.client.PostJSON(ctx, g.baseURL+"/users/me/messages/send", req, &resp); err != nil {
		return "", fmt.Errorf("failed to send message: %w", err)
	}
	return resp.ID, nil
}
