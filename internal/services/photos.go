package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/grovecli/grove/internal/api"
)

const defaultPhotosBaseURL = "https://photoslibrary.googleapis.com/v1"

// Photos wraps the Google Photos Library API
type Photos struct {
	client  *api.Client
	baseURL string
}

// NewPhotos creates a Photos service
func NewPhotos(client *api.Client) *Photos {
	return &Photos{client: client, baseURL: defaultPhotosBaseURL}
}

// MediaItem is a photo or video in the user's library
type MediaItem struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	MimeType string `json:"mimeType"`
	BaseURL  string `json:"baseUrl"`
	Metadata struct {
		CreationTime string `json:"creationTime"`
	} `json:"mediaMetadata"`
}

// Album is a Photos album
type Album struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	ItemsCount string `json:"mediaItemsCount"`
}

// ListMediaItems returns the newest items in the library.
func (p *Photos) ListMediaItems(ctx context.Context, max int) ([]MediaItem, error) {
	if max <= 0 {
		max = 25
	}

	params := url.Values{"pageSize": {strconv.Itoa(max)}}

	var resp struct {
		MediaItems []MediaItem `json:"mediaItems"`
	}
	if err := p.client.GetJSON(ctx, p.baseURL+"/mediaItems", params, &resp); err != nil {
		return nil, wrapScopeDenied(fmt.Errorf("failed to list media items: %w", err))
	}
	return resp.MediaItems, nil
}

// wrapScopeDenied explains a 403: the login consent covers mail,
// calendar and file storage, not the Photos Library, so a denial here is
// almost always the missing scope rather than a revoked login.
func wrapScopeDenied(err error) error {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%w\nPhotos access is not part of grove's login scopes; this command needs a client authorized for the Photos Library", err)
	}
	return err
}

// ListAlbums returns the user's albums.
func (p *Photos) ListAlbums(ctx context.Context, max int) ([]Album, error) {
	if max <= 0 {
		max = 20
	}

	params := url.Values{"pageSize": {strconv.Itoa(max)}}

	var resp struct {
		Albums []Album `json:"albums"`
	}
	if err := p.client.GetJSON(ctx, p.baseURL+"/albums", params, &resp); err != nil {
		return nil, wrapScopeDenied(fmt.Errorf("failed to list albums: %w", err))
	}
	return resp.Albums, nil
}
