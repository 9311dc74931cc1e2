package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/grovecli/grove/internal/api"
)

const defaultDriveBaseURL = "https://www.googleapis.com/drive/v3"

// Drive wraps the Google Drive API
type Drive struct {
	client  *api.Client
	baseURL string
}

// NewDrive creates a Drive service
func NewDrive(client *api.Client) *Drive {
	return &Drive{client: client, baseURL: defaultDriveBaseURL}
}

// File is a Drive file in list form
type File struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	MimeType     string `json:"mimeType"`
	ModifiedTime string `json:"modifiedTime"`
	Size         string `json:"size,omitempty"`
}

// ListFiles returns files matching the Drive query, newest first. An
// empty query lists recent files.
func (d *Drive) ListFiles(ctx context.Context, query string, max int) ([]File, error) {
	if max <= 0 {
		max = 20
	}

	params := url.Values{
		"pageSize": {strconv.Itoa(max)},
		"orderBy":  {"modifiedTime desc"},
		"fields":   {"files(id,name,mimeType,modifiedTime,size)"},
	}
	if query != "" {
		params.Set("q", query)
	}

	var resp struct {
		Files []File `json:"files"`
	}
	if err := d.client.GetJSON(ctx, d.baseURL+"/files", params, &resp); err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	return resp.Files, nil
}

// SearchByName lists files whose names contain the given text.
func (d *Drive) SearchByName(ctx context.Context, name string, max int) ([]File, error) {
	query := fmt.Sprintf("name contains '%s' and trashed = false", escapeQueryValue(name))
	return d.ListFiles(ctx, query, max)
}

// escapeQueryValue escapes a value for the Drive query language, which
// quotes strings with single quotes and escapes with backslashes.
func escapeQueryValue(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
