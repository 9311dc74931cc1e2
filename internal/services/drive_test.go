package services

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovecli/grove/internal/api"
)

func TestDrive_ListFiles(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/files", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "modifiedTime desc", q.Get("orderBy"))
		assert.Equal(t, "5", q.Get("pageSize"))
		assert.Equal(t, "mimeType contains 'image/'", q.Get("q"))

		fmt.Fprint(w, `{"files": [
			{"id": "f1", "name": "photo.png", "mimeType": "image/png", "modifiedTime": "2026-08-27T12:00:00Z"}
		]}`)
	})

	d := newTestService(t, mux, func(c *api.Client, baseURL string) *Drive {
		return &Drive{client: c, baseURL: baseURL}
	})

	files, err := d.ListFiles(context.Background(), "mimeType contains 'image/'", 5)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "photo.png", files[0].Name)
}

func TestDrive_SearchByNameEscapesQuotes(t *testing.T) {
	var gotQuery string
	mux := http.NewServeMux()
	mux.HandleFunc("/files", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		fmt.Fprint(w, `{"files": []}`)
	})

	d := newTestService(t, mux, func(c *api.Client, baseURL string) *Drive {
		return &Drive{client: c, baseURL: baseURL}
	})

	_, err := d.SearchByName(context.Background(), "O'Brien report", 10)
	require.NoError(t, err)
	assert.Equal(t, `name contains 'O\'Brien report' and trashed = false`, gotQuery)
}

func TestEscapeQueryValue(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "plain", want: "plain"},
		{in: "O'Brien", want: `O\'Brien`},
		{in: `back\slash`, want: `back\\slash`},
		{in: `both\'`, want: `both\\\'`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, escapeQueryValue(tt.in), "input %q", tt.in)
	}
}
