package googlefonts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keychain-designer/internal/download"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ofl/playfair-display":
			_ = json.NewEncoder(w).Encode([]githubFile{
				{Name: "OFL.txt", Type: "file", DownloadURL: srv.URL + "/raw/OFL.txt"},
				{Name: "PlayfairDisplay-Italic.ttf", Type: "file", DownloadURL: srv.URL + "/raw/PlayfairDisplay-Italic.ttf"},
				{Name: "PlayfairDisplay-Regular.ttf", Type: "file", DownloadURL: srv.URL + "/raw/PlayfairDisplay-Regular.ttf"},
				{Name: "Evil.ttf", Type: "file", DownloadURL: "https://evil.example/Evil.ttf"},
			})
		case "/ofl/italiconly":
			_ = json.NewEncoder(w).Encode([]githubFile{
				{Name: "ItalicOnly-Italic.ttf", Type: "file", DownloadURL: srv.URL + "/raw/ItalicOnly-Italic.ttf"},
			})
		case "/raw/PlayfairDisplay-Regular.ttf":
			w.Header().Set("Content-Type", "font/ttf")
			_, _ = w.Write([]byte("regular"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return &Client{
		APIBase:   srv.URL + "/ofl",
		RawPrefix: srv.URL + "/raw/",
		HTTP:      srv.Client(),
		Download:  download.New(),
	}
}

func TestNormalizeFamily(t *testing.T) {
	assert.Equal(t, []string{"quicksand"}, NormalizeFamily(" Quicksand "))
	assert.Equal(t, []string{"playfairdisplay", "playfair-display"}, NormalizeFamily("Playfair Display"))
	assert.Nil(t, NormalizeFamily(""))
}

func TestFetchDownloadURL(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	u, err := c.FetchDownloadURL(ctx, "playfair-display")
	require.NoError(t, err)
	assert.Equal(t, c.RawPrefix+"PlayfairDisplay-Regular.ttf", u)

	u, err = c.FetchDownloadURL(ctx, "italiconly")
	require.NoError(t, err)
	assert.Equal(t, c.RawPrefix+"ItalicOnly-Italic.ttf", u)

	_, err = c.FetchDownloadURL(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFetchFamilyTriesVariants(t *testing.T) {
	c := newTestClient(t)
	dir := t.TempDir()
	path, err := c.FetchFamily(context.Background(), "Playfair Display", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "PlayfairDisplay-Regular.ttf"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "regular", string(data))

	_, err = c.FetchFamily(context.Background(), "Comic Sans MS", dir)
	assert.ErrorIs(t, err, ErrNotFound)
}
