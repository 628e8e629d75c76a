package googlefonts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"keychain-designer/internal/download"
)

const (
	DefaultAPIBase   = "https://api.github.com/repos/google/fonts/contents/ofl"
	DefaultRawPrefix = "https://raw.githubusercontent.com/google/fonts/"
)

var ErrNotFound = errors.New("googlefonts: family not found")

type githubFile struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	DownloadURL string `json:"download_url"`
}

// Client lists the google/fonts repository and downloads font files from it.
// Only download URLs under RawPrefix are followed.
type Client struct {
	APIBase   string
	RawPrefix string
	HTTP      *http.Client
	Download  *download.Client
}

// New returns a client for the public google/fonts repository.
func New() *Client {
	return &Client{
		APIBase:   DefaultAPIBase,
		RawPrefix: DefaultRawPrefix,
		HTTP:      &http.Client{Timeout: 15 * time.Second},
		Download:  download.New(),
	}
}

// NormalizeFamily converts a display name to the folder names used in google/fonts ofl.
// e.g. "Quicksand" -> ["quicksand"], "Playfair Display" -> ["playfairdisplay", "playfair-display"].
func NormalizeFamily(name string) []string {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	lower := strings.ToLower(name)
	noSpaces := strings.ReplaceAll(lower, " ", "")
	withHyphens := strings.ReplaceAll(lower, " ", "-")
	out := []string{noSpaces}
	if withHyphens != noSpaces {
		out = append(out, withHyphens)
	}
	return out
}

// FetchDownloadURL returns the raw download URL of a font file in folder, preferring
// upright (non-italic) files.
func (c *Client) FetchDownloadURL(ctx context.Context, folder string) (string, error) {
	u := strings.TrimRight(c.APIBase, "/") + "/" + url.PathEscape(folder)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("googlefonts: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("googlefonts: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("%w: %q", ErrNotFound, folder)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("googlefonts: HTTP %d", resp.StatusCode)
	}
	var files []githubFile
	if err := json.NewDecoder(resp.Body).Decode(&files); err != nil {
		return "", fmt.Errorf("googlefonts: %w", err)
	}
	var fallback string
	for _, f := range files {
		if f.Type != "file" || f.DownloadURL == "" {
			continue
		}
		lower := strings.ToLower(f.Name)
		if !strings.HasSuffix(lower, ".ttf") && !strings.HasSuffix(lower, ".otf") {
			continue
		}
		if !strings.HasPrefix(f.DownloadURL, c.RawPrefix) {
			continue
		}
		if strings.Contains(lower, "italic") {
			if fallback == "" {
				fallback = f.DownloadURL
			}
			continue
		}
		return f.DownloadURL, nil
	}
	if fallback != "" {
		return fallback, nil
	}
	return "", fmt.Errorf("%w: no .ttf/.otf file in %q", ErrNotFound, folder)
}

// FetchFamily finds family in google/fonts and saves its font file under dir.
func (c *Client) FetchFamily(ctx context.Context, family, dir string) (string, error) {
	candidates := NormalizeFamily(family)
	if len(candidates) == 0 {
		return "", fmt.Errorf("%w: empty family", ErrNotFound)
	}
	var lastErr error
	for _, folder := range candidates {
		u, err := c.FetchDownloadURL(ctx, folder)
		if err != nil {
			lastErr = err
			continue
		}
		dl := c.Download
		if dl == nil {
			dl = download.New()
		}
		return dl.Save(ctx, u, dir)
	}
	return "", lastErr
}
