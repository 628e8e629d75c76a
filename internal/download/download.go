package download

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const defaultUserAgent = "keychain-designer/1.0"

// MaxBytes caps a single download.
const MaxBytes = 32 << 20

// Client fetches remote images and font files over HTTP.
type Client struct {
	HTTP      *http.Client
	UserAgent string
}

// New returns a client with a 60s timeout.
func New() *Client {
	return &Client{HTTP: &http.Client{Timeout: 60 * time.Second}, UserAgent: defaultUserAgent}
}

// Fetch downloads url into memory and returns the body together with a file name derived from
// Content-Disposition or the URL path, with an extension from Content-Type or the URL.
func (c *Client) Fetch(ctx context.Context, url string) (data []byte, name string, err error) {
	resp, err := c.get(ctx, url)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()
	data, err = io.ReadAll(io.LimitReader(resp.Body, MaxBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("download: %w", err)
	}
	if len(data) > MaxBytes {
		return nil, "", fmt.Errorf("download: %s exceeds %d bytes", url, MaxBytes)
	}
	return data, fileName(url, resp.Header), nil
}

// Save downloads url and writes it under destDir (created if needed). Returns the saved path.
func (c *Client) Save(ctx context.Context, url, destDir string) (string, error) {
	data, name, err := c.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	saved := filepath.Join(destDir, name)
	out, err := os.Create(saved)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, bytes.NewReader(data)); err != nil {
		_ = os.Remove(saved)
		return "", fmt.Errorf("download: %w", err)
	}
	return saved, nil
}

func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	ua := c.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	req.Header.Set("User-Agent", ua)
	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("download: HTTP %d", resp.StatusCode)
	}
	return resp, nil
}

// IsURL reports whether s looks like an http(s) URL rather than a local path.
func IsURL(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func fileName(url string, h http.Header) string {
	ext := extensionFromContentType(h.Get("Content-Type"))
	if ext == "" {
		ext = extensionFromURL(url)
	}
	if ext == "" {
		ext = ".bin"
	}
	name := filenameFromContentDisposition(h.Get("Content-Disposition"))
	if name == "" {
		name = filenameFromURL(url)
	}
	name = sanitizeFilename(name)
	if !strings.HasSuffix(strings.ToLower(name), ext) {
		name += ext
	}
	return name
}

func filenameFromContentDisposition(cd string) string {
	cd = strings.TrimSpace(cd)
	// filename="..."; or filename*=UTF-8''...
	if i := strings.Index(cd, "filename*=UTF-8''"); i >= 0 {
		s := cd[i+len("filename*=UTF-8''"):]
		if j := strings.IndexAny(s, ";\r\n"); j >= 0 {
			s = s[:j]
		}
		return strings.Trim(s, "\"")
	}
	if i := strings.Index(cd, "filename="); i >= 0 {
		s := cd[i+len("filename="):]
		if j := strings.IndexAny(s, ";\r\n"); j >= 0 {
			s = s[:j]
		}
		return strings.Trim(s, "\" ")
	}
	return ""
}

func extensionFromContentType(ct string) string {
	ct = strings.ToLower(strings.TrimSpace(ct))
	if idx := strings.Index(ct, ";"); idx >= 0 {
		ct = ct[:idx]
	}
	switch {
	case strings.Contains(ct, "otf"):
		return ".otf"
	case strings.Contains(ct, "font"), strings.Contains(ct, "ttf"):
		return ".ttf"
	case strings.Contains(ct, "png"):
		return ".png"
	case strings.Contains(ct, "jpeg"), strings.Contains(ct, "jpg"):
		return ".jpg"
	case strings.Contains(ct, "gif"):
		return ".gif"
	case strings.Contains(ct, "webp"):
		return ".webp"
	case strings.Contains(ct, "bmp"):
		return ".bmp"
	}
	return ""
}

var knownExts = map[string]bool{
	".ttf": true, ".otf": true, ".png": true, ".jpg": true, ".jpeg": true,
	".gif": true, ".webp": true, ".bmp": true,
}

func extensionFromURL(url string) string {
	ext := strings.ToLower(filepath.Ext(stripQuery(url)))
	if knownExts[ext] {
		return ext
	}
	return ""
}

func filenameFromURL(url string) string {
	base := filepath.Base(stripQuery(url))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func stripQuery(url string) string {
	if idx := strings.IndexAny(url, "?#"); idx >= 0 {
		return url[:idx]
	}
	return url
}

var safeNameRe = regexp.MustCompile(`[^a-zA-Z0-9_.-]+`)

func sanitizeFilename(name string) string {
	name = safeNameRe.ReplaceAllString(name, "_")
	if name == "" || name == "." || name == "_" {
		return "download"
	}
	if len(name) > 96 {
		name = name[:96]
	}
	return name
}
