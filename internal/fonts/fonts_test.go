package fonts

import (
	"archive/zip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

func writeFont(t *testing.T, dir, rel string, data []byte) string {
	t.Helper()
	full := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, data, 0o644))
	return full
}

func TestFindFontPrefersRegular(t *testing.T) {
	dir := t.TempDir()
	writeFont(t, dir, "PlayfairDisplay/PlayfairDisplay-Bold.ttf", []byte("x"))
	want := writeFont(t, dir, "PlayfairDisplay/PlayfairDisplay-Regular.ttf", []byte("x"))
	writeFont(t, dir, "PlayfairDisplay/README.md", []byte("x"))

	got, err := FindFont([]string{filepath.Join(dir, "missing"), dir}, "Playfair Display")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = FindFont([]string{dir}, "Pacifico")
	assert.ErrorIs(t, err, os.ErrNotExist)
	_, err = FindFont([]string{dir}, "  ")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestScanDirFiltersExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFont(t, dir, "a/A.ttf", []byte("x"))
	writeFont(t, dir, "B.OTF", []byte("x"))
	writeFont(t, dir, "c.txt", []byte("x"))
	list, err := ScanDir(dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a/A.ttf", "B.OTF"}, list)
}

type fakeFetcher struct {
	calls int
	data  []byte
	err   error
}

func (f *fakeFetcher) FetchFamily(_ context.Context, family, dir string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	path := filepath.Join(dir, family+".ttf")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return path, os.WriteFile(path, f.data, 0o644)
}

func TestResolverLocalFont(t *testing.T) {
	dir := t.TempDir()
	writeFont(t, dir, "Quicksand/Quicksand-Regular.ttf", gomono.TTF)
	r := NewResolver(nil, []string{dir}, nil)

	f := r.Resolve(context.Background(), "Quicksand")
	require.NotNil(t, f)
	assert.NotSame(t, Fallback(), f)
	assert.Same(t, f, r.Resolve(context.Background(), "quick sand"))
}

func TestResolverFallbacks(t *testing.T) {
	dir := t.TempDir()
	writeFont(t, dir, "Broken/Broken-Regular.ttf", []byte("not a font"))
	fetch := &fakeFetcher{err: errors.New("offline")}
	r := NewResolver(nil, []string{dir}, fetch)

	assert.Same(t, Fallback(), r.Resolve(context.Background(), "Broken"))
	assert.Same(t, Fallback(), r.Resolve(context.Background(), "Pacifico"))
	assert.Same(t, Fallback(), r.Resolve(context.Background(), ""))
	assert.Equal(t, 1, fetch.calls)

	// cached, no second download attempt
	r.Resolve(context.Background(), "Pacifico")
	assert.Equal(t, 1, fetch.calls)
}

func TestResolverDownloads(t *testing.T) {
	dir := t.TempDir()
	fetch := &fakeFetcher{data: goregular.TTF}
	r := NewResolver(nil, []string{dir}, fetch)

	f := r.Resolve(context.Background(), "Inter")
	require.NotNil(t, f)
	assert.NotSame(t, Fallback(), f)
	assert.Equal(t, 1, fetch.calls)
	assert.FileExists(t, filepath.Join(dir, "Inter.ttf"))
}

func TestResolverUnpacksZipPack(t *testing.T) {
	dir := t.TempDir()
	f, err := os.Create(filepath.Join(dir, "Comic_Sans_MS.zip"))
	require.NoError(t, err)
	w := zip.NewWriter(f)
	fw, err := w.Create("ComicSansMS-Regular.ttf")
	require.NoError(t, err)
	_, err = fw.Write(gomono.TTF)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())

	path, err := UnpackFamily([]string{dir}, "Comic Sans MS")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Comic_Sans_MS", "ComicSansMS-Regular.ttf"), path)

	r := NewResolver(nil, []string{dir}, nil)
	assert.NotSame(t, Fallback(), r.Resolve(context.Background(), "Comic Sans MS"))

	_, err = UnpackFamily([]string{dir}, "Pacifico")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
