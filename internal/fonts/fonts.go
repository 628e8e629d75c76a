package fonts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"keychain-designer/internal/archive"
)

// Exts are the file extensions treated as font files.
var Exts = []string{".ttf", ".otf"}

// DefaultDirs are the font directories searched when none are configured (relative to the cwd).
func DefaultDirs() []string {
	return []string{"assets/fonts", "../../assets/fonts"}
}

// ScanDir returns relative paths of all font files under dir (e.g. "Quicksand/Quicksand-Regular.ttf").
// Paths use forward slashes. A missing dir yields no paths and no error.
func ScanDir(dir string) ([]string, error) {
	var out []string
	dir = filepath.Clean(dir)
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() || !isFontFile(path) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	return out, err
}

func isFontFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Exts {
		if ext == e {
			return true
		}
	}
	return false
}

// normalizeForMatch lowercases and removes spaces, dashes, and underscores for fuzzy matching.
func normalizeForMatch(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

// FindFont searches dirs for a font file whose relative path contains the family name
// ("Playfair Display" matches "PlayfairDisplay/PlayfairDisplay-Regular.ttf").
// When several files match, one whose name contains "regular" wins.
// Returns the full path, or os.ErrNotExist.
func FindFont(dirs []string, family string) (string, error) {
	norm := normalizeForMatch(family)
	if norm == "" {
		return "", os.ErrNotExist
	}
	var matches []string
	for _, base := range dirs {
		list, err := ScanDir(base)
		if err != nil || len(list) == 0 {
			continue
		}
		for _, rel := range list {
			if strings.Contains(normalizeForMatch(rel), norm) {
				matches = append(matches, filepath.Join(base, filepath.FromSlash(rel)))
			}
		}
	}
	if len(matches) == 0 {
		return "", os.ErrNotExist
	}
	for _, m := range matches {
		if strings.Contains(strings.ToLower(filepath.Base(m)), "regular") {
			return m, nil
		}
	}
	return matches[0], nil
}

// UnpackFamily looks for a zip font pack named after family in dirs (e.g. "Playfair_Display.zip"),
// extracts it next to the zip and returns the family's font file from it.
// Returns os.ErrNotExist when no pack matches.
func UnpackFamily(dirs []string, family string) (string, error) {
	norm := normalizeForMatch(family)
	if norm == "" {
		return "", os.ErrNotExist
	}
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			name := e.Name()
			if e.IsDir() || !archive.IsZip(name) || !strings.Contains(normalizeForMatch(name), norm) {
				continue
			}
			dest := filepath.Join(dir, strings.TrimSuffix(name, filepath.Ext(name)))
			if _, err := archive.Unzip(filepath.Join(dir, name), dest); err != nil {
				return "", fmt.Errorf("fonts: %w", err)
			}
			return FindFont([]string{dest}, family)
		}
	}
	return "", os.ErrNotExist
}
