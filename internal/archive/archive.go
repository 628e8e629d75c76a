package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// MaxEntryBytes caps the size of one extracted file.
const MaxEntryBytes = 64 << 20

// Unzip extracts zipPath into destDir, preserving directory structure.
// destDir is created if needed. Entries that would land outside destDir are skipped.
// Returns the extracted file paths.
func Unzip(zipPath, destDir string) (extracted []string, err error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("archive: %w", err)
	}
	defer r.Close()
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, fmt.Errorf("archive: %w", err)
	}
	absDir, err := filepath.Abs(destDir)
	if err != nil {
		return nil, fmt.Errorf("archive: %w", err)
	}
	for _, f := range r.File {
		dest, err := filepath.Abs(filepath.Join(destDir, f.Name))
		if err != nil {
			return nil, fmt.Errorf("archive: %w", err)
		}
		if !strings.HasPrefix(dest, absDir+string(os.PathSeparator)) {
			continue
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(dest, 0755); err != nil {
				return nil, fmt.Errorf("archive: %w", err)
			}
			continue
		}
		if err := extract(f, dest); err != nil {
			return nil, fmt.Errorf("archive: %s: %w", f.Name, err)
		}
		extracted = append(extracted, dest)
	}
	return extracted, nil
}

func extract(f *zip.File, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	n, err := io.Copy(out, io.LimitReader(rc, MaxEntryBytes+1))
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err == nil && n > MaxEntryBytes {
		err = fmt.Errorf("entry exceeds %d bytes", MaxEntryBytes)
	}
	return err
}

// IsZip reports whether path has a .zip extension.
func IsZip(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".zip")
}
