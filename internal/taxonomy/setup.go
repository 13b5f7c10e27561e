// Package taxonomy prepares the local taxonomy cache: it extracts the
// taxonomy archive and discovers entry point schemas for the emitter's
// schemaRef to resolve against.
package taxonomy

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Setup replaces cacheDir with the contents of the taxonomy archive and
// returns the entry point schema paths found inside, relative to cacheDir.
func Setup(archivePath, cacheDir string) ([]string, error) {
	if _, err := os.Stat(archivePath); err != nil {
		return nil, fmt.Errorf("taxonomy archive %s: %w", archivePath, err)
	}

	if err := os.RemoveAll(cacheDir); err != nil {
		return nil, fmt.Errorf("remove existing taxonomy cache: %w", err)
	}
	if err := Extract(archivePath, cacheDir); err != nil {
		return nil, err
	}

	entrypoints, err := FindEntrypoints(cacheDir)
	if err != nil {
		return nil, err
	}
	slog.Info("taxonomy cache ready", "dir", cacheDir, "entrypoints", len(entrypoints))
	return entrypoints, nil
}

// Extract unpacks a zip archive into destDir. Entries escaping the
// destination are rejected.
func Extract(archivePath, destDir string) error {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("open taxonomy archive %s: %w", archivePath, err)
	}
	defer func() { _ = zr.Close() }()

	for _, entry := range zr.File {
		if err := extractEntry(entry, destDir); err != nil {
			return err
		}
	}
	return nil
}

func extractEntry(entry *zip.File, destDir string) error {
	dest := filepath.Join(destDir, filepath.FromSlash(entry.Name))
	if rel, err := filepath.Rel(destDir, dest); err != nil || strings.HasPrefix(rel, "..") {
		return fmt.Errorf("archive entry %q escapes destination", entry.Name)
	}

	if entry.FileInfo().IsDir() {
		return os.MkdirAll(dest, 0755)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(dest), err)
	}

	src, err := entry.Open()
	if err != nil {
		return fmt.Errorf("read archive entry %s: %w", entry.Name, err)
	}
	defer func() { _ = src.Close() }()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, src); err != nil {
		return fmt.Errorf("extract %s: %w", entry.Name, err)
	}
	return nil
}

// FindEntrypoints walks the cache directory for *entry_point*.xsd schemas,
// returning paths relative to cacheDir in walk order.
func FindEntrypoints(cacheDir string) ([]string, error) {
	var entrypoints []string
	err := filepath.WalkDir(cacheDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if strings.Contains(name, "entry_point") && strings.HasSuffix(name, ".xsd") {
			rel, err := filepath.Rel(cacheDir, path)
			if err != nil {
				return err
			}
			entrypoints = append(entrypoints, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan taxonomy cache: %w", err)
	}
	return entrypoints, nil
}
