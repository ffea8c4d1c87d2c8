package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FS implements Provider backed by a flat directory on the local file system.
type FS struct {
	root string // absolute path to the attachments directory
}

// NewFS creates a new FS provider rooted at the given directory, creating
// it if needed.
func NewFS(root string) (*FS, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create root: %w", err)
	}
	return &FS{root: abs}, nil
}

// safeName rejects anything that is not a plain filename (path separators,
// traversal) and returns the absolute path under the root.
func (f *FS) safeName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("storage: filename is required")
	}
	cleaned := filepath.Clean(name)
	if cleaned != filepath.Base(cleaned) || strings.Contains(cleaned, "..") {
		return "", fmt.Errorf("storage: invalid filename: %s", name)
	}
	abs := filepath.Join(f.root, cleaned)
	if !strings.HasPrefix(abs, f.root+string(os.PathSeparator)) {
		return "", fmt.Errorf("storage: path escapes attachments root: %s", name)
	}
	return abs, nil
}

// List returns metadata for every regular file in the store.
func (f *FS) List() ([]FileInfo, error) {
	entries, err := os.ReadDir(f.root)
	if err != nil {
		return nil, fmt.Errorf("storage: list: %w", err)
	}
	var out []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, err
		}
		out = append(out, FileInfo{
			Name:      e.Name(),
			Size:      info.Size(),
			UpdatedAt: info.ModTime(),
		})
	}
	return out, nil
}

// Read returns the raw bytes of an attachment.
func (f *FS) Read(name string) ([]byte, error) {
	abs, err := f.safeName(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", name, err)
	}
	return data, nil
}

// Write atomically stores content: tmp file → fsync → rename.
func (f *FS) Write(name string, content []byte) error {
	abs, err := f.safeName(name)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.root, ".inkpad-tmp-*")
	if err != nil {
		return fmt.Errorf("storage: create temp: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("storage: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("storage: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: close temp: %w", err)
	}
	if err := os.Rename(tmpName, abs); err != nil {
		return fmt.Errorf("storage: rename: %w", err)
	}
	success = true
	return nil
}

// Delete removes an attachment.
func (f *FS) Delete(name string) error {
	abs, err := f.safeName(name)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil {
		return fmt.Errorf("storage: delete %s: %w", name, err)
	}
	return nil
}

// Path returns the absolute on-disk path for an attachment.
func (f *FS) Path(name string) (string, error) {
	return f.safeName(name)
}

// Verify *FS satisfies Provider at compile time.
var _ Provider = (*FS)(nil)
