// Package storage defines the attachment file-store abstraction. Image
// blocks reference files uploaded here by URL.
package storage

import "time"

// FileInfo describes one stored attachment.
type FileInfo struct {
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Provider is the interface for attachment file operations. Names are
// plain filenames — the store is flat, no sub-directories.
type Provider interface {
	// List returns metadata for every stored attachment.
	List() ([]FileInfo, error)
	// Read returns the raw bytes of the named attachment.
	Read(name string) ([]byte, error)
	// Write atomically stores content under name.
	Write(name string, content []byte) error
	// Delete removes the named attachment.
	Delete(name string) error
	// Path returns the absolute on-disk path for the named attachment,
	// suitable for http.ServeFile.
	Path(name string) (string, error)
}
