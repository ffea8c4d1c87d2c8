package store

import "github.com/avelar/inkpad/internal/models"

// Store defines the persistence façade for documents, settings, and the
// workspace state record. Consumers should depend on this interface rather
// than the concrete *DB type to facilitate testing with mocks.
type Store interface {
	Save(doc models.Document) (models.Document, error)
	Get(id string) (models.Document, error)
	List() ([]models.Document, error)
	Delete(id string) error

	GetSettings() (models.Settings, error)
	SaveSettings(s models.Settings) error
	GetState() (models.WorkspaceState, error)
	SaveState(s models.WorkspaceState) error

	ExportWorkspace() ([]byte, error)
	ImportWorkspace(blob []byte) (int, error)

	Close() error
}

// Verify *DB satisfies Store at compile time.
var _ Store = (*DB)(nil)
