// Package templates loads document templates from a directory of YAML
// definition files and keeps them available for document creation.
package templates

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/avelar/inkpad/internal/apperr"
	"github.com/avelar/inkpad/internal/models"
)

// BlankID is the id of the built-in empty template.
const BlankID = "blank"

// Template is one document template definition.
type Template struct {
	ID          string         `json:"id" yaml:"-"`
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description,omitempty" yaml:"description"`
	Category    string         `json:"category,omitempty" yaml:"category"`
	Emoji       string         `json:"emoji,omitempty" yaml:"emoji"`
	Blocks      []models.Block `json:"blocks" yaml:"blocks"`
}

// Registry holds the loaded templates. Safe for concurrent use: the HTTP
// layer reads while the directory watcher reloads.
type Registry struct {
	dir string

	mu        sync.RWMutex
	templates map[string]Template
}

// NewRegistry creates a registry for the given directory and performs the
// initial load. A missing or empty directory is fine — the built-in blank
// template is always available. The registry is usable even when the
// returned error is non-nil (broken definition files are skipped).
func NewRegistry(dir string) (*Registry, error) {
	r := &Registry{dir: dir}
	err := r.Reload()
	return r, err
}

// Reload re-reads every *.yaml definition in the directory, replacing the
// current set. Files that fail to parse are skipped with an error returned
// for the first failure after the valid ones are installed.
func (r *Registry) Reload() error {
	loaded := map[string]Template{
		BlankID: {ID: BlankID, Name: "Blank", Description: "An empty page"},
	}

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if os.IsNotExist(err) {
			r.install(loaded)
			return nil
		}
		return fmt.Errorf("templates: read dir: %w", err)
	}

	var firstErr error
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || (!strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml")) {
			continue
		}
		tpl, err := loadFile(filepath.Join(r.dir, name))
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		loaded[tpl.ID] = tpl
	}

	r.install(loaded)
	return firstErr
}

func (r *Registry) install(templates map[string]Template) {
	r.mu.Lock()
	r.templates = templates
	r.mu.Unlock()
}

func loadFile(path string) (Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Template{}, fmt.Errorf("templates: read %s: %w", path, err)
	}
	var tpl Template
	if err := yaml.Unmarshal(data, &tpl); err != nil {
		return Template{}, fmt.Errorf("templates: parse %s: %w", path, err)
	}

	base := filepath.Base(path)
	tpl.ID = strings.TrimSuffix(strings.TrimSuffix(base, ".yaml"), ".yml")
	if tpl.Name == "" {
		tpl.Name = tpl.ID
	}
	return tpl, nil
}

// Get returns the template with the given id, or apperr.ErrNotFound.
func (r *Registry) Get(id string) (Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tpl, ok := r.templates[id]
	if !ok {
		return Template{}, apperr.ErrNotFound
	}
	return tpl, nil
}

// List returns all templates sorted by id, the blank template first.
func (r *Registry) List() []Template {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Template, 0, len(r.templates))
	for _, tpl := range r.templates {
		out = append(out, tpl)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ID == BlankID {
			return true
		}
		if out[j].ID == BlankID {
			return false
		}
		return out[i].ID < out[j].ID
	})
	return out
}
