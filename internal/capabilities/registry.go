package capabilities

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Registry holds the chat models the proxy accepts, loaded from embedded
// YAML at startup.
type Registry struct {
	models []Model
	byID   map[string]*Model
	mu     sync.RWMutex
}

// NewRegistry creates a registry and loads the embedded model catalog.
func NewRegistry() (*Registry, error) {
	r := &Registry{byID: make(map[string]*Model)}

	if err := r.loadFile("models"); err != nil {
		return nil, fmt.Errorf("failed to load model catalog: %w", err)
	}

	return r, nil
}

func (r *Registry) loadFile(name string) error {
	filename := fmt.Sprintf("config/%s.yaml", name)
	data, err := configFiles.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}

	var c catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", filename, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.models = append(r.models, c.Models...)
	for i := range r.models {
		r.byID[r.models[i].ID] = &r.models[i]
	}

	return nil
}

// ListModels returns all models in catalog order.
func (r *Registry) ListModels() []Model {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Model, len(r.models))
	copy(out, r.models)
	return out
}

// Lookup returns the model with the given id.
func (r *Registry) Lookup(id string) (*Model, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s", id)
	}
	return m, nil
}
