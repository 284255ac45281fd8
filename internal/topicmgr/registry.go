package topicmgr

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Registry manages the collection of registered topics.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Topic
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Topic)}
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry that typed events register with.
func Default() *Registry {
	return defaultRegistry
}

// Register validates and adds a topic. The module defaults to the first
// segment of the name.
func (r *Registry) Register(cfg TopicConfig) error {
	if err := Validate(cfg); err != nil {
		return err
	}
	if cfg.Module == "" {
		cfg.Module, _, _ = strings.Cut(cfg.Name, ".")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[cfg.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTopic, cfg.Name)
	}
	r.entries[cfg.Name] = Topic{TopicConfig: cfg, RegisteredAt: time.Now()}
	return nil
}

// MustRegister is Register for package-level event definitions, where a
// failure is a programming error.
func (r *Registry) MustRegister(cfg TopicConfig) {
	if err := r.Register(cfg); err != nil {
		panic(err)
	}
}

// Get retrieves a topic by name.
func (r *Registry) Get(name string) (Topic, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.entries[name]
	return t, ok
}

// List returns every topic sorted by name.
func (r *Registry) List() []Topic {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Topic, 0, len(r.entries))
	for _, t := range r.entries {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ListByModule returns the topics owned by module.
func (r *Registry) ListByModule(module string) []Topic {
	var out []Topic
	for _, t := range r.List() {
		if t.Module == module {
			out = append(out, t)
		}
	}
	return out
}
