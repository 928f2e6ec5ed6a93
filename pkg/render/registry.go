package render

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Service builds image URLs for a remote QR rendering service.
type Service interface {
	Name() string
	URL(payload string) string
}

// Registry holds the remote chart services that can serve as fallbacks.
type Registry struct {
	mu       sync.RWMutex
	services map[string]Service
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{services: make(map[string]Service)}
}

// Register adds a service under its Name(). Names are unique.
func (r *Registry) Register(service Service) error {
	if service == nil {
		return fmt.Errorf("render: service is required")
	}
	name := service.Name()
	if name == "" {
		return fmt.Errorf("render: service name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.services[name]; exists {
		return fmt.Errorf("render: service %q already registered", name)
	}
	r.services[name] = service
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(service Service) {
	if err := r.Register(service); err != nil {
		panic(err)
	}
}

// Get retrieves a service by name. The error names the known services.
func (r *Registry) Get(name string) (Service, error) {
	r.mu.RLock()
	service, ok := r.services[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("render: service %q not found (known: %s)", name, strings.Join(r.Names(), ", "))
	}
	return service, nil
}

// Names returns the registered service names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.services))
	for name := range r.services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Chain resolves a fallback order. Each service may appear once, since a
// failed service is never retried within one render call.
func (r *Registry) Chain(names ...string) ([]Service, error) {
	chain := make([]Service, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("render: service %q listed twice in fallback chain", name)
		}
		seen[name] = struct{}{}
		service, err := r.Get(name)
		if err != nil {
			return nil, err
		}
		chain = append(chain, service)
	}
	return chain, nil
}
