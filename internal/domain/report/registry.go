// Package report renders employee records into named text reports.
package report

import (
	"fmt"
	"slices"
	"sync"

	"github.com/okian/paysheet/internal/domain/model"
)

// Generator renders a record collection into report text. Implementations
// must not modify records.
type Generator interface {
	Generate(records []model.Employee) string
}

// GeneratorFunc adapts a plain function to Generator.
type GeneratorFunc func(records []model.Employee) string

// Generate calls f(records).
func (f GeneratorFunc) Generate(records []model.Employee) string { return f(records) }

// Registry maps report names to generators.
type Registry struct {
	mu         sync.RWMutex
	generators map[string]Generator
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{generators: make(map[string]Generator)}
}

// Default returns a registry populated with every built-in report.
func Default() *Registry {
	r := NewRegistry()
	r.MustRegister(PayoutName, Payout{})
	return r
}

// Register adds g under name.
func (r *Registry) Register(name string, g Generator) error {
	if name == "" || g == nil {
		return fmt.Errorf("%w: name and generator are required", ErrInvalidReport)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.generators[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateReport, name)
	}
	r.generators[name] = g
	return nil
}

// MustRegister is Register that panics on error.
func (r *Registry) MustRegister(name string, g Generator) {
	if err := r.Register(name, g); err != nil {
		panic(err)
	}
}

// Lookup returns the generator registered under name, or an
// *UnknownReportError.
func (r *Registry) Lookup(name string) (Generator, error) {
	r.mu.RLock()
	g, ok := r.generators[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &UnknownReportError{Name: name, Available: r.Names()}
	}
	return g, nil
}

// Names returns the registered report names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.generators))
	for name := range r.generators {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
