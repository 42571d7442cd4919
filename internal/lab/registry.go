package lab

import (
	"fmt"
	"sort"
)

type Registry struct {
	labs  map[string]Definition
	order []string
}

// NewRegistry returns a registry holding the built-in catalog.
func NewRegistry() *Registry {
	r := &Registry{labs: make(map[string]Definition)}
	for _, d := range Catalog() {
		r.Register(d)
	}
	return r
}

// Register adds or replaces a definition.
func (r *Registry) Register(d Definition) {
	if _, ok := r.labs[d.Name]; !ok {
		r.order = append(r.order, d.Name)
	}
	r.labs[d.Name] = d
}

func (r *Registry) Get(name string) (Definition, error) {
	d, ok := r.labs[name]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %s", ErrUnknownLab, name)
	}
	return d, nil
}

// Names returns lab names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

func (r *Registry) SortedNames() []string {
	names := r.Names()
	sort.Strings(names)
	return names
}
