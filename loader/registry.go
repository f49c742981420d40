package loader

import (
	"github.com/declink/declink/decl"
)

// Module is one registry entry: a named declaration unit, the source it
// was loaded from, and the dirty flag tracking whether the unit still
// has references only the completion sweep can bind.
type Module struct {
	Name   string
	Source string
	Unit   *decl.Unit
	Dirty  bool
}

// registry owns every loaded module. Insertion stages an entry before
// its dependencies load; the load sequence commits it by leaving it in
// place, or evicts it on failure. The generation counter advances on
// every mutation so cached derivations of the registry can tell when
// they are stale.
type registry struct {
	modules    map[string]*Module
	order      []string
	generation int
}

func newRegistry() *registry {
	return &registry{modules: make(map[string]*Module)}
}

func (r *registry) get(name string) *Module {
	return r.modules[name]
}

// insert stages a module. A name already registered under a different
// source is a conflict; re-staging under the same source replaces the
// entry.
func (r *registry) insert(m *Module) error {
	existing, ok := r.modules[m.Name]
	if ok && existing.Source != m.Source {
		return &RegistrationConflictError{
			Module:      m.Name,
			Existing:    existing.Source,
			Conflicting: m.Source,
		}
	}
	if !ok {
		r.order = append(r.order, m.Name)
	}
	r.modules[m.Name] = m
	r.generation++
	return nil
}

// evict removes a staged module after a failed load.
func (r *registry) evict(name string) {
	if _, ok := r.modules[name]; !ok {
		return
	}
	delete(r.modules, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.generation++
}

// all returns the registered modules in registration order.
func (r *registry) all() []*Module {
	out := make([]*Module, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.modules[name])
	}
	return out
}

// view returns the name to unit lookup map the binding passes consume.
// Dirty modules are included: their declarations exist as soon as they
// are staged, which is exactly what lets a cyclic back-reference bind.
func (r *registry) view() map[string]*decl.Unit {
	view := make(map[string]*decl.Unit, len(r.modules))
	for name, m := range r.modules {
		view[name] = m.Unit
	}
	return view
}
