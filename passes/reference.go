package passes

import (
	"github.com/declink/declink/decl"
)

// namedToRef converts every remaining symbolic name into an unbound class
// reference, so the binding and verification passes deal with a single
// node kind.
type namedToRef struct{}

func (namedToRef) Name() string { return "named-to-ref" }

func (namedToRef) Apply(unit *decl.Unit) error {
	decl.RewriteTypes(unit, func(t decl.Type) decl.Type {
		if n, ok := t.(*decl.NamedType); ok {
			return &decl.ClassRef{Name: n.Name}
		}
		return t
	})
	return nil
}
