package passes

import (
	"strings"

	"github.com/declink/declink/decl"
)

// lookupBuiltins binds unqualified names declared as classes by the
// builtins unit directly to those classes. Names the unit declares itself
// shadow builtins and are left for local binding.
type lookupBuiltins struct {
	builtins *decl.Unit
}

func (lookupBuiltins) Name() string { return "lookup-builtins" }

func (p lookupBuiltins) Apply(unit *decl.Unit) error {
	if p.builtins == nil {
		return nil
	}
	local := unit.DeclaredNames()
	decl.RewriteTypes(unit, func(t decl.Type) decl.Type {
		n, ok := t.(*decl.NamedType)
		if !ok || strings.Contains(n.Name, ".") {
			return t
		}
		if _, shadowed := local[n.Name]; shadowed {
			return t
		}
		if cls := p.builtins.Class(n.Name); cls != nil {
			return &decl.ClassRef{Name: p.builtins.Name + "." + n.Name, Target: cls}
		}
		return t
	})
	return nil
}
