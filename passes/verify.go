package passes

import (
	"fmt"

	"github.com/declink/declink/decl"
)

// VerifyBound reports the first reference left unresolved anywhere in the
// unit. A tree that passes contains no symbolic names, no unbound class
// references, and no dangling type variables.
func VerifyBound(unit *decl.Unit) error {
	var failure error
	decl.WalkTypes(unit, func(t decl.Type) {
		if failure != nil {
			return
		}
		switch n := t.(type) {
		case *decl.NamedType:
			failure = fmt.Errorf("symbolic name %q survived reference conversion", n.Name)
		case *decl.ClassRef:
			if n.Target == nil {
				failure = fmt.Errorf("unresolved reference %q", n.Name)
			}
		case *decl.TypeVarRef:
			if n.Decl == nil {
				failure = fmt.Errorf("type variable %q has no declaration", n.Name)
			}
		}
	})
	return failure
}

// VerifyShapes checks the structural invariants of a bound tree: every
// generic instantiation names a resolved class and matches its declared
// arity, and unions are flat with at least two members.
func VerifyShapes(unit *decl.Unit) error {
	var failure error
	decl.WalkTypes(unit, func(t decl.Type) {
		if failure != nil {
			return
		}
		switch n := t.(type) {
		case *decl.GenericType:
			base, ok := n.Base.(*decl.ClassRef)
			if !ok {
				failure = fmt.Errorf("generic base %s is not a class", n.Base)
				return
			}
			if base.Target == nil {
				failure = fmt.Errorf("generic base %q is unresolved", base.Name)
				return
			}
			if len(n.Args) != len(base.Target.TypeParams) {
				failure = fmt.Errorf("%s instantiates %q with %d parameters, declared with %d",
					n, base.Name, len(n.Args), len(base.Target.TypeParams))
			}
		case *decl.UnionType:
			if len(n.Members) < 2 {
				failure = fmt.Errorf("union %s needs at least two members", n)
				return
			}
			for _, m := range n.Members {
				if _, nested := m.(*decl.UnionType); nested {
					failure = fmt.Errorf("union %s contains a nested union", n)
					return
				}
			}
		}
	})
	return failure
}
