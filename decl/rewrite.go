package decl

// RewriteFunc maps one type node to its replacement. Returning the input
// unchanged leaves the tree alone at that position.
type RewriteFunc func(Type) Type

// RewriteTypes applies fn to every type node reachable from the unit,
// children before parents, replacing each node with fn's result in place.
// Constants, aliases, type variable bounds, class bases, fields and every
// signature of every function and method are covered.
func RewriteTypes(u *Unit, fn RewriteFunc) {
	for _, c := range u.Constants {
		c.Type = RewriteType(c.Type, fn)
	}
	for _, a := range u.Aliases {
		a.Type = RewriteType(a.Type, fn)
	}
	for _, tv := range u.TypeVars {
		tv.Bound = RewriteType(tv.Bound, fn)
	}
	for _, cls := range u.Classes {
		rewriteClass(cls, fn)
	}
	for _, f := range u.Functions {
		rewriteFunction(f, fn)
	}
}

func rewriteClass(cls *Class, fn RewriteFunc) {
	for _, tv := range cls.TypeParams {
		tv.Bound = RewriteType(tv.Bound, fn)
	}
	for i, b := range cls.Bases {
		cls.Bases[i] = RewriteType(b, fn)
	}
	for _, f := range cls.Fields {
		f.Type = RewriteType(f.Type, fn)
	}
	for _, m := range cls.Methods {
		rewriteFunction(m, fn)
	}
}

func rewriteFunction(f *Function, fn RewriteFunc) {
	for _, sig := range f.Signatures {
		for _, tv := range sig.Template {
			tv.Bound = RewriteType(tv.Bound, fn)
		}
		for _, p := range sig.Params {
			p.Type = RewriteType(p.Type, fn)
		}
		sig.Returns = RewriteType(sig.Returns, fn)
	}
}

// RewriteType rewrites a single type tree bottom-up. A nil input stays nil.
func RewriteType(t Type, fn RewriteFunc) Type {
	if t == nil {
		return nil
	}
	switch n := t.(type) {
	case *NamedType, *ClassRef, *TypeVarRef:
		// Leaves.
	case *GenericType:
		n.Base = RewriteType(n.Base, fn)
		for i, a := range n.Args {
			n.Args[i] = RewriteType(a, fn)
		}
	case *UnionType:
		for i, m := range n.Members {
			n.Members[i] = RewriteType(m, fn)
		}
	}
	return fn(t)
}

// WalkTypes visits every type node reachable from the unit without
// modifying anything.
func WalkTypes(u *Unit, visit func(Type)) {
	RewriteTypes(u, func(t Type) Type {
		visit(t)
		return t
	})
}

// WalkType visits every node of a single type tree.
func WalkType(t Type, visit func(Type)) {
	RewriteType(t, func(t Type) Type {
		visit(t)
		return t
	})
}
