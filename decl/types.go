package decl

import (
	"fmt"
	"strings"
)

// Type is a type expression node. The set of implementations is closed;
// code that dispatches on type nodes switches over exactly these five.
type Type interface {
	isType()
	String() string
}

// NamedType is a raw, unconverted mention of a type by (possibly dotted)
// name. The reference-conversion pass replaces every NamedType with a
// ClassRef, so linked trees contain none.
type NamedType struct {
	Name string
}

func (*NamedType) isType() {}

func (t *NamedType) String() string { return t.Name }

// ClassRef names a class by qualified name and, once bound, holds a
// shared pointer to the concrete definition. Binding is by reference:
// later completion of the target module is visible through every ClassRef
// already pointing at it.
type ClassRef struct {
	Name   string
	Target *Class
}

func (*ClassRef) isType() {}

func (r *ClassRef) String() string { return r.Name }

// Bound reports whether the reference has been linked to a definition.
func (r *ClassRef) Bound() bool { return r.Target != nil }

// TypeVarRef is a use of a type variable. Decl points at the declaration,
// which may live in another module after external linking.
type TypeVarRef struct {
	Name string
	Decl *TypeVar
}

func (*TypeVarRef) isType() {}

func (t *TypeVarRef) String() string { return t.Name }

// GenericType applies type arguments to a base type, e.g. list[int].
type GenericType struct {
	Base Type
	Args []Type
}

func (*GenericType) isType() {}

func (t *GenericType) String() string {
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s[%s]", t.Base, strings.Join(args, ", "))
}

// UnionType is an untagged union of two or more member types.
type UnionType struct {
	Members []Type
}

// NewUnion builds a union from members. Nested unions are flattened,
// structural duplicates dropped, and a single surviving member is
// returned bare instead of wrapped.
func NewUnion(members []Type) Type {
	var flat []Type
	seen := make(map[string]struct{})
	var add func(t Type)
	add = func(t Type) {
		if u, ok := t.(*UnionType); ok {
			for _, m := range u.Members {
				add(m)
			}
			return
		}
		key := t.String()
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		flat = append(flat, t)
	}
	for _, m := range members {
		add(m)
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return &UnionType{Members: flat}
}

func (*UnionType) isType() {}

func (t *UnionType) String() string {
	members := make([]string, len(t.Members))
	for i, m := range t.Members {
		members[i] = m.String()
	}
	return fmt.Sprintf("union[%s]", strings.Join(members, ", "))
}
