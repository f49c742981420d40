package passes

import (
	"github.com/declink/declink/decl"
	"github.com/declink/declink/internal/modname"
)

// BindExternal binds qualified references against the given module view,
// sharing the target nodes. A reference whose module is missing from the
// view, or whose member the target does not declare, passes through
// unbound; import cycles rely on a later sweep completing it.
func BindExternal(unit *decl.Unit, view map[string]*decl.Unit, selfName string) {
	decl.RewriteTypes(unit, func(t decl.Type) decl.Type {
		ref, ok := t.(*decl.ClassRef)
		if !ok || ref.Target != nil {
			return t
		}
		module, member, ok := modname.SplitQualified(ref.Name)
		if !ok || module == selfName {
			return t
		}
		target, ok := view[module]
		if !ok {
			return t
		}
		return bindMember(ref, target, member)
	})
}

// BindLocal binds unqualified and self-qualified references against the
// unit's own declarations.
func BindLocal(unit *decl.Unit, selfName string) {
	decl.RewriteTypes(unit, func(t decl.Type) decl.Type {
		ref, ok := t.(*decl.ClassRef)
		if !ok || ref.Target != nil {
			return t
		}
		member := ref.Name
		if module, m, qualified := modname.SplitQualified(ref.Name); qualified {
			if module != selfName {
				return t
			}
			member = m
		}
		return bindMember(ref, unit, member)
	})
}

// BindAll runs the full binding a dirty module needs to finish: external
// references against the complete view, then local ones.
func BindAll(unit *decl.Unit, view map[string]*decl.Unit, selfName string) {
	BindExternal(unit, view, selfName)
	BindLocal(unit, selfName)
}

// bindMember resolves one member reference against a unit. Classes bind
// by pointer, aliases substitute their target type node, and type
// variables convert the reference. Anything else passes through.
func bindMember(ref *decl.ClassRef, target *decl.Unit, member string) decl.Type {
	if cls := target.Class(member); cls != nil {
		ref.Target = cls
		return ref
	}
	if alias := target.Alias(member); alias != nil {
		return alias.Type
	}
	if tv := target.TypeVar(member); tv != nil {
		return &decl.TypeVarRef{Name: member, Decl: tv}
	}
	return ref
}
