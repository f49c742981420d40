package passes

import (
	"github.com/declink/declink/decl"
)

// InsertTemplates computes each signature's template: the distinct type
// variables appearing anywhere in its parameters or return type, in
// first-appearance order. Must run after external binding, which is what
// makes imported type variables visible as references.
func InsertTemplates(unit *decl.Unit) {
	for _, fn := range unit.Functions {
		insertSignatureTemplates(fn)
	}
	for _, cls := range unit.Classes {
		for _, m := range cls.Methods {
			insertSignatureTemplates(m)
		}
	}
}

func insertSignatureTemplates(fn *decl.Function) {
	for _, sig := range fn.Signatures {
		var template []*decl.TypeVar
		seen := make(map[*decl.TypeVar]struct{})
		collect := func(t decl.Type) {
			ref, ok := t.(*decl.TypeVarRef)
			if !ok || ref.Decl == nil {
				return
			}
			if _, dup := seen[ref.Decl]; dup {
				return
			}
			seen[ref.Decl] = struct{}{}
			template = append(template, ref.Decl)
		}
		for _, p := range sig.Params {
			decl.WalkType(p.Type, collect)
		}
		decl.WalkType(sig.Returns, collect)
		sig.Template = template
	}
}

// AdjustTemplates drops from every method's template the type variables
// owned by the enclosing class: those are bound by the class
// instantiation, not by the call.
func AdjustTemplates(unit *decl.Unit) {
	for _, cls := range unit.Classes {
		if len(cls.TypeParams) == 0 {
			continue
		}
		owned := make(map[*decl.TypeVar]struct{}, len(cls.TypeParams))
		for _, tv := range cls.TypeParams {
			owned[tv] = struct{}{}
		}
		for _, m := range cls.Methods {
			for _, sig := range m.Signatures {
				kept := sig.Template[:0]
				for _, tv := range sig.Template {
					if _, isOwned := owned[tv]; !isOwned {
						kept = append(kept, tv)
					}
				}
				sig.Template = kept
			}
		}
	}
}
