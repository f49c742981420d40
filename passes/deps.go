package passes

import (
	"github.com/declink/declink/decl"
	"github.com/declink/declink/internal/modname"
)

// CollectImports returns the distinct modules referenced by the unit, in
// first-appearance order: the module prefix of every qualified unbound
// reference. Unqualified names are local or builtin and carry no module
// dependency.
func CollectImports(unit *decl.Unit) []string {
	var modules []string
	seen := make(map[string]struct{})
	decl.WalkTypes(unit, func(t decl.Type) {
		ref, ok := t.(*decl.ClassRef)
		if !ok || ref.Target != nil {
			return
		}
		module, _, ok := modname.SplitQualified(ref.Name)
		if !ok {
			return
		}
		if _, dup := seen[module]; dup {
			return
		}
		seen[module] = struct{}{}
		modules = append(modules, module)
	})
	return modules
}
