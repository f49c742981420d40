package decl

// EmptyUnit returns a unit with the given name and no declarations.
// Implicit namespace packages resolve to one of these.
func EmptyUnit(name string) *Unit {
	return &Unit{Name: name}
}

// Concat merges the declarations of all units into a single unit with the
// given name. Declaration nodes are shared with the inputs, not copied.
func Concat(name string, units ...*Unit) *Unit {
	out := &Unit{Name: name}
	for _, u := range units {
		out.Constants = append(out.Constants, u.Constants...)
		out.Aliases = append(out.Aliases, u.Aliases...)
		out.TypeVars = append(out.TypeVars, u.TypeVars...)
		out.Classes = append(out.Classes, u.Classes...)
		out.Functions = append(out.Functions, u.Functions...)
	}
	return out
}
