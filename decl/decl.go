package decl

import (
	"github.com/zclconf/go-cty/cty"
)

// Unit is the declaration tree for one module. It is mutated in place by
// the postprocessing and linking phases and must not be modified after
// the owning module is marked clean.
type Unit struct {
	Name      string
	Constants []*Constant
	Aliases   []*Alias
	TypeVars  []*TypeVar
	Classes   []*Class
	Functions []*Function
}

// Constant is a module- or class-level typed constant. Value is cty.NilVal
// when the source declares no literal.
type Constant struct {
	Name  string
	Type  Type
	Value cty.Value
}

// Alias gives an alternative name to an existing type expression.
type Alias struct {
	Name string
	Type Type
}

// TypeVar declares a type variable. Bound is nil for an unconstrained
// variable. Uses elsewhere in the tree point back at the declaration via
// TypeVarRef, so a TypeVar is shared, never copied.
type TypeVar struct {
	Name  string
	Bound Type
}

// Class is a class declaration. TypeParams lists the type variables the
// class is generic over, as shared pointers into the owning unit's
// TypeVars (or an imported unit's, after linking).
type Class struct {
	Name       string
	TypeParams []*TypeVar
	Bases      []Type
	Fields     []*Field
	Methods    []*Function
}

// Field is a typed class member.
type Field struct {
	Name string
	Type Type
}

// Function is a function or method with one signature per overload.
type Function struct {
	Name       string
	Signatures []*Signature
}

// Signature is one overload: parameters, return type, and the template of
// type variables the signature is generic over. HasOptional records that
// the source permitted additional optional arguments. Template is empty
// until the template-insertion pass runs.
type Signature struct {
	Params      []*Param
	Returns     Type
	HasOptional bool
	Template    []*TypeVar
}

// EllipsisParam is the name of the pseudo-parameter marking a signature
// that accepts arbitrary further arguments. The optional canonicalization
// pass strips it.
const EllipsisParam = "..."

// Param is one formal parameter. Default is cty.NilVal when absent; a
// parameter with a default is optional by construction (the optional
// canonicalization pass enforces this).
type Param struct {
	Name     string
	Type     Type
	Optional bool
	Default  cty.Value
}

// HasDefault reports whether the parameter carries a default literal.
func (p *Param) HasDefault() bool { return p.Default != cty.NilVal }

// OwnsTypeParam reports whether name is one of the class's type parameters.
func (c *Class) OwnsTypeParam(name string) bool {
	for _, tv := range c.TypeParams {
		if tv.Name == name {
			return true
		}
	}
	return false
}

// Method returns the named method, or nil.
func (c *Class) Method(name string) *Function {
	for _, m := range c.Methods {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Field returns the named field, or nil.
func (c *Class) Field(name string) *Field {
	for _, f := range c.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Class returns the named class in this unit, or nil.
func (u *Unit) Class(name string) *Class {
	for _, c := range u.Classes {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Alias returns the named alias in this unit, or nil.
func (u *Unit) Alias(name string) *Alias {
	for _, a := range u.Aliases {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// TypeVar returns the named type variable declared in this unit, or nil.
func (u *Unit) TypeVar(name string) *TypeVar {
	for _, tv := range u.TypeVars {
		if tv.Name == name {
			return tv
		}
	}
	return nil
}

// Function returns the named module-level function in this unit, or nil.
func (u *Unit) Function(name string) *Function {
	for _, f := range u.Functions {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Constant returns the named module-level constant in this unit, or nil.
func (u *Unit) Constant(name string) *Constant {
	for _, c := range u.Constants {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// DeclaredNames returns the set of top-level names the unit declares.
func (u *Unit) DeclaredNames() map[string]struct{} {
	names := make(map[string]struct{})
	for _, c := range u.Constants {
		names[c.Name] = struct{}{}
	}
	for _, a := range u.Aliases {
		names[a.Name] = struct{}{}
	}
	for _, tv := range u.TypeVars {
		names[tv.Name] = struct{}{}
	}
	for _, c := range u.Classes {
		names[c.Name] = struct{}{}
	}
	for _, f := range u.Functions {
		names[f.Name] = struct{}{}
	}
	return names
}
