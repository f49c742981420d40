package sif

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"golang.org/x/mod/semver"

	"github.com/declink/declink/decl"
)

// Parse parses stub source into a declaration unit named module. The
// filename appears in diagnostics only. Declarations carrying since/until
// attributes are dropped unless version falls inside their range; an
// empty version disables gating.
func Parse(src []byte, filename, module, version string) (*decl.Unit, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing %s: %w", filename, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("decoding %s: %w", filename, diags)
	}
	return translate(&root, module, version)
}

// ParseFile reads and parses one stub file from disk.
func ParseFile(path, module, version string) (*decl.Unit, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing %s: %w", path, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("decoding %s: %w", path, diags)
	}
	return translate(&root, module, version)
}

// translator carries the type variable scope of the file being translated.
type translator struct {
	typeVars map[string]*decl.TypeVar
}

func translate(root *fileRoot, module, version string) (*decl.Unit, error) {
	tr := &translator{typeVars: make(map[string]*decl.TypeVar)}
	unit := &decl.Unit{Name: module}

	// Declare every typevar before translating anything else so that all
	// type expressions in the file, bounds included, can resolve them.
	for _, block := range root.TypeVars {
		if !versionIncludes(version, block.Since, block.Until) {
			continue
		}
		if _, dup := tr.typeVars[block.Name]; dup {
			return nil, fmt.Errorf("typevar %q declared twice", block.Name)
		}
		tv := &decl.TypeVar{Name: block.Name}
		tr.typeVars[block.Name] = tv
		unit.TypeVars = append(unit.TypeVars, tv)
	}
	for _, block := range root.TypeVars {
		if block.Bound == "" || !versionIncludes(version, block.Since, block.Until) {
			continue
		}
		bound, err := tr.typeExpr(block.Bound)
		if err != nil {
			return nil, fmt.Errorf("typevar %q bound: %w", block.Name, err)
		}
		tr.typeVars[block.Name].Bound = bound
	}

	for _, block := range root.Aliases {
		if !versionIncludes(version, block.Since, block.Until) {
			continue
		}
		t, err := tr.typeExpr(block.Type)
		if err != nil {
			return nil, fmt.Errorf("alias %q: %w", block.Name, err)
		}
		unit.Aliases = append(unit.Aliases, &decl.Alias{Name: block.Name, Type: t})
	}

	for _, block := range root.Constants {
		if !versionIncludes(version, block.Since, block.Until) {
			continue
		}
		t, err := tr.typeExpr(block.Type)
		if err != nil {
			return nil, fmt.Errorf("const %q: %w", block.Name, err)
		}
		c := &decl.Constant{Name: block.Name, Type: t}
		if block.Value != nil {
			c.Value = *block.Value
		}
		unit.Constants = append(unit.Constants, c)
	}

	for _, block := range root.Classes {
		if !versionIncludes(version, block.Since, block.Until) {
			continue
		}
		cls, err := tr.translateClass(block)
		if err != nil {
			return nil, err
		}
		unit.Classes = append(unit.Classes, cls)
	}

	for _, block := range root.Functions {
		if !versionIncludes(version, block.Since, block.Until) {
			continue
		}
		fn, err := tr.translateFunction(block.Name, block.Signatures)
		if err != nil {
			return nil, err
		}
		unit.Functions = append(unit.Functions, fn)
	}

	return unit, nil
}

func (tr *translator) translateClass(block *classBlock) (*decl.Class, error) {
	cls := &decl.Class{Name: block.Name}
	for _, name := range block.TypeParams {
		tv, ok := tr.typeVars[name]
		if !ok {
			return nil, fmt.Errorf("class %q: typeparam %q has no typevar declaration", block.Name, name)
		}
		cls.TypeParams = append(cls.TypeParams, tv)
	}
	for _, base := range block.Bases {
		t, err := tr.typeExpr(base)
		if err != nil {
			return nil, fmt.Errorf("class %q base: %w", block.Name, err)
		}
		cls.Bases = append(cls.Bases, t)
	}
	for _, field := range block.Fields {
		t, err := tr.typeExpr(field.Type)
		if err != nil {
			return nil, fmt.Errorf("class %q field %q: %w", block.Name, field.Name, err)
		}
		cls.Fields = append(cls.Fields, &decl.Field{Name: field.Name, Type: t})
	}
	for _, method := range block.Methods {
		fn, err := tr.translateFunction(method.Name, method.Signatures)
		if err != nil {
			return nil, fmt.Errorf("class %q: %w", block.Name, err)
		}
		cls.Methods = append(cls.Methods, fn)
	}
	return cls, nil
}

func (tr *translator) translateFunction(name string, blocks []*signatureBlock) (*decl.Function, error) {
	if len(blocks) == 0 {
		return nil, fmt.Errorf("func %q has no signature", name)
	}
	fn := &decl.Function{Name: name}
	for _, block := range blocks {
		sig := &decl.Signature{}
		for _, pb := range block.Params {
			p, err := tr.translateParam(name, pb)
			if err != nil {
				return nil, err
			}
			sig.Params = append(sig.Params, p)
		}
		returns := block.Returns
		if returns == "" {
			returns = "none"
		}
		t, err := tr.typeExpr(returns)
		if err != nil {
			return nil, fmt.Errorf("func %q returns: %w", name, err)
		}
		sig.Returns = t
		fn.Signatures = append(fn.Signatures, sig)
	}
	return fn, nil
}

func (tr *translator) translateParam(fn string, block *paramBlock) (*decl.Param, error) {
	p := &decl.Param{Name: block.Name, Optional: block.Optional}
	if block.Default != nil {
		p.Default = *block.Default
	}
	if block.Name == decl.EllipsisParam {
		if block.Type != "" {
			return nil, fmt.Errorf("func %q: the %s parameter takes no type", fn, decl.EllipsisParam)
		}
		return p, nil
	}
	if block.Type == "" {
		return nil, fmt.Errorf("func %q: param %q needs a type", fn, block.Name)
	}
	t, err := tr.typeExpr(block.Type)
	if err != nil {
		return nil, fmt.Errorf("func %q param %q: %w", fn, block.Name, err)
	}
	p.Type = t
	return p, nil
}

// typeExpr parses one expression and resolves single-segment names
// declared as typevars in this file.
func (tr *translator) typeExpr(src string) (decl.Type, error) {
	t, err := ParseTypeExpr(src)
	if err != nil {
		return nil, err
	}
	return decl.RewriteType(t, func(ty decl.Type) decl.Type {
		if n, ok := ty.(*decl.NamedType); ok {
			if tv, ok := tr.typeVars[n.Name]; ok {
				return &decl.TypeVarRef{Name: n.Name, Decl: tv}
			}
		}
		return ty
	}), nil
}

// versionIncludes gates a declaration against the target version. Both
// bounds are optional; since is inclusive, until exclusive.
func versionIncludes(target, since, until string) bool {
	if target == "" {
		return true
	}
	if since != "" && semver.Compare(target, since) < 0 {
		return false
	}
	if until != "" && semver.Compare(target, until) >= 0 {
		return false
	}
	return true
}
