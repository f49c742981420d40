package sif

import (
	"github.com/zclconf/go-cty/cty"
)

// fileRoot captures every top-level block a stub file may contain.
// There is no catch-all body: unknown blocks or attributes are parse
// errors.
type fileRoot struct {
	TypeVars  []*typeVarBlock `hcl:"typevar,block"`
	Aliases   []*aliasBlock   `hcl:"alias,block"`
	Constants []*constBlock   `hcl:"const,block"`
	Classes   []*classBlock   `hcl:"class,block"`
	Functions []*funcBlock    `hcl:"func,block"`
}

// typeVarBlock declares a type variable usable anywhere in the file.
type typeVarBlock struct {
	Name  string `hcl:"name,label"`
	Bound string `hcl:"bound,optional"`
	Since string `hcl:"since,optional"`
	Until string `hcl:"until,optional"`
}

// aliasBlock declares a local name for another type.
type aliasBlock struct {
	Name  string `hcl:"name,label"`
	Type  string `hcl:"type"`
	Since string `hcl:"since,optional"`
	Until string `hcl:"until,optional"`
}

// constBlock declares a module-level constant. The value literal is
// optional; stubs usually state only the type.
type constBlock struct {
	Name  string     `hcl:"name,label"`
	Type  string     `hcl:"type"`
	Value *cty.Value `hcl:"value,optional"`
	Since string     `hcl:"since,optional"`
	Until string     `hcl:"until,optional"`
}

// fieldBlock declares one attribute of a class.
type fieldBlock struct {
	Name string `hcl:"name,label"`
	Type string `hcl:"type"`
}

// paramBlock declares one parameter of a signature. The pseudo-parameter
// named "..." omits its type and marks the signature as accepting
// additional arguments.
type paramBlock struct {
	Name     string     `hcl:"name,label"`
	Type     string     `hcl:"type,optional"`
	Optional bool       `hcl:"optional,optional"`
	Default  *cty.Value `hcl:"default,optional"`
}

// signatureBlock declares one overload of a function or method. A missing
// returns attribute defaults to none.
type signatureBlock struct {
	Params  []*paramBlock `hcl:"param,block"`
	Returns string        `hcl:"returns,optional"`
}

type methodBlock struct {
	Name       string            `hcl:"name,label"`
	Signatures []*signatureBlock `hcl:"signature,block"`
}

type funcBlock struct {
	Name       string            `hcl:"name,label"`
	Signatures []*signatureBlock `hcl:"signature,block"`
	Since      string            `hcl:"since,optional"`
	Until      string            `hcl:"until,optional"`
}

// classBlock declares a class. Entries in typeparams must name typevar
// blocks declared in the same file.
type classBlock struct {
	Name       string         `hcl:"name,label"`
	TypeParams []string       `hcl:"typeparams,optional"`
	Bases      []string       `hcl:"bases,optional"`
	Fields     []*fieldBlock  `hcl:"field,block"`
	Methods    []*methodBlock `hcl:"method,block"`
	Since      string         `hcl:"since,optional"`
	Until      string         `hcl:"until,optional"`
}
