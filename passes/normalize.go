package passes

import (
	"fmt"

	"golang.org/x/mod/semver"

	"github.com/declink/declink/decl"
)

// normalizeCompat rewrites references to the compat module's generic
// encodings into their native representations, so the rest of the system
// never sees a compat container.
type normalizeCompat struct {
	version string
}

func (normalizeCompat) Name() string { return "normalize-compat" }

// compatClasses maps compat names onto the builtins they encode.
var compatClasses = map[string]string{
	"compat.list":     "builtins.list",
	"compat.set":      "builtins.set",
	"compat.tuple":    "builtins.tuple",
	"compat.map":      "builtins.map",
	"compat.iterator": "builtins.iterator",
	"compat.any":      "builtins.any",
}

func (p normalizeCompat) Apply(unit *decl.Unit) error {
	var failure error
	decl.RewriteTypes(unit, func(t decl.Type) decl.Type {
		switch n := t.(type) {
		case *decl.NamedType:
			if replacement, ok := compatClasses[n.Name]; ok {
				return &decl.NamedType{Name: replacement}
			}
			if n.Name == "compat.text" {
				return &decl.NamedType{Name: p.textTarget()}
			}
		case *decl.GenericType:
			base, ok := n.Base.(*decl.NamedType)
			if !ok {
				return t
			}
			switch base.Name {
			case "compat.union":
				return decl.NewUnion(n.Args)
			case "compat.optional":
				if len(n.Args) != 1 {
					failure = fmt.Errorf("compat.optional takes exactly one parameter, got %d", len(n.Args))
					return t
				}
				return decl.NewUnion([]decl.Type{n.Args[0], &decl.NamedType{Name: "builtins.none"}})
			}
		}
		return t
	})
	return failure
}

// textTarget resolves compat.text for the target version: bytes before
// v2, str from v2 on. An empty version means current, which is str.
func (p normalizeCompat) textTarget() string {
	if p.version != "" && semver.Compare(p.version, "v2.0.0") < 0 {
		return "builtins.bytes"
	}
	return "builtins.str"
}
