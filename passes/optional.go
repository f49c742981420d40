package passes

import (
	"github.com/declink/declink/decl"
)

// simplifyOptional canonicalizes the two optional-parameter encodings:
// ellipsis pseudo-parameters are stripped and recorded on the signature,
// and any parameter carrying a default literal is marked optional.
type simplifyOptional struct{}

func (simplifyOptional) Name() string { return "simplify-optional" }

func (simplifyOptional) Apply(unit *decl.Unit) error {
	for _, fn := range unit.Functions {
		simplifySignatures(fn)
	}
	for _, cls := range unit.Classes {
		for _, m := range cls.Methods {
			simplifySignatures(m)
		}
	}
	return nil
}

func simplifySignatures(fn *decl.Function) {
	for _, sig := range fn.Signatures {
		kept := sig.Params[:0]
		for _, p := range sig.Params {
			if p.Name == decl.EllipsisParam {
				sig.HasOptional = true
				continue
			}
			if p.HasDefault() {
				p.Optional = true
			}
			kept = append(kept, p)
		}
		sig.Params = kept
	}
}
