package passes

import (
	"context"
	"fmt"

	"github.com/declink/declink/decl"
	"github.com/declink/declink/internal/ctxlog"
)

// Pass is one in-place transformation of a declaration unit.
type Pass interface {
	Name() string
	Apply(*decl.Unit) error
}

// Postprocess runs the pipeline applied to every freshly parsed unit, in
// fixed order: compat normalization, optional-parameter canonicalization,
// builtins lookup, then conversion of the remaining symbolic names into
// unbound references. Builtins lookup must precede the conversion so that
// unqualified builtin names bind directly to their definitions.
func Postprocess(ctx context.Context, unit, builtins *decl.Unit, version string) error {
	logger := ctxlog.FromContext(ctx)

	pipeline := []Pass{
		normalizeCompat{version: version},
		simplifyOptional{},
		lookupBuiltins{builtins: builtins},
		namedToRef{},
	}
	for _, pass := range pipeline {
		logger.Debug("Running postprocess pass.", "pass", pass.Name(), "unit", unit.Name)
		if err := pass.Apply(unit); err != nil {
			return fmt.Errorf("pass %s on %s: %w", pass.Name(), unit.Name, err)
		}
	}
	return nil
}
