// Package decl defines the declaration tree that represents one module's
// interface: its classes, functions, constants, aliases, and type
// variables, plus the type expressions connecting them.
//
// Type expressions form a closed sum (NamedType, ClassRef, TypeVarRef,
// GenericType, UnionType). Loading rewrites trees in place through the
// RewriteTypes / WalkTypes substrate; once a module is fully linked its
// tree is treated as immutable and may be shared freely.
package decl
