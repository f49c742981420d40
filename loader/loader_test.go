package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/declink/declink/decl"
	"github.com/declink/declink/sif"
)

func newLoader(t *testing.T, cfg Config) *Loader {
	t.Helper()
	l, err := New(context.Background(), cfg)
	require.NoError(t, err)
	return l
}

func writeStub(t *testing.T, dir, rel, src string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestNewValidatesVersion(t *testing.T) {
	ctx := context.Background()

	l, err := New(ctx, Config{})
	require.NoError(t, err)
	assert.Equal(t, DefaultVersion, l.Version())

	_, err = New(ctx, Config{Version: "2.0"})
	var usage *UsageError
	require.ErrorAs(t, err, &usage)
}

func TestNewSeedsBundledModules(t *testing.T) {
	ctx := context.Background()
	l := newLoader(t, Config{})

	b, err := l.ImportName(ctx, "builtins")
	require.NoError(t, err)
	assert.Same(t, l.Builtins(), b)
	assert.Equal(t, "bundled:builtins", l.registry.get("builtins").Source)

	c, err := l.ImportName(ctx, "compat")
	require.NoError(t, err)
	assert.NotNil(t, c.Class("protocol"))
	assert.Equal(t, "bundled:compat", l.registry.get("compat").Source)
}

func TestImportNameReturnsSharedHandle(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeStub(t, dir, "mylib.sif", `
class "Widget" {
  field "label" { type = "str" }
}
`)
	writeStub(t, dir, "user.sif", `
class "Holder" {
  field "w" { type = "mylib.Widget" }
}
`)
	l := newLoader(t, Config{SearchPath: []string{dir}})

	first, err := l.ImportName(ctx, "mylib")
	require.NoError(t, err)
	second, err := l.ImportName(ctx, "mylib")
	require.NoError(t, err)
	assert.Same(t, first, second)

	user, err := l.ImportName(ctx, "user")
	require.NoError(t, err)
	ref, ok := user.Class("Holder").Field("w").Type.(*decl.ClassRef)
	require.True(t, ok)
	assert.Same(t, first.Class("Widget"), ref.Target)
}

func TestImportNameEvictsOnMissingDependency(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeStub(t, dir, "app.sif", `
class "App" {
  field "db" { type = "storage.Conn" }
}
`)
	l := newLoader(t, Config{SearchPath: []string{dir}})

	_, err := l.ImportName(ctx, "app")
	var notFound *DependencyNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "storage", notFound.Module)
	assert.Nil(t, l.registry.get("app"), "failed load must leave no registry entry")

	// Supplying the dependency makes a retry succeed from scratch.
	writeStub(t, dir, "storage.sif", `
class "Conn" {
}
`)
	app, err := l.ImportName(ctx, "app")
	require.NoError(t, err)
	ref, ok := app.Class("App").Field("db").Type.(*decl.ClassRef)
	require.True(t, ok)
	assert.True(t, ref.Bound())
}

func TestImportNameLinksCycle(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeStub(t, dir, "alpha.sif", `
class "A" {
  field "peer" { type = "beta.B" }
}
`)
	writeStub(t, dir, "beta.sif", `
class "B" {
  field "peer" { type = "alpha.A" }
}
`)
	l := newLoader(t, Config{SearchPath: []string{dir}})

	alpha, err := l.ImportName(ctx, "alpha")
	require.NoError(t, err)
	beta, err := l.ImportName(ctx, "beta")
	require.NoError(t, err)

	refA, ok := alpha.Class("A").Field("peer").Type.(*decl.ClassRef)
	require.True(t, ok)
	refB, ok := beta.Class("B").Field("peer").Type.(*decl.ClassRef)
	require.True(t, ok)
	assert.Same(t, beta.Class("B"), refA.Target)
	assert.Same(t, alpha.Class("A"), refB.Target)

	assert.False(t, l.registry.get("alpha").Dirty)
	assert.False(t, l.registry.get("beta").Dirty)
}

func TestImportNameRejectsInvalidNames(t *testing.T) {
	ctx := context.Background()
	l := newLoader(t, Config{})

	tests := []struct {
		name   string
		module string
	}{
		{"empty", ""},
		{"path separator", "pkg/sub"},
		{"backslash", `pkg\sub`},
		{"empty segment", "pkg..sub"},
		{"trailing dot", "pkg."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.ImportName(ctx, tt.module)
			var usage *UsageError
			assert.ErrorAs(t, err, &usage)
		})
	}
}

func TestImportNameReportsUnboundMember(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeStub(t, dir, "store.sif", `
class "Conn" {
}
`)
	writeStub(t, dir, "app.sif", `
class "App" {
  field "db" { type = "store.Missing" }
}
`)
	l := newLoader(t, Config{SearchPath: []string{dir}})

	_, err := l.ImportName(ctx, "app")
	var violation *InvariantViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "app", violation.Module)
	assert.Contains(t, violation.Detail, "store.Missing")
}

func TestImportRelative(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeStub(t, dir, "acme/core/util.sif", `
func "helper" {
  signature {}
}
`)
	writeStub(t, dir, "acme/core/extra.sif", `
class "Extra" {
}
`)
	l := newLoader(t, Config{SearchPath: []string{dir}, BaseModule: "acme.core.util"})

	parent, err := l.ImportRelative(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "acme.core", parent.Name)

	root, err := l.ImportRelative(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "acme", root.Name)

	var usage *UsageError
	_, err = l.ImportRelative(ctx, 3)
	assert.ErrorAs(t, err, &usage)
	_, err = l.ImportRelative(ctx, 0)
	assert.ErrorAs(t, err, &usage)

	sibling, err := l.ImportRelativeName(ctx, "extra")
	require.NoError(t, err)
	assert.Equal(t, "acme.core.extra", sibling.Name)
	assert.NotNil(t, sibling.Class("Extra"))
}

func TestRelativeImportRequiresBaseModule(t *testing.T) {
	ctx := context.Background()
	l := newLoader(t, Config{})

	var usage *UsageError
	_, err := l.ImportRelative(ctx, 1)
	assert.ErrorAs(t, err, &usage)
	_, err = l.ImportRelativeName(ctx, "extra")
	assert.ErrorAs(t, err, &usage)
}

func TestResolveUnitDoesNotRegister(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeStub(t, dir, "mylib.sif", `
class "Widget" {
  field "label" { type = "str" }
}
`)
	l := newLoader(t, Config{SearchPath: []string{dir}})

	unit, err := sif.Parse([]byte(`
class "Scratch" {
  field "w" { type = "mylib.Widget" }
}
`), "scratch.sif", "scratch", l.Version())
	require.NoError(t, err)

	resolved, err := l.ResolveUnit(ctx, unit)
	require.NoError(t, err)
	assert.Same(t, unit, resolved)
	assert.Nil(t, l.registry.get("scratch"), "resolved unit must stay unregistered")
	require.NotNil(t, l.registry.get("mylib"), "dependencies load normally")

	ref, ok := resolved.Class("Scratch").Field("w").Type.(*decl.ClassRef)
	require.True(t, ok)
	assert.True(t, ref.Bound())
}

func TestConcatAllTracksRegistry(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeStub(t, dir, "alpha.sif", `
class "A" {
}
`)
	writeStub(t, dir, "beta.sif", `
class "B" {
}
`)
	l := newLoader(t, Config{SearchPath: []string{dir}})

	_, err := l.ImportName(ctx, "alpha")
	require.NoError(t, err)

	merged := l.ConcatAll()
	assert.Equal(t, "<all>", merged.Name)
	assert.NotNil(t, merged.Class("A"))
	assert.NotNil(t, merged.Class("int"), "seeded builtins are part of the merged view")
	assert.Nil(t, merged.Class("B"))
	assert.Same(t, merged, l.ConcatAll(), "unchanged registry reuses the cache")

	_, err = l.ImportName(ctx, "beta")
	require.NoError(t, err)
	refreshed := l.ConcatAll()
	assert.NotSame(t, merged, refreshed, "registry change invalidates the cache")
	assert.NotNil(t, refreshed.Class("B"))
}

func TestImportedTypeVarJoinsTemplate(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeStub(t, dir, "box.sif", `
typevar "T" {}

class "box" {
  typeparams = ["T"]

  method "unwrap" {
    signature {
      param "self" { type = "box[T]" }
      returns = "T"
    }
  }
}
`)
	writeStub(t, dir, "ops.sif", `
func "first" {
  signature {
    param "items" { type = "list[box.T]" }
    returns = "box.T"
  }
}
`)
	l := newLoader(t, Config{SearchPath: []string{dir}})

	ops, err := l.ImportName(ctx, "ops")
	require.NoError(t, err)
	box, err := l.ImportName(ctx, "box")
	require.NoError(t, err)

	sig := ops.Function("first").Signatures[0]
	require.Len(t, sig.Template, 1)
	assert.Same(t, box.TypeVar("T"), sig.Template[0])

	// The class method is generic only over class-owned variables, so its
	// template stays empty.
	unwrap := box.Class("box").Method("unwrap").Signatures[0]
	assert.Empty(t, unwrap.Template)
}

func TestRegistryConflictAndEviction(t *testing.T) {
	r := newRegistry()
	require.NoError(t, r.insert(&Module{Name: "m", Source: "a/m.sif", Unit: decl.EmptyUnit("m")}))

	err := r.insert(&Module{Name: "m", Source: "b/m.sif", Unit: decl.EmptyUnit("m")})
	var conflict *RegistrationConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "a/m.sif", conflict.Existing)
	assert.Equal(t, "b/m.sif", conflict.Conflicting)
	assert.EqualError(t, err, `module "m" exists as both a/m.sif and b/m.sif`)

	// Re-staging under the original source replaces the entry.
	require.NoError(t, r.insert(&Module{Name: "m", Source: "a/m.sif", Unit: decl.EmptyUnit("m")}))

	gen := r.generation
	r.evict("m")
	assert.Nil(t, r.get("m"))
	assert.Empty(t, r.all())
	assert.Greater(t, r.generation, gen)

	gen = r.generation
	r.evict("m")
	assert.Equal(t, gen, r.generation, "evicting an absent name must not invalidate")
}
