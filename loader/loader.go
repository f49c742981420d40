package loader

import (
	"context"
	"fmt"

	"golang.org/x/mod/semver"

	"github.com/declink/declink/decl"
	"github.com/declink/declink/internal/bundled"
	"github.com/declink/declink/internal/ctxlog"
	"github.com/declink/declink/internal/modname"
	"github.com/declink/declink/passes"
	"github.com/declink/declink/remap"
	"github.com/declink/declink/sif"
)

const (
	// DefaultVersion is the target version assumed when the
	// configuration leaves it empty.
	DefaultVersion = "v2.0.0"

	builtinsModule = "builtins"
	compatModule   = "compat"

	// mergedUnitName is the distinguished name of the unit ConcatAll
	// synthesizes. It can never clash with an importable module because
	// it is not a valid dotted name.
	mergedUnitName = "<all>"
)

// Config carries the knobs for one Loader.
type Config struct {
	// SearchPath lists the directories scanned for stub files, in
	// precedence order.
	SearchPath []string

	// Remap, when non-nil, replaces all filesystem probing on the
	// search path: stub locations resolve only through the table.
	Remap *remap.Table

	// UseStdlib enables the embedded standard-library fallback tier.
	UseStdlib bool

	// Version is the semantic target version that gates versioned
	// declarations, for example "v2.0.0". Empty selects DefaultVersion.
	Version string

	// BaseModule is the dotted module that relative imports resolve
	// against. Leaving it empty makes relative imports a UsageError.
	BaseModule string
}

// Loader resolves module names into linked declaration units. Every
// Loader owns an independent registry pre-seeded with the bundled
// builtins and compat modules.
//
// A Loader is not safe for concurrent use.
type Loader struct {
	config   Config
	store    *bundled.Store
	registry *registry
	builtins *decl.Unit

	merged    *decl.Unit
	mergedGen int
}

// New validates the configuration and returns a Loader with the bundled
// builtins and compat modules already loaded and linked.
func New(ctx context.Context, cfg Config) (*Loader, error) {
	logger := ctxlog.FromContext(ctx)
	if cfg.Version == "" {
		cfg.Version = DefaultVersion
	}
	if !semver.IsValid(cfg.Version) {
		return nil, &UsageError{Reason: fmt.Sprintf("target version %q is not a valid semantic version", cfg.Version)}
	}
	store, err := bundled.NewStore()
	if err != nil {
		return nil, err
	}
	l := &Loader{
		config:   cfg,
		store:    store,
		registry: newRegistry(),
	}
	logger.Debug("Creating loader.", "version", cfg.Version, "searchPath", cfg.SearchPath, "stdlib", cfg.UseStdlib)
	if err := l.seedBundled(ctx); err != nil {
		return nil, err
	}
	return l, nil
}

// seedBundled loads the two bootstrap modules every registry starts
// with. Builtins goes first so that compat, and everything after it, can
// resolve unqualified builtin names against it.
func (l *Loader) seedBundled(ctx context.Context) error {
	for _, name := range []string{builtinsModule, compatModule} {
		unit, ok, err := l.store.Unit(bundled.TierBuiltins, name, l.config.Version)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("bundled module %q is missing for version %s", name, l.config.Version)
		}
		if name == builtinsModule {
			l.builtins = unit
		}
		if _, err := l.loadUnit(ctx, name, bundledSource(name), unit); err != nil {
			return err
		}
	}
	return l.finish(ctx)
}

// Version reports the target version the loader gates declarations by.
func (l *Loader) Version() string {
	return l.config.Version
}

// Builtins returns the linked builtins unit.
func (l *Loader) Builtins() *decl.Unit {
	return l.builtins
}

// ImportName resolves a dotted module name and returns its linked unit.
// The handle is shared: importing the same name again returns the
// identical unit, and references inside other modules point at the same
// declaration nodes.
func (l *Loader) ImportName(ctx context.Context, name string) (*decl.Unit, error) {
	m, err := l.importName(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := l.finish(ctx); err != nil {
		return nil, err
	}
	return m.Unit, nil
}

// ImportRelative resolves the ancestor package obtained by dropping the
// last level components from the base module. Level 1 is the immediate
// parent.
func (l *Loader) ImportRelative(ctx context.Context, level int) (*decl.Unit, error) {
	ancestor, err := l.relativeAncestor(level)
	if err != nil {
		return nil, err
	}
	return l.ImportName(ctx, ancestor)
}

// ImportRelativeName resolves a sibling of the base module: the base
// minus its final component, with name appended.
func (l *Loader) ImportRelativeName(ctx context.Context, name string) (*decl.Unit, error) {
	base, err := l.baseModule()
	if err != nil {
		return nil, err
	}
	leaf, err := modname.Parse(name)
	if err != nil {
		return nil, &UsageError{Reason: err.Error()}
	}
	return l.ImportName(ctx, base.Sibling(leaf).String())
}

func (l *Loader) relativeAncestor(level int) (string, error) {
	base, err := l.baseModule()
	if err != nil {
		return "", err
	}
	if level < 1 {
		return "", &UsageError{Reason: fmt.Sprintf("relative import level must be at least 1, got %d", level)}
	}
	ancestor, ok := base.Ancestor(level)
	if !ok {
		return "", &UsageError{Reason: fmt.Sprintf("relative import level %d escapes base module %q", level, l.config.BaseModule)}
	}
	return ancestor.String(), nil
}

func (l *Loader) baseModule() (modname.Name, error) {
	if l.config.BaseModule == "" {
		return modname.Name{}, &UsageError{Reason: "relative import requires a configured base module"}
	}
	base, err := modname.Parse(l.config.BaseModule)
	if err != nil {
		return modname.Name{}, &UsageError{Reason: err.Error()}
	}
	return base, nil
}

// ResolveUnit links a caller-owned unit against the loader's modules
// without registering it. Dependencies the unit references load through
// the normal sequence and stay registered; the unit itself is never
// importable and a later load of the same name will not conflict.
func (l *Loader) ResolveUnit(ctx context.Context, unit *decl.Unit) (*decl.Unit, error) {
	if err := passes.Postprocess(ctx, unit, l.builtins, l.config.Version); err != nil {
		return nil, err
	}
	if err := l.loadDependencies(ctx, unit, unit.Name); err != nil {
		return nil, err
	}
	l.linkStaged(unit, unit.Name)
	if err := l.finish(ctx); err != nil {
		return nil, err
	}
	// The unit is not in the registry, so the sweep above did not touch
	// it. Complete and check it directly.
	passes.BindAll(unit, l.registry.view(), unit.Name)
	if err := l.verify(unit, unit.Name); err != nil {
		return nil, err
	}
	return unit, nil
}

// ConcatAll returns a single synthetic unit holding every registered
// module's declarations in registration order. The result is cached and
// recomputed only after the registry changes.
func (l *Loader) ConcatAll() *decl.Unit {
	if l.merged == nil || l.mergedGen != l.registry.generation {
		modules := l.registry.all()
		units := make([]*decl.Unit, 0, len(modules))
		for _, m := range modules {
			units = append(units, m.Unit)
		}
		l.merged = decl.Concat(mergedUnitName, units...)
		l.mergedGen = l.registry.generation
	}
	return l.merged
}

// importName loads one module through the search tiers without running
// the completion sweep. Entry points sweep before returning; the
// dependency recursion deliberately does not.
func (l *Loader) importName(ctx context.Context, name string) (*Module, error) {
	logger := ctxlog.FromContext(ctx)
	parsed, err := modname.Parse(name)
	if err != nil {
		return nil, &UsageError{Reason: err.Error()}
	}
	if m := l.registry.get(name); m != nil {
		return m, nil
	}
	loc, ok, err := l.locate(parsed)
	if err != nil {
		return nil, err
	}
	if !ok {
		logger.Warn("Could not locate module in any tier.", "module", name, "searchPath", l.config.SearchPath)
		return nil, &DependencyNotFoundError{Module: name}
	}
	unit := loc.unit
	if unit == nil {
		unit, err = sif.ParseFile(loc.path, name, l.config.Version)
		if err != nil {
			return nil, fmt.Errorf("loading module %q: %w", name, err)
		}
	}
	logger.Debug("Resolved module source.", "module", name, "source", loc.source)
	return l.loadUnit(ctx, name, loc.source, unit)
}

// loadUnit runs the load sequence for a parsed unit: postprocess, stage
// in the registry, then link what phase one can reach. Any failure after
// staging evicts the entry, so a retry after the cause is fixed starts
// clean.
func (l *Loader) loadUnit(ctx context.Context, name, source string, unit *decl.Unit) (*Module, error) {
	if err := passes.Postprocess(ctx, unit, l.builtins, l.config.Version); err != nil {
		return nil, err
	}
	m := &Module{Name: name, Source: source, Unit: unit, Dirty: true}
	if err := l.registry.insert(m); err != nil {
		return nil, err
	}
	if err := l.loadDependencies(ctx, unit, name); err != nil {
		l.registry.evict(name)
		return nil, err
	}
	l.linkStaged(unit, name)
	return m, nil
}

// loadDependencies imports every module the unit references. The unit's
// own entry is already staged, so a dependency that cycles back here, or
// to any module currently mid-load, is satisfied by the staged entry
// instead of recursing again.
func (l *Loader) loadDependencies(ctx context.Context, unit *decl.Unit, selfName string) error {
	deps := passes.CollectImports(unit)
	if len(deps) == 0 {
		return nil
	}
	ctxlog.FromContext(ctx).Debug("Loading module dependencies.", "module", selfName, "dependencies", deps)
	// Nested loads log with the chain of importers that pulled them in.
	ctx = ctxlog.With(ctx, "importer", selfName)
	for _, dep := range deps {
		if dep == selfName || l.registry.get(dep) != nil {
			continue
		}
		if _, err := l.importName(ctx, dep); err != nil {
			return err
		}
	}
	return nil
}

// linkStaged is phase one of linking: bind everything visible right now
// and compute signature templates. References into modules that are mid
// cycle bind here too, because staging made their declarations visible;
// whatever remains open is the sweep's job.
func (l *Loader) linkStaged(unit *decl.Unit, selfName string) {
	passes.BindExternal(unit, l.registry.view(), selfName)
	passes.InsertTemplates(unit)
	passes.AdjustTemplates(unit)
	passes.BindLocal(unit, selfName)
}

// finish is the completion sweep: every dirty module gets a full binding
// pass against the entire registry and is then verified. It runs before
// any resolution entry point returns, which keeps the sweep lazy without
// ever handing out a half-linked unit.
func (l *Loader) finish(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	view := l.registry.view()
	for _, m := range l.registry.all() {
		if !m.Dirty {
			continue
		}
		logger.Debug("Completing module.", "module", m.Name)
		passes.BindAll(m.Unit, view, m.Name)
		if err := l.verify(m.Unit, m.Name); err != nil {
			return err
		}
		m.Dirty = false
	}
	return nil
}

func (l *Loader) verify(unit *decl.Unit, name string) error {
	if err := passes.VerifyBound(unit); err != nil {
		return &InvariantViolationError{Module: name, Detail: err.Error()}
	}
	if err := passes.VerifyShapes(unit); err != nil {
		return &InvariantViolationError{Module: name, Detail: err.Error()}
	}
	return nil
}
