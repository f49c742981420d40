package loader

import (
	"path/filepath"

	"github.com/declink/declink/decl"
	"github.com/declink/declink/internal/bundled"
	"github.com/declink/declink/internal/fsprobe"
	"github.com/declink/declink/internal/modname"
)

const (
	// stubExt is the extension of a plain module stub file.
	stubExt = ".sif"
	// initializerName is the stub that makes a directory an importable
	// package.
	initializerName = "module.sif"
)

func bundledSource(name string) string {
	return "bundled:" + name
}

// location is a resolved module source: either a stub file to parse, or
// a unit that is already in tree form (bundled definitions and implicit
// empty packages).
type location struct {
	source string
	path   string
	unit   *decl.Unit
}

// locate resolves a module name through the search tiers in priority
// order: bundled definitions, then the search path, then the embedded
// standard library when enabled. The first tier that knows the name
// wins.
func (l *Loader) locate(name modname.Name) (*location, bool, error) {
	if unit, ok, err := l.store.Unit(bundled.TierBuiltins, name.String(), l.config.Version); err != nil {
		return nil, false, err
	} else if ok {
		return &location{source: bundledSource(name.String()), unit: unit}, true, nil
	}
	if loc, ok := l.scanSearchPath(name); ok {
		return loc, true, nil
	}
	if l.config.UseStdlib {
		if unit, ok, err := l.store.Unit(bundled.TierStdlib, name.String(), l.config.Version); err != nil {
			return nil, false, err
		} else if ok {
			return &location{source: bundledSource(name.String()), unit: unit}, true, nil
		}
	}
	return nil, false, nil
}

// scanSearchPath tries each configured directory in order. Within a
// directory the package form wins: an initializer stub if present, an
// implicit empty package if the directory exists without one, and only
// then a plain module stub. With a remap table configured the table
// replaces every filesystem probe.
func (l *Loader) scanSearchPath(name modname.Name) (*location, bool) {
	rel := name.RelPath()
	for _, dir := range l.config.SearchPath {
		pkgDir := filepath.Join(dir, rel)
		initPath := filepath.Join(pkgDir, initializerName)
		filePath := pkgDir + stubExt

		if l.config.Remap != nil {
			if mapped, ok := l.config.Remap.Lookup(initPath); ok {
				return &location{source: mapped, path: mapped}, true
			}
			if l.config.Remap.HasPrefix(pkgDir) {
				return &location{source: initPath, unit: decl.EmptyUnit(name.String())}, true
			}
			if mapped, ok := l.config.Remap.Lookup(filePath); ok {
				return &location{source: mapped, path: mapped}, true
			}
			continue
		}

		if fsprobe.FileExists(initPath) {
			return &location{source: initPath, path: initPath}, true
		}
		if fsprobe.DirExists(pkgDir) {
			// A package directory without an initializer is importable
			// as an empty module.
			return &location{source: initPath, unit: decl.EmptyUnit(name.String())}, true
		}
		if fsprobe.FileExists(filePath) {
			return &location{source: filePath, path: filePath}, true
		}
	}
	return nil, false
}
