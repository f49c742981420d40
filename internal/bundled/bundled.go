// Package bundled serves the stub definitions compiled into the binary:
// the bootstrap builtins and compat modules plus the standard-library
// fallback tier. A TOML manifest indexes the embedded files and gates
// each entry by target version.
package bundled

import (
	"embed"
	"fmt"

	"github.com/BurntSushi/toml"
	"golang.org/x/mod/semver"

	"github.com/declink/declink/decl"
	"github.com/declink/declink/sif"
)

// Tier names recognized in the manifest.
const (
	TierBuiltins = "builtins"
	TierStdlib   = "stdlib"
)

//go:embed manifest.toml defs
var content embed.FS

// Entry is one manifest row describing an embedded stub.
type Entry struct {
	Name  string `toml:"name"`
	Tier  string `toml:"tier"`
	File  string `toml:"file"`
	Since string `toml:"since"`
	Until string `toml:"until"`
}

type manifest struct {
	Stubs []Entry `toml:"stub"`
}

// Store answers lookups against the embedded manifest.
type Store struct {
	entries []Entry
}

// NewStore parses the embedded manifest.
func NewStore() (*Store, error) {
	data, err := content.ReadFile("manifest.toml")
	if err != nil {
		return nil, fmt.Errorf("bundled: read manifest: %w", err)
	}
	var m manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("bundled: parse manifest: %w", err)
	}
	return &Store{entries: m.Stubs}, nil
}

// Unit parses and returns the named stub for the target version. ok is
// false when no manifest entry matches the tier, name, and version; the
// caller falls through to its next search tier. Every call parses fresh,
// so each caller owns its tree.
func (s *Store) Unit(tier, name, version string) (*decl.Unit, bool, error) {
	for _, e := range s.entries {
		if e.Tier != tier || e.Name != name || !e.available(version) {
			continue
		}
		data, err := content.ReadFile(e.File)
		if err != nil {
			return nil, false, fmt.Errorf("bundled: read %s: %w", e.File, err)
		}
		unit, err := sif.Parse(data, e.File, name, version)
		if err != nil {
			return nil, false, fmt.Errorf("bundled: %w", err)
		}
		return unit, true, nil
	}
	return nil, false, nil
}

// available gates the entry against the target version. An empty version
// matches everything.
func (e Entry) available(version string) bool {
	if version == "" {
		return true
	}
	if e.Since != "" && semver.Compare(version, e.Since) < 0 {
		return false
	}
	if e.Until != "" && semver.Compare(version, e.Until) >= 0 {
		return false
	}
	return true
}
