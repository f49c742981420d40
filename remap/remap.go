// Package remap implements the explicit source remap table. When a table
// is configured, candidate stub paths resolve through it alone and the
// filesystem is never probed for them; build systems use this to pin
// every import to a generated artifact.
package remap

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Discard is the sentinel location marking a path as deliberately absent.
// A lookup hitting a discard entry resolves to nothing, even when a
// same-named file exists on disk.
const Discard = "-"

// Table maps candidate stub paths, exactly as the search resolver joins
// them with its search directories, to actual file locations.
type Table struct {
	entries map[string]string
}

// New builds a table from a path to location mapping. The mapping is
// copied; later changes to it do not affect the table.
func New(entries map[string]string) *Table {
	t := &Table{entries: make(map[string]string, len(entries))}
	for path, location := range entries {
		t.entries[path] = location
	}
	return t
}

// Load reads a table from a YAML file holding one flat string mapping.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("remap: read %s: %w", path, err)
	}
	var entries map[string]string
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("remap: decode %s: %w", path, err)
	}
	return New(entries), nil
}

// Lookup resolves one candidate path. ok is false when the path has no
// entry or its entry is the discard sentinel.
func (t *Table) Lookup(path string) (location string, ok bool) {
	location, ok = t.entries[path]
	if !ok || location == Discard {
		return "", false
	}
	return location, true
}

// HasPrefix reports whether any entry lives under the given directory
// path. The resolver uses this as the existence check for package
// directories, since the filesystem is not consulted in remap mode.
func (t *Table) HasPrefix(dir string) bool {
	sep := string(filepath.Separator)
	prefix := strings.TrimSuffix(dir, sep) + sep
	for path := range t.entries {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Len reports the number of entries, discard entries included.
func (t *Table) Len() int {
	return len(t.entries)
}
