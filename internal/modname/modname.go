// Package modname provides a structured representation for dotted module
// names, e.g. `acme.core.util`, and the path arithmetic behind relative
// imports. It centralizes validation and formatting so the loader never
// manipulates raw name strings.
package modname

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Name is the structured representation of a dotted module name. The zero
// value is invalid; obtain a Name through Parse.
type Name struct {
	segments []string
}

// Parse validates a raw module name and returns its structured form. A
// valid name is a non-empty dot-separated sequence of non-empty segments.
// Filesystem separators are rejected: callers name modules, never paths.
func Parse(raw string) (Name, error) {
	if raw == "" {
		return Name{}, fmt.Errorf("module name is empty")
	}
	if strings.ContainsAny(raw, `/\`) {
		return Name{}, fmt.Errorf("module name %q must be dotted, not a path", raw)
	}
	segments := strings.Split(raw, ".")
	for _, segment := range segments {
		if segment == "" {
			return Name{}, fmt.Errorf("module name %q has an empty segment", raw)
		}
	}
	return Name{segments: segments}, nil
}

// String serializes the name back to its canonical dotted form.
func (n Name) String() string {
	return strings.Join(n.segments, ".")
}

// Depth reports the number of segments.
func (n Name) Depth() int {
	return len(n.segments)
}

// Ancestor drops the last level segments. ok is false when level consumes
// the whole name: the empty name is never a valid module.
func (n Name) Ancestor(level int) (Name, bool) {
	if level >= len(n.segments) {
		return Name{}, false
	}
	return Name{segments: n.segments[:len(n.segments)-level]}, true
}

// Sibling replaces the final segment of this name with leaf, yielding a
// module in the same package.
func (n Name) Sibling(leaf Name) Name {
	segments := make([]string, 0, len(n.segments)-1+len(leaf.segments))
	segments = append(segments, n.segments[:len(n.segments)-1]...)
	segments = append(segments, leaf.segments...)
	return Name{segments: segments}
}

// RelPath is the name in filesystem form, one directory per segment,
// relative to a search directory.
func (n Name) RelPath() string {
	return filepath.Join(n.segments...)
}

// SplitQualified splits a qualified reference name into its module prefix
// and member: everything before the final dot names the module. ok is
// false for unqualified names, which carry no module dependency.
func SplitQualified(ref string) (module, member string, ok bool) {
	i := strings.LastIndex(ref, ".")
	if i < 0 {
		return "", ref, false
	}
	return ref[:i], ref[i+1:], true
}
