// Package loader resolves dotted module names into linked declaration
// units. It owns the module registry, the tiered search across bundled
// definitions, search-path directories, and the standard-library
// fallback, and the two-phase linking protocol that binds every symbolic
// reference to a shared concrete definition.
//
// Loading is transactional: a module is staged in the registry before
// its dependencies load, which is what lets cyclic imports find the
// half-built entry instead of recursing forever, and it is evicted again
// if any part of its load fails. References across modules bind by
// shared pointer, so a module completed later is visible through every
// reference bound earlier. A lazy registry-wide sweep finishes whatever
// a cycle forced phase one to leave open, and verifies the result,
// before any public entry point returns.
//
// A Loader is not safe for concurrent use. Resolution recurses through
// shared registry state, so all operations on one instance must be
// externally serialized.
package loader
