package loader

import "fmt"

// DependencyNotFoundError reports a module that none of the search tiers
// could locate. For a top-level import Module is the requested name; for
// a failure inside the dependency recursion it names the module that was
// actually missing.
type DependencyNotFoundError struct {
	Module string
}

func (e *DependencyNotFoundError) Error() string {
	return fmt.Sprintf("cannot find module %q", e.Module)
}

// RegistrationConflictError reports an attempt to register a module name
// under a second source. A name is permanently tied to the source that
// first provided it.
type RegistrationConflictError struct {
	Module      string
	Existing    string
	Conflicting string
}

func (e *RegistrationConflictError) Error() string {
	return fmt.Sprintf("module %q exists as both %s and %s", e.Module, e.Existing, e.Conflicting)
}

// UsageError reports a request that is invalid regardless of loader
// state, such as a relative import without a configured base module.
type UsageError struct {
	Reason string
}

func (e *UsageError) Error() string {
	return e.Reason
}

// InvariantViolationError reports a module that failed verification
// after linking claimed completion: an unbound reference or a malformed
// type shape survived the completion sweep.
type InvariantViolationError struct {
	Module string
	Detail string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("module %q violates linker invariants: %s", e.Module, e.Detail)
}
