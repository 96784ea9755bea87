// Package guard provides a defensive construction check for value objects,
// commands, and entities. Embedding a ConstructorGuard in a struct makes it
// possible to detect whether the struct was created through its designated
// constructor or left as a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific
// validation error is supplied and the object was not constructed properly.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as having passed through its constructor.
// A zero-value guard fails validation, which catches accidental use of
// directly-initialized structs that skipped invariant checks.
//
// Example usage:
//
//	var ErrJobNotConstructed = errors.New("DesignJob must be created via NewDesignJob")
//
//	type DesignJob struct {
//	    id    kernel.UUID
//	    guard guard.ConstructorGuard
//	}
//
//	func (j DesignJob) Validate() error {
//	    return j.guard.Validate(ErrJobNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard that marks an object as properly
// constructed. Call it inside every constructor that enforces invariants.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate checks whether the guarded object was created through its
// constructor. Returns the provided validationError for zero-value guards,
// or ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
