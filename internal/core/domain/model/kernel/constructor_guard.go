package kernel

import "errors"

// ErrDefaultConstructorGuard is the fallback error returned by ConstructorGuard.Validate
// when no specific validation error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard ensures domain objects are only created through their designated
// constructor functions. Embedding a guard in an aggregate makes its zero value
// detectable: a struct initialized directly fails Validate, while one built via a
// constructor (which calls NewConstructorGuard) passes.
//
// This keeps invariants enforceable: every valid instance has passed its
// constructor's validation exactly once.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marking the enclosing object as properly constructed.
// Call it inside aggregate constructors only.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the object was built through its constructor.
// Otherwise it returns validationError, or ErrDefaultConstructorGuard when
// validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
