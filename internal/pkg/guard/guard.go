// Package guard helps value objects and aggregates detect zero values that
// bypassed their constructors.
package guard

import "errors"

var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded into types whose zero value is not usable.
// Constructors set it with NewConstructorGuard.
type ConstructorGuard struct {
	isConstructed bool
}

func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns err (or ErrDefaultConstructorGuard when err is nil) for a zero guard.
func (g ConstructorGuard) Validate(err error) error {
	if g.isConstructed {
		return nil
	}
	if err == nil {
		return ErrDefaultConstructorGuard
	}
	return err
}
