package tree

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrDuplicateIdentifier = errors.New("duplicate identifier among siblings")
	ErrUnsupportedVersion  = errors.New("unsupported tree state version")
)

// DuplicateIdentifierError names the identifier that collided. It matches
// ErrDuplicateIdentifier with errors.Is.
type DuplicateIdentifierError struct {
	ID any
	// Parent is the identifier of the node being built, nil at root level.
	Parent any
}

func (e *DuplicateIdentifierError) Error() string {
	if e.Parent == nil {
		return fmt.Sprintf("%v: %v at root level", ErrDuplicateIdentifier, e.ID)
	}
	return fmt.Sprintf("%v: %v under %v", ErrDuplicateIdentifier, e.ID, e.Parent)
}

func (e *DuplicateIdentifierError) Unwrap() error {
	return ErrDuplicateIdentifier
}
