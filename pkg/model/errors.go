package model

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyName is returned by [Project.AddClass] and [Project.AddEnumeration]
	// when the entity name is empty or whitespace.
	ErrEmptyName = errors.New("entity name must not be empty")

	// ErrDuplicateEntity is returned when an entity with the same full name is
	// already registered. Classes and enumerations share one namespace, so a
	// class and an enumeration may not have the same full name either.
	ErrDuplicateEntity = errors.New("duplicate entity")

	// ErrMissingContext is returned by [ClassBuilder.AddAssociation] when the
	// builder does not refer to a registered class.
	ErrMissingContext = errors.New("association added without a class context")

	// ErrAlreadyLinked is returned when a project is mutated, or linked a second
	// time, after [Project.LinkSymbols] has run.
	ErrAlreadyLinked = errors.New("project is already linked")
)

// DuplicateEntityError reports the entity that collided with an existing
// registration. It matches [ErrDuplicateEntity] with [errors.Is].
type DuplicateEntityError struct {
	Kind     string // "class" or "enumeration"
	FullName string
}

func (e *DuplicateEntityError) Error() string {
	return fmt.Sprintf("duplicate %s %q: an entity with this full name is already registered", e.Kind, e.FullName)
}

func (e *DuplicateEntityError) Is(target error) bool {
	return target == ErrDuplicateEntity
}

// MissingContextError reports the association that could not be attached.
// It matches [ErrMissingContext] with [errors.Is].
type MissingContextError struct {
	Association string
}

func (e *MissingContextError) Error() string {
	return fmt.Sprintf("association %q: no class to attach it to", e.Association)
}

func (e *MissingContextError) Is(target error) bool {
	return target == ErrMissingContext
}
